// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import (
	"sync"
	"sync/atomic"
	"time"
)

// Refresher signals display refreshes to a [Loop].
type Refresher interface {

	// Refresh returns the channel that receives a value at each refresh.
	Refresh() <-chan time.Time

	// Stop releases the refresher. No refreshes are sent after it returns.
	Stop()
}

// Ticker is a [Refresher] running at a fixed frame rate.
type Ticker struct {
	t *time.Ticker
}

// NewTicker returns a refresher at the given frames per second
// (60 if fps <= 0).
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (tk *Ticker) Refresh() <-chan time.Time { return tk.t.C }

func (tk *Ticker) Stop() { tk.t.Stop() }

// ManualRefresher is a [Refresher] that only refreshes when
// [ManualRefresher.Tick] is called.
type ManualRefresher struct {
	c    chan time.Time
	quit chan struct{}
	once sync.Once
}

// NewManualRefresher returns a new manual refresher.
func NewManualRefresher() *ManualRefresher {
	return &ManualRefresher{c: make(chan time.Time), quit: make(chan struct{})}
}

func (mr *ManualRefresher) Refresh() <-chan time.Time { return mr.c }

// Tick sends one refresh, blocking until the loop receives it.
// It returns false if the refresher was stopped first.
func (mr *ManualRefresher) Tick() bool {
	select {
	case mr.c <- time.Now():
		return true
	case <-mr.quit:
		return false
	}
}

func (mr *ManualRefresher) Stop() {
	mr.once.Do(func() { close(mr.quit) })
}

// Loop calls a frame function on every refresh, on its own goroutine,
// until it is stopped.
type Loop struct {
	refresh Refresher
	frame   func()
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	stopped atomic.Bool
	frames  atomic.Int64
}

// StartLoop starts calling frame on each refresh from r.
func StartLoop(r Refresher, frame func()) *Loop {
	lp := &Loop{
		refresh: r,
		frame:   frame,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go lp.run()
	return lp
}

func (lp *Loop) run() {
	defer close(lp.done)
	for {
		select {
		case <-lp.stop:
			return
		case _, ok := <-lp.refresh.Refresh():
			if !ok {
				return
			}
		}
		if lp.stopped.Load() {
			return
		}
		lp.frame()
		lp.frames.Add(1)
	}
}

// Stop stops the loop and waits for any frame in progress to finish.
// No frame starts after Stop returns. It is safe to call more than once,
// but must not be called from the frame function.
func (lp *Loop) Stop() {
	lp.once.Do(func() {
		lp.stopped.Store(true)
		close(lp.stop)
		<-lp.done
		lp.refresh.Stop()
	})
	<-lp.done
}

// Frames returns the number of frames run so far.
func (lp *Loop) Frames() int64 {
	return lp.frames.Load()
}

// Running returns true until the loop is stopped.
func (lp *Loop) Running() bool {
	select {
	case <-lp.done:
		return false
	default:
		return !lp.stopped.Load()
	}
}
