// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avatar

import (
	"log/slog"

	"cogentcore.org/vrmview/vrm"
	"cogentcore.org/vrmview/xyz"
)

// State is the state of a [Slot]: either [Empty] or [Loaded].
type State interface {
	isState()
}

// Empty is the [State] of a slot with no avatar.
type Empty struct{}

// Loaded is the [State] of a slot displaying an avatar.
type Loaded struct {
	Avatar *vrm.Avatar
}

func (Empty) isState()  {}
func (Loaded) isState() {}

// SlotOps are the steps of a change to a [Slot].
type SlotOps int32

const (
	// SlotDetach is when an avatar root is removed from the scene.
	SlotDetach SlotOps = iota

	// SlotRelease is when a detached avatar's resources are released.
	SlotRelease

	// SlotAttach is when an avatar root is added to the scene.
	SlotAttach
)

var slotOpNames = [...]string{"Detach", "Release", "Attach"}

func (op SlotOps) String() string {
	if op < 0 || int(op) >= len(slotOpNames) {
		return "SlotOps(?)"
	}
	return slotOpNames[op]
}

// SlotEvent records one step of a change to a [Slot].
type SlotEvent struct {
	Op     SlotOps
	Avatar *vrm.Avatar
}

// Slot holds at most one avatar attached to a scene.
// It is not safe for concurrent use; the [Viewer] serializes access.
type Slot struct {

	// Observer, if set, is called for each step of every change.
	Observer func(ev SlotEvent)

	scene   *xyz.Scene
	current *vrm.Avatar
}

// NewSlot returns an empty slot for the given scene.
func NewSlot(sc *xyz.Scene) *Slot {
	return &Slot{scene: sc}
}

// Replace swaps the current avatar, if any, for the given one. The old
// avatar is fully detached and released before the new one is attached.
// A nil avatar is the same as [Slot.Clear].
func (sl *Slot) Replace(av *vrm.Avatar) {
	sl.Clear()
	if av == nil {
		return
	}
	sl.scene.Add(av.Root)
	sl.current = av
	sl.notify(SlotAttach, av)
	slog.Debug("avatar attached", "avatar", av.Name)
}

// Clear detaches and releases the current avatar, if any.
func (sl *Slot) Clear() {
	old := sl.current
	if old == nil {
		return
	}
	sl.current = nil
	sl.scene.Remove(old.Root)
	sl.notify(SlotDetach, old)
	old.Release()
	sl.notify(SlotRelease, old)
	slog.Debug("avatar released", "avatar", old.Name)
}

// Current returns the current state of the slot.
func (sl *Slot) Current() State {
	if sl.current == nil {
		return Empty{}
	}
	return Loaded{Avatar: sl.current}
}

func (sl *Slot) notify(op SlotOps, av *vrm.Avatar) {
	if sl.Observer != nil {
		sl.Observer(SlotEvent{Op: op, Avatar: av})
	}
}
