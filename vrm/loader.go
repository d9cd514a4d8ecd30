// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/qmuntal/gltf"
)

// Loader decodes avatar assets. The zero value is ready to use.
type Loader struct {

	// Progress, if set, is called with the percentage (0-100) of the
	// asset read so far, when the asset size is known. It is called
	// on the loading goroutine.
	Progress func(pct float32)
}

// Load reads, decodes and normalizes the given asset, blocking the
// calling goroutine only. The asset is consumed; loading it again fails
// with [ErrAssetConsumed]. Cancellation of ctx before decoding finishes
// returns ctx.Err().
func (ld *Loader) Load(ctx context.Context, asset *Asset) (*Avatar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := asset.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if ld.Progress != nil && asset.Size > 0 {
		r = &progressReader{r: rc, total: asset.Size, report: ld.Progress}
	}
	br := bufio.NewReader(r)
	head, err := br.Peek(HeaderSize)
	if err != nil || !IsGLB(head) {
		return nil, fmt.Errorf("%w: %s is not binary glTF (detected %s)", ErrAssetParse, asset.Name, Sniff(head))
	}

	doc := &gltf.Document{}
	if err := gltf.NewDecoder(br).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetParse, asset.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	av, err := Build(asset.Name, doc)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded avatar", "asset", asset.Name, "version", av.Meta.SpecVersion, "bones", av.Humanoid.Len(), "meshes", av.NumMeshes())
	return av, nil
}

// progressReader reports the percentage of bytes read, whenever it changes.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   float32
	report func(pct float32)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		pct := min(100*float32(pr.read)/float32(pr.total), 100)
		if pct != pr.last {
			pr.last = pct
			pr.report(pct)
		}
	}
	return n, err
}
