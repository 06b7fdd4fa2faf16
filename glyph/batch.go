// seehuhn.de/go/multiclass - multiclass density map compositing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package glyph

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// Batch runs glyph requests concurrently.  Submit starts a request and
// Wait blocks until all submitted requests are done.
type Batch struct {
	r   Renderer
	wg  sync.WaitGroup
	res []result
	mu  sync.Mutex
}

type result struct {
	img image.Image
	err error
}

// NewBatch returns an empty batch using r.
func NewBatch(r Renderer) *Batch {
	return &Batch{r: r}
}

// Submit starts rendering req in a new goroutine and returns the index of
// its result.
func (b *Batch) Submit(ctx context.Context, req *Request) int {
	b.mu.Lock()
	idx := len(b.res)
	b.res = append(b.res, result{})
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		img, err := b.r.Render(ctx, req)
		b.mu.Lock()
		b.res[idx] = result{img: img, err: err}
		b.mu.Unlock()
	}()
	return idx
}

// Wait blocks until every submitted request has finished.  The images are
// returned in submission order.  If any request failed, the error of the
// first failed request is returned.
func (b *Batch) Wait() ([]image.Image, error) {
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	imgs := make([]image.Image, len(b.res))
	for i, r := range b.res {
		if r.err != nil {
			return nil, fmt.Errorf("glyph %d: %w", i, r.err)
		}
		imgs[i] = r.img
	}
	return imgs, nil
}
