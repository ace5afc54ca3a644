// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

// blendMode selects how a layer's sprites combine with existing pixels.
type blendMode uint8

const (
	// blendOver is standard premultiplied source-over compositing,
	// used by the non-decaying base layer.
	blendOver blendMode = iota

	// blendAdditive accumulates brightness, used by trail layers.
	blendAdditive
)

// textureDestroyer matches the host texture's Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// layer is one persistent compositing surface: a CPU pixel buffer that
// survives across ticks plus a lazily created GPU texture mirror.
//
// The buffer has exactly one writer per tick (the compositor) and is read
// only by the composite pass of the same tick.
type layer struct {
	pm   *gg.Pixmap
	mode blendMode

	// nonEmpty is false while the buffer is known to be fully transparent,
	// letting decay and upload passes short-circuit.
	nonEmpty bool

	// Texture mirror state. dirty flags pending pixel changes; sizeChanged
	// defers destruction of the old texture until the GPU is known idle
	// (after the next upload), preventing use-after-free of descriptor
	// heap entries referenced by in-flight command buffers.
	tex         any
	oldTex      any
	dirty       bool
	sizeChanged bool
}

// newLayer creates a cleared layer of the given size.
func newLayer(width, height int, mode blendMode) *layer {
	return &layer{
		pm:   gg.NewPixmap(width, height),
		mode: mode,
	}
}

// resize reallocates the buffer at the new size. Contents are not
// preserved; the old texture is retired on the next upload.
func (l *layer) resize(width, height int) {
	l.pm = gg.NewPixmap(width, height)
	l.nonEmpty = false
	l.dirty = true
	l.sizeChanged = true
}

// clear resets every pixel to transparent black.
func (l *layer) clear() {
	if !l.nonEmpty {
		return
	}
	data := l.pm.Data()
	for i := range data {
		data[i] = 0
	}
	l.nonEmpty = false
	l.dirty = true
}

// decay multiplies the buffer's premultiplied contents by keep.
// keep >= 1 is a no-op; keep <= 0 is equivalent to a full clear.
func (l *layer) decay(keep float64) {
	if keep >= 1 || !l.nonEmpty {
		return
	}
	if keep <= 0 {
		l.clear()
		return
	}

	// One multiply table per pass; cheaper than a float multiply per byte.
	var lut [256]uint8
	for v := 0; v < 256; v++ {
		lut[v] = uint8(float64(v)*keep + 0.5)
	}

	data := l.pm.Data()
	for i, v := range data {
		data[i] = lut[v]
	}
	l.dirty = true
}

// draw rasterizes the sprite batch into the buffer in a single pass.
func (l *layer) draw(sprites []Sprite) {
	if len(sprites) == 0 {
		return
	}
	drawBatch(l.pm, sprites, l.mode)
	l.nonEmpty = true
	l.dirty = true
}

// flushTexture uploads the buffer to the layer's GPU texture if dirty and
// returns the texture for drawing. The texture is created lazily through
// the drawer's TextureCreator on first use and after a resize.
//
// NewTextureFromRGBA waits for prior GPU work internally, so once it
// returns it is safe to destroy the retired texture.
func (l *layer) flushTexture(dc gpucontext.TextureDrawer) (gpucontext.Texture, error) {
	if l.sizeChanged {
		if l.tex != nil {
			if d, ok := l.oldTex.(textureDestroyer); ok {
				d.Destroy()
			}
			l.oldTex = l.tex
			l.tex = nil
		}
		l.sizeChanged = false
	}

	if l.tex == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return nil, ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(l.pm.Width(), l.pm.Height(), l.pm.Data())
		if err != nil {
			return nil, fmt.Errorf("compose: layer texture creation failed: %w", err)
		}
		// Layer data is premultiplied alpha; the host must use the
		// BlendFactorOne pipeline for correct compositing.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		l.tex = tex
		l.dirty = false

		if l.oldTex != nil {
			if d, ok := l.oldTex.(textureDestroyer); ok {
				d.Destroy()
			}
			l.oldTex = nil
		}
	} else if l.dirty {
		if updater, ok := l.tex.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(l.pm.Data()); err != nil {
				return nil, fmt.Errorf("compose: layer texture update failed: %w", err)
			}
		}
		l.dirty = false
	}

	gpuTex, ok := l.tex.(gpucontext.Texture)
	if !ok {
		return nil, ErrInvalidTexture
	}
	return gpuTex, nil
}

// destroyTexture releases the layer's GPU resources. The CPU buffer is
// untouched.
func (l *layer) destroyTexture() {
	if d, ok := l.oldTex.(textureDestroyer); ok {
		d.Destroy()
	}
	l.oldTex = nil
	if d, ok := l.tex.(textureDestroyer); ok {
		d.Destroy()
	}
	l.tex = nil
}
