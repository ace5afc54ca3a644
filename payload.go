package nightsky

import "github.com/gogpu/nightsky/compose"

// FramePayload is the per-tick scene description the engine hands to the
// compositor: sprite batches per layer, trail keep factors, moon
// parameters and the clear flag.
//
// The payload returned by [Engine.Advance] is reused across ticks; consume
// it before the next Advance call.
type FramePayload = compose.Frame

// Sprite is a single transient draw instance on one of the scene layers.
type Sprite = compose.Sprite

// MoonParams describes the moon disc for one tick.
type MoonParams = compose.MoonParams

// Compositor consumes frame payloads and produces presentable output,
// either onto a host GPU surface or into a CPU pixmap.
type Compositor = compose.Compositor

// NewCompositor creates a compositor with cleared buffers at the given
// logical screen size.
func NewCompositor(width, height int) *Compositor {
	return compose.NewCompositor(width, height)
}
