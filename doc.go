// Package nightsky procedurally generates and animates a night-sky scene:
// a skyline silhouette with lit windows, a blinking rooftop beacon, a
// physically-phased moon, shooting stars, and orbiting satellites.
//
// # Overview
//
// nightsky is split into a simulation side and a compositing side. The
// simulation side (this package plus world/, moon/ and motion/) advances
// the scene once per tick and packages the result into an immutable
// FramePayload. The compositing side (compose/) owns persistent per-layer
// pixel buffers with exponential trail decay and turns each payload into
// a presentable frame, either through a gpucontext host surface or into a
// CPU pixmap for headless preview generation.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/nightsky"
//	    "github.com/gogpu/nightsky/compose"
//	)
//
//	eng := nightsky.NewEngine()
//	comp := compose.NewCompositor(1920, 1080)
//
//	// Once per display tick:
//	payload := eng.Advance(1.0/60, 1920, 1080, nightsky.DefaultConfig())
//	img, err := comp.RenderToPixmap(payload) // headless path
//
// For integrated rendering, pass a gpucontext.TextureDrawer obtained from
// the host application to Compositor.Render instead.
//
// # Architecture
//
// Data flows strictly downward each tick:
//
//	Engine -> {world, moon, motion} (advance)
//	       -> Engine (collect into FramePayload)
//	       -> compose.Compositor (draw, decay, composite)
//	       -> host surface or CPU pixmap
//
// All per-tick state transitions happen on one sequential path; no
// component is designed for concurrent mutation. The only asynchrony is
// the moon texture upload, which rides the host's command stream.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Building geometry uses a ground line at the bottom edge of the screen,
// so a building of height h spans y in [screenHeight-h, screenHeight).
//
// # Performance
//
// The compositor rasterizes each layer's sprite batch in a single pass
// and uploads at most one texture per layer per tick. Idle ticks (no
// sprites, no moon, no decay, no clear) skip all compositing work.
package nightsky

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
