// Package bufsrc defines the "external buffer abstraction" scene.Buffer
// nodes are built on (spec §6, "Consumed from the buffer abstraction"): a
// lockable, refcounted pixel source with plain (untransformed) dimensions
// and an optional pre-uploaded GPU texture. Any transform is applied by
// the Buffer node, not by the source.
//
// scenegraph never constructs a Source itself — the host compositor does,
// typically backing it with a wl_shm pool or a dmabuf import — but this
// package ships ImageSource, an *image.RGBA-backed implementation grounded
// in the teacher's render.PixmapTarget (_examples/gogpu-gg/render/target.go),
// so the raster.SoftwareBackend and the scene-graph's own tests have a
// concrete buffer to drive without a real compositor.
package bufsrc

import "image"

// Texture is an opaque GPU texture resource, either uploaded by the scene's
// raster backend and cached on a Buffer node, or pre-uploaded client-side
// and returned by Source.ClientTexture.
type Texture interface {
	// Destroy releases the resources backing the texture.
	Destroy()
}

// Source is a lockable, refcounted pixel source. One scene.Buffer node
// holds at most one lock on a Source at a time (spec §5, "Each external
// buffer reference is locked on acquisition and unlocked on replacement or
// node destruction").
type Source interface {
	// Lock acquires a reference, keeping the source alive until Unlock.
	Lock()

	// Unlock releases a reference acquired by Lock.
	Unlock()

	// Width returns the source's pixel width, ignoring Transform.
	Width() int

	// Height returns the source's pixel height, ignoring Transform.
	Height() int

	// ClientTexture returns a pre-uploaded GPU texture for this source, if
	// the client already uploaded one (e.g. a wp_linux_dmabuf import with
	// an existing GPU-side representation), or nil if the raster backend
	// must upload it itself via raster.Backend.TextureFromBuffer.
	ClientTexture() Texture
}

// PixelSource is an optional extension of Source for buffers the software
// raster backend (or any CPU-side consumer) can read directly. A GPU-only
// Source should not implement this, the same way the teacher's
// render.TextureTarget.Pixels() returns nil for GPU-only targets.
type PixelSource interface {
	Source

	// Image returns the source's pixels as an *image.RGBA. The returned
	// image must not be retained past the next Lock/Unlock cycle.
	Image() *image.RGBA
}

// ImageSource is a Source backed directly by an *image.RGBA, for tests,
// demos, and any client that already has its pixels in Go-native form.
type ImageSource struct {
	img    *image.RGBA
	locks  int
	client Texture
}

// NewImageSource wraps img as a Source. img is used directly, not copied.
func NewImageSource(img *image.RGBA) *ImageSource {
	return &ImageSource{img: img}
}

// SetClientTexture installs a pre-uploaded texture to be returned by
// ClientTexture, simulating a client that uploads its own GPU resource.
func (s *ImageSource) SetClientTexture(t Texture) {
	s.client = t
}

func (s *ImageSource) Lock()   { s.locks++ }
func (s *ImageSource) Unlock() { s.locks-- }

func (s *ImageSource) Width() int  { return s.img.Bounds().Dx() }
func (s *ImageSource) Height() int { return s.img.Bounds().Dy() }

func (s *ImageSource) ClientTexture() Texture { return s.client }

// Image returns the backing *image.RGBA.
func (s *ImageSource) Image() *image.RGBA { return s.img }

// Locked reports whether the source currently has an outstanding lock;
// exposed for tests asserting scene-graph lock/unlock discipline.
func (s *ImageSource) Locked() bool { return s.locks > 0 }

var (
	_ Source      = (*ImageSource)(nil)
	_ PixelSource = (*ImageSource)(nil)
)
