// Package raster defines the "external rendering backend" scene.Scene's
// commit pipeline draws through (spec §6, "Consumed from the rendering
// backend"): clear/scissor/render_rect/render_textured_quad plus
// buffer-to-texture upload. The scene graph's commit pipeline (see the
// root scenegraph package's commit.go) calls only this interface — it
// never touches pixels or a GPU queue directly, matching spec §1's
// explicit carve-out of the rasterizer as an external collaborator.
//
// Backend selection follows the teacher's registry pattern exactly
// (_examples/gogpu-gg/backend/registry.go): a name -> factory map with a
// priority-ordered Default(). Only "software" is registered by this
// module; a host embedding a GPU backend registers its own factory the
// same way backend/native and backend/rust register themselves in the
// teacher.
package raster

import (
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/geom"
)

// DeviceHandle provides GPU device access from the host application,
// aliased to gpucontext.DeviceProvider exactly as the teacher's
// render.DeviceHandle does — the backend receives a device, it never
// creates one (_examples/gogpu-gg/render/device.go).
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with nil GPU resources, used by
// Backend implementations (like SoftwareBackend) that never touch a real
// queue. Adapted from the teacher's render.NullDeviceHandle.
type NullDeviceHandle struct{}

func (NullDeviceHandle) Device() gpucontext.Device   { return nil }
func (NullDeviceHandle) Queue() gpucontext.Queue     { return nil }
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceHandle = NullDeviceHandle{}

// TextureUsage mirrors the teacher's render.TextureUsage bit flags.
type TextureUsage uint32

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// TextureDescriptor describes a texture a Backend is asked to produce,
// trimmed from the teacher's render.TextureDescriptor to the fields a 2D
// compositor texture actually varies: label, size, and format/usage.
type TextureDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
	Usage  TextureUsage
}

// DefaultTextureDescriptor returns sane defaults for a buffer-backed
// texture: RGBA8, sampleable, usable as a render attachment for debug
// highlight compositing.
func DefaultTextureDescriptor(width, height uint32) TextureDescriptor {
	return TextureDescriptor{
		Width:  width,
		Height: height,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  TextureUsageTextureBinding | TextureUsageRenderAttachment,
	}
}

// Backend is the external rendering backend scene.Scene commits through.
// Begin/End bracket one output's frame; Clear/Scissor/RenderRect/
// RenderTexturedQuad are issued in between, once per damaged rectangle,
// exactly as spec §4.F describes the composite path.
type Backend interface {
	// Name identifies the backend ("software", "wgpu", ...).
	Name() string

	// Init prepares the backend for use.
	Init() error

	// Close releases all backend resources. The backend must not be used
	// afterward.
	Close()

	// Begin starts a frame targeting a surface of the given physical
	// pixel dimensions.
	Begin(width, height int)

	// End finishes the current frame.
	End()

	// Clear fills the current scissor rect (or the whole target if no
	// scissor is set) with c.
	Clear(c geom.Color)

	// Scissor restricts subsequent draws to box, or removes the
	// restriction when box is nil.
	Scissor(box *geom.Box)

	// RenderRect draws a solid-colored rectangle transformed by matrix.
	RenderRect(box geom.Box, c geom.Color, matrix geom.Matrix)

	// RenderTexturedQuad draws box (in the node's local, pre-transform
	// unit space) projected to screen space by matrix, sampling the src
	// sub-rectangle of tex proportionally across box's extent, modulated
	// by alpha.
	RenderTexturedQuad(tex bufsrc.Texture, box geom.Box, src geom.FBox, matrix geom.Matrix, alpha float64)

	// TextureFromBuffer uploads buf's current contents as a new texture.
	TextureFromBuffer(buf bufsrc.Source, desc TextureDescriptor) (bufsrc.Texture, error)

	// TextureDestroy releases a texture created by TextureFromBuffer.
	TextureDestroy(tex bufsrc.Texture)
}

// Factory creates a new Backend instance.
type Factory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	priority   = []string{"wgpu", "native", "software"}
)

// Register registers a backend factory under name, replacing any existing
// registration for that name.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Get returns a new instance of the backend registered as name, or nil if
// none is registered.
func Get(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := backends[name]
	if !ok {
		return nil
	}
	return f()
}

// Default returns the highest-priority registered backend ("wgpu" >
// "native" > "software"), falling back to any registered backend, or nil
// if none are registered.
func Default() Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, name := range priority {
		if f, ok := backends[name]; ok {
			return f()
		}
	}
	for _, f := range backends {
		return f()
	}
	return nil
}
