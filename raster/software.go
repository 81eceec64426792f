package raster

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/geom"
)

func init() {
	Register("software", func() Backend { return NewSoftwareBackend() })
}

// softwareTexture is a CPU-side texture: just a reference to uploaded
// pixels, adapted from the teacher's PixmapTarget
// (_examples/gogpu-gg/render/target.go) rather than a real GPU resource.
type softwareTexture struct {
	img *image.RGBA
}

func (t *softwareTexture) Destroy() { t.img = nil }

var _ bufsrc.Texture = (*softwareTexture)(nil)

// SoftwareBackend is a CPU rasterizer implementing Backend over an
// *image.RGBA target, grounded in the teacher's SoftwareBackend/
// SoftwareRenderer pair (_examples/gogpu-gg/backend/software.go,
// render/software.go). It never touches a GPU queue — DeviceHandle is
// accepted only so it satisfies the same integration surface a real GPU
// backend would.
type SoftwareBackend struct {
	handle DeviceHandle
	target *image.RGBA
	scisor *geom.Box // nil = no scissor
}

// NewSoftwareBackend creates a software backend. handle may be nil; when
// non-nil it is retained only for API parity with GPU-backed
// implementations (the software path never dereferences it).
func NewSoftwareBackend(handle ...DeviceHandle) *SoftwareBackend {
	var h DeviceHandle = NullDeviceHandle{}
	if len(handle) > 0 && handle[0] != nil {
		h = handle[0]
	}
	return &SoftwareBackend{handle: h}
}

func (b *SoftwareBackend) Name() string { return "software" }

func (b *SoftwareBackend) Init() error { return nil }

func (b *SoftwareBackend) Close() { b.target = nil }

func (b *SoftwareBackend) Begin(width, height int) {
	b.target = image.NewRGBA(image.Rect(0, 0, width, height))
	b.scisor = nil
}

func (b *SoftwareBackend) End() {}

// Image returns the last frame's rendered pixels. Exposed for tests and
// the CLI demo; a real GPU backend would instead present the texture.
func (b *SoftwareBackend) Image() *image.RGBA { return b.target }

func (b *SoftwareBackend) clipBox(box geom.Box) geom.Box {
	bounds := b.target.Bounds()
	box = box.Intersect(geom.Box{Width: bounds.Dx(), Height: bounds.Dy()})
	if b.scisor != nil {
		box = box.Intersect(*b.scisor)
	}
	return box
}

func (b *SoftwareBackend) Clear(c geom.Color) {
	if b.target == nil {
		return
	}
	bounds := b.target.Bounds()
	box := b.clipBox(geom.Box{Width: bounds.Dx(), Height: bounds.Dy()})
	col := toNRGBA(c)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			b.target.Set(x, y, col)
		}
	}
}

func (b *SoftwareBackend) Scissor(box *geom.Box) {
	b.scisor = box
}

func (b *SoftwareBackend) fillBox(box geom.Box, c geom.Color) {
	if box.IsEmpty() || b.target == nil {
		return
	}
	col := toNRGBA(c)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			blendOver(b.target, x, y, col)
		}
	}
}

// RenderRect draws box transformed by matrix. Output transforms are
// always axis-preserving (0/90/180/270 degrees, optionally mirrored), so
// projecting the box's corners through matrix and taking their bounding
// box reproduces the transformed rectangle exactly.
func (b *SoftwareBackend) RenderRect(box geom.Box, c geom.Color, matrix geom.Matrix) {
	dst := projectBoxF(geom.FBoxOf(box), matrix)
	b.fillBox(b.clipBox(dst), c)
}

// RenderTexturedQuad draws box (in the node's local, pre-transform unit
// space — the commit pipeline passes (0, 0, buffer width, buffer height))
// projected to screen space by matrix, sampling src from tex
// proportionally across box's local extent. This mirrors spec §4.F step
// 7: matrix combines the node's inverted transform, the scale to the
// destination size, and the output's projection; src_box selects which
// texels that box's local-space pixels map to.
func (b *SoftwareBackend) RenderTexturedQuad(tex bufsrc.Texture, box geom.Box, src geom.FBox, matrix geom.Matrix, alpha float64) {
	st, ok := tex.(*softwareTexture)
	if !ok || st.img == nil || b.target == nil || box.IsEmpty() {
		return
	}
	dst := b.clipBox(projectBoxF(geom.FBoxOf(box), matrix))
	if dst.IsEmpty() {
		return
	}
	inv := matrix.Invert()
	srcImg := st.img
	for y := dst.Y; y < dst.Bottom(); y++ {
		for x := dst.X; x < dst.Right(); x++ {
			// Map the destination pixel center back through the inverse
			// transform into box's local space, then proportionally into
			// the cropped source rectangle.
			lx, ly := inv.TransformPoint(float64(x)+0.5, float64(y)+0.5)
			if lx < 0 || ly < 0 || lx >= float64(box.Width) || ly >= float64(box.Height) {
				continue
			}
			sx := src.X + (lx/float64(box.Width))*src.Width
			sy := src.Y + (ly/float64(box.Height))*src.Height
			if sx < src.X || sy < src.Y || sx >= src.X+src.Width || sy >= src.Y+src.Height {
				continue
			}
			r, g, bl, a := srcImg.At(int(sx), int(sy)).RGBA()
			col := color.NRGBA64{R: uint16(r), G: uint16(g), B: uint16(bl), A: uint16(float64(a) * alpha)}
			blendOver(b.target, x, y, color.NRGBAModel.Convert(col).(color.NRGBA))
		}
	}
}

func (b *SoftwareBackend) TextureFromBuffer(buf bufsrc.Source, desc TextureDescriptor) (bufsrc.Texture, error) {
	ps, ok := buf.(bufsrc.PixelSource)
	if !ok {
		return nil, errors.New("raster: software backend requires a bufsrc.PixelSource")
	}
	img := ps.Image()
	if img == nil {
		return nil, errors.New("raster: nil buffer image")
	}
	_ = desc
	return &softwareTexture{img: img}, nil
}

func (b *SoftwareBackend) TextureDestroy(tex bufsrc.Texture) {
	tex.Destroy()
}

func toNRGBA(c geom.Color) color.NRGBA {
	cl := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return color.NRGBA{R: cl(c.R), G: cl(c.G), B: cl(c.B), A: cl(c.A)}
}

func blendOver(img *image.RGBA, x, y int, src color.NRGBA) {
	if src.A == 255 {
		img.Set(x, y, src)
		return
	}
	if src.A == 0 {
		return
	}
	dst := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	a := float64(src.A) / 255
	blend := func(s, d uint8) uint8 {
		return uint8(float64(s)*a + float64(d)*(1-a))
	}
	img.Set(x, y, color.NRGBA{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: uint8(math.Min(255, float64(src.A)+float64(dst.A)*(1-a))),
	})
}

// projectBoxF projects an FBox's 4 corners through matrix and returns the
// integer bounding box of the result.
func projectBoxF(box geom.FBox, matrix geom.Matrix) geom.Box {
	corners := [4][2]float64{
		{box.X, box.Y},
		{box.X + box.Width, box.Y},
		{box.X, box.Y + box.Height},
		{box.X + box.Width, box.Y + box.Height},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := matrix.TransformPoint(c[0], c[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return geom.Box{
		X:      int(math.Round(minX)),
		Y:      int(math.Round(minY)),
		Width:  int(math.Round(maxX - minX)),
		Height: int(math.Round(maxY - minY)),
	}
}

var _ Backend = (*SoftwareBackend)(nil)
