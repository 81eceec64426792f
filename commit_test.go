package scenegraph

import (
	"image"
	"testing"
	"time"

	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/display"
	"github.com/gogpu/scenegraph/geom"
)

func TestCommitCompositesRectOntoOutput(t *testing.T) {
	s, fake := newTestScene(50, 50)
	root := s.Root()
	CreateRect(root, 50, 50, geom.RGB(1, 0, 0))

	s.Commit()

	attached := fake.AttachedBuffer()
	if attached == nil {
		t.Fatal("expected a composited frame to be attached after Commit")
	}
	ps, ok := attached.(bufsrc.PixelSource)
	if !ok {
		t.Fatal("attached buffer is not a PixelSource")
	}
	img := ps.Image()
	r, _, _, _ := img.At(25, 25).RGBA()
	if r == 0 {
		t.Error("expected the red rect to have been drawn at (25, 25)")
	}
}

func TestCommitDirectScanout(t *testing.T) {
	s, fake := newTestScene(40, 40)
	root := s.Root()

	buf := CreateBuffer(root)
	src := bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 40, 40)))
	buf.SetBuffer(src)
	buf.SetPosition(0, 0)

	var presented bool
	buf.OnOutputPresent(func(PresentEvent) { presented = true })

	s.Commit()

	if fake.AttachedBuffer() != bufsrc.Source(src) {
		t.Error("expected the client buffer to be attached directly (scanout), not a composited frame")
	}
	if !presented {
		t.Error("expected OutputPresent to fire on successful scanout commit")
	}
}

func TestCommitFallsBackWhenSecondNodePresent(t *testing.T) {
	s, fake := newTestScene(40, 40)
	root := s.Root()

	buf := CreateBuffer(root)
	src := bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 40, 40)))
	buf.SetBuffer(src)
	buf.SetPosition(0, 0)

	CreateRect(root, 5, 5, geom.RGB(0, 1, 0))

	s.Commit()

	if fake.AttachedBuffer() == bufsrc.Source(src) {
		t.Error("expected compositing, not direct scanout, when more than one node is visible")
	}
}

func TestHighlightModeSkipsScanout(t *testing.T) {
	fake := display.NewFakeOutput(40, 40)
	s := NewScene(WithDebugDamage(DebugDamageHighlight))
	s.NewOutput(fake, 0, 0)
	root := s.Root()

	buf := CreateBuffer(root)
	src := bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 40, 40)))
	buf.SetBuffer(src)
	buf.SetPosition(0, 0)

	s.Commit()

	if fake.AttachedBuffer() == bufsrc.Source(src) {
		t.Error("expected DebugDamageHighlight to force compositing even when scanout would otherwise qualify")
	}
}

func TestHighlightRegionFadesAndExpires(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	fake := display.NewFakeOutput(40, 40)
	s := NewScene(WithDebugDamage(DebugDamageHighlight), WithClock(clock))
	o := s.NewOutput(fake, 0, 0)
	root := s.Root()
	CreateRect(root, 40, 40, geom.RGB(0, 0, 1))

	s.Commit()
	if len(s.highlights[o]) != 1 {
		t.Fatalf("expected one highlight region captured after the first commit, got %d", len(s.highlights[o]))
	}
	col := highlightColor(now, s.highlights[o][0].created)
	if col.A < 0.49 || col.A > 0.5 {
		t.Errorf("expected highlight alpha ~0.5 at age 0, got %v", col.A)
	}

	now = now.Add(highlightFadeout)
	s.Commit()
	if len(s.highlights[o]) != 0 {
		t.Errorf("expected the highlight region to be swept out once its age reaches the fadeout window, got %d remaining", len(s.highlights[o]))
	}
}
