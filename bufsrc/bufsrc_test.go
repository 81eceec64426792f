package bufsrc

import (
	"image"
	"testing"
)

type fakeTexture struct{ destroyed bool }

func (t *fakeTexture) Destroy() { t.destroyed = true }

func TestImageSourceLockUnlock(t *testing.T) {
	src := NewImageSource(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if src.Locked() {
		t.Fatal("a freshly created ImageSource should not be locked")
	}

	src.Lock()
	if !src.Locked() {
		t.Fatal("expected Locked() to be true after Lock()")
	}

	src.Lock()
	src.Unlock()
	if !src.Locked() {
		t.Fatal("expected Locked() to still be true after one of two locks is released")
	}

	src.Unlock()
	if src.Locked() {
		t.Fatal("expected Locked() to be false after all locks are released")
	}
}

func TestImageSourceDimensions(t *testing.T) {
	src := NewImageSource(image.NewRGBA(image.Rect(0, 0, 10, 20)))
	if w := src.Width(); w != 10 {
		t.Errorf("Width() = %d, want 10", w)
	}
	if h := src.Height(); h != 20 {
		t.Errorf("Height() = %d, want 20", h)
	}
}

func TestImageSourceClientTexture(t *testing.T) {
	src := NewImageSource(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if src.ClientTexture() != nil {
		t.Fatal("expected no client texture by default")
	}

	tex := &fakeTexture{}
	src.SetClientTexture(tex)
	if src.ClientTexture() != Texture(tex) {
		t.Fatal("expected ClientTexture() to return the texture set via SetClientTexture")
	}
}

func TestImageSourceImageIdentity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src := NewImageSource(img)
	if src.Image() != img {
		t.Fatal("expected Image() to return the exact backing image, not a copy")
	}
}
