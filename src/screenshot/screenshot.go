package screenshot

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/kbinani/screenshot"
)

// PreCapture is a raw desktop grab taken by the hotkey thread before
// the UI thread wakes up. It is handed over through a single slot and
// converted back with FromPreCapture.
type PreCapture struct {
	Pix     []byte
	Width   int
	Height  int
	OriginX int
	OriginY int
}

// VirtualBounds returns the bounding rectangle spanning all connected
// displays.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

// Capture grabs the entire virtual desktop, compositing every display
// at its offset within the union rectangle. The returned image is
// anchored at (0,0); the rectangle carries the virtual geometry.
func Capture() (*image.RGBA, image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	union, err := VirtualBounds()
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	combined := image.NewRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		img, err := screenshot.CaptureDisplay(i)
		if err != nil {
			return nil, image.Rectangle{}, fmt.Errorf("failed to capture display %d: %v", i, err)
		}
		offset := bounds.Min.Sub(union.Min)
		draw.Draw(combined, image.Rectangle{Min: offset, Max: offset.Add(bounds.Size())}, img, img.Bounds().Min, draw.Src)
	}
	return combined, union, nil
}

// NewPreCapture wraps a live grab into a handoff packet.
func NewPreCapture(img *image.RGBA, virtual image.Rectangle) *PreCapture {
	return &PreCapture{
		Pix:     img.Pix,
		Width:   img.Bounds().Dx(),
		Height:  img.Bounds().Dy(),
		OriginX: virtual.Min.X,
		OriginY: virtual.Min.Y,
	}
}

// FromPreCapture reconstructs the same bitmap representation Capture
// produces, so downstream cropping is agnostic to which path fed it.
func FromPreCapture(p *PreCapture) (*image.RGBA, image.Rectangle, error) {
	if p == nil || p.Width <= 0 || p.Height <= 0 || len(p.Pix) < p.Width*p.Height*4 {
		return nil, image.Rectangle{}, fmt.Errorf("invalid pre-capture packet")
	}
	img := &image.RGBA{
		Pix:    p.Pix,
		Stride: p.Width * 4,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
	virtual := image.Rect(p.OriginX, p.OriginY, p.OriginX+p.Width, p.OriginY+p.Height)
	return img, virtual, nil
}

// Crop copies rect out of img into a new image anchored at (0,0).
func Crop(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	rect = rect.Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}
