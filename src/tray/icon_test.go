package tray

import (
	"bytes"
	"image/png"
	"testing"
)

func TestIconPNGDecodes(t *testing.T) {
	data := iconPNG()
	if len(data) == 0 {
		t.Fatal("empty icon")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("icon is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != iconSize || img.Bounds().Dy() != iconSize {
		t.Errorf("icon size %v, want %dx%d", img.Bounds(), iconSize, iconSize)
	}
}

func TestWrapICOHeader(t *testing.T) {
	data := wrapICO(iconPNG())
	if len(data) < 22 {
		t.Fatal("ICO shorter than its header")
	}
	// reserved=0, type=1, count=1
	if data[0] != 0 || data[1] != 0 || data[2] != 1 || data[3] != 0 || data[4] != 1 || data[5] != 0 {
		t.Errorf("bad ICONDIR header: % x", data[:6])
	}
	// Payload at offset 22 must be the PNG signature.
	if !bytes.HasPrefix(data[22:], []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("ICO payload is not PNG")
	}
}
