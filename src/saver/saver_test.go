package saver

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"portable-screenshot/src/config"
)

var filenamePattern = regexp.MustCompile(`^Screenshot_\d{8}_\d{6}_\d+\.[A-Za-z0-9]+$`)

func TestFilenameShape(t *testing.T) {
	for _, format := range []string{"png", "jpg", "bmp"} {
		name := Filename(format)
		if !strings.HasPrefix(name, "Screenshot_") {
			t.Errorf("missing prefix: %q", name)
		}
		if !strings.HasSuffix(name, "."+format) {
			t.Errorf("missing .%s extension: %q", format, name)
		}
		if !filenamePattern.MatchString(name) {
			t.Errorf("unexpected filename shape: %q", name)
		}
		if strings.Contains(name, " ") {
			t.Errorf("filename contains a space: %q", name)
		}
		if strings.Count(name, ".") != 1 {
			t.Errorf("filename must have a single extension dot: %q", name)
		}
	}
}

func TestFilenameCharset(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	if name := Filename("png"); !safe.MatchString(name) {
		t.Errorf("unsafe characters in %q", name)
	}
}

func TestFilenameTimestampResolution(t *testing.T) {
	name := FilenameAt(time.Date(2026, 2, 24, 14, 30, 52, 123456789, time.UTC), "png")
	stem := strings.TrimSuffix(strings.TrimPrefix(name, "Screenshot_"), ".png")
	if stem != "20260224_143052_123456" {
		t.Errorf("stem = %q, want 20260224_143052_123456", stem)
	}
	// Date-time part alone is 15 chars; the stem must carry more.
	if len(stem) <= 15 {
		t.Errorf("stem %q lacks a sub-second disambiguator", stem)
	}
}

func TestFilenameRapidCallsDiffer(t *testing.T) {
	a := Filename("png")
	time.Sleep(2 * time.Microsecond)
	b := Filename("png")
	if a == b {
		t.Errorf("two rapid calls produced identical names: %q", a)
	}
}

func testBitmap() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestSaveJPEGEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Settings{SaveDirectory: dir, Format: "jpg", JPGQuality: 50}

	path, err := Save(testBitmap(), cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("saved outside the save directory: %q", path)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "Screenshot_") || !strings.HasSuffix(name, ".jpg") {
		t.Errorf("unexpected filename: %q", name)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(entries))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not a valid JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Errorf("decoded size = %v, want 2x2", decoded.Bounds())
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Settings{SaveDirectory: dir, Format: "png", JPGQuality: 95}

	path, err := Save(testBitmap(), cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// PNG signature.
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Errorf("saved file is not a PNG")
	}
}

func TestSaveCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	cfg := config.Settings{SaveDirectory: dir, Format: "png", JPGQuality: 95}
	if _, err := Save(testBitmap(), cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("save directory was not created: %v", err)
	}
}

func TestSaveRejectsEmptyBitmap(t *testing.T) {
	cfg := config.Settings{SaveDirectory: t.TempDir(), Format: "png"}
	if _, err := Save(nil, cfg); err == nil {
		t.Error("expected error for nil bitmap")
	}
	if _, err := Save(image.NewRGBA(image.Rectangle{}), cfg); err == nil {
		t.Error("expected error for empty bitmap")
	}
}

func TestSaveUnknownFormatUsesExtensionVerbatim(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Settings{SaveDirectory: dir, Format: "bmp", JPGQuality: 95}
	path, err := Save(testBitmap(), cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(path, ".bmp") {
		t.Errorf("extension not applied verbatim: %q", path)
	}
}
