package saver

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"portable-screenshot/src/clipboard"
	"portable-screenshot/src/config"
)

const (
	filenamePrefix = "Screenshot_"
	// Keeps the timestamp stem bounded while retaining microsecond
	// resolution (YYYYMMDD_HHMMSS_ + 6 digits).
	timestampLen = 22
)

// Filename builds a timestamped name like
// Screenshot_20260224_143052_123456.png. Only ASCII alphanumerics,
// underscores and the extension dot appear, so the name is safe on any
// filesystem.
func Filename(format string) string {
	return FilenameAt(time.Now(), format)
}

// FilenameAt is Filename for a fixed instant.
func FilenameAt(t time.Time, format string) string {
	stem := fmt.Sprintf("%s_%06d", t.Format("20060102_150405"), t.Nanosecond()/1000)
	if len(stem) > timestampLen {
		stem = stem[:timestampLen]
	}
	return fmt.Sprintf("%s%s.%s", filenamePrefix, stem, format)
}

// Save encodes img per the configured format, writes it under the save
// directory and copies it to the clipboard. Returns the saved path.
// The clipboard copy is best effort; encode or write failures are
// returned to the caller, which skips the success path.
func Save(img *image.RGBA, cfg config.Settings) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("nothing to save: empty bitmap")
	}

	if err := os.MkdirAll(cfg.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %v", err)
	}
	outPath := filepath.Join(cfg.SaveDirectory, Filename(cfg.Format))

	data, err := encode(img, cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %v", outPath, err)
	}

	copyToClipboard(img)
	return outPath, nil
}

func encode(img *image.RGBA, cfg config.Settings) ([]byte, error) {
	var buf bytes.Buffer
	if cfg.Format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %v", err)
		}
		return buf.Bytes(), nil
	}

	// Anything that is not PNG encodes as JPEG under the configured
	// extension, matching the unchecked format contract.
	if err := jpeg.Encode(&buf, flattenAlpha(img), &jpeg.Options{Quality: jpegQuality(cfg)}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %v", err)
	}
	return buf.Bytes(), nil
}

func jpegQuality(cfg config.Settings) int {
	if cfg.JPGQuality <= 0 || cfg.JPGQuality > 100 {
		return config.DefaultJPGQuality
	}
	return cfg.JPGQuality
}

// flattenAlpha composites the image over white; JPEG has no alpha
// channel.
func flattenAlpha(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

func copyToClipboard(img *image.RGBA) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("Clipboard copy skipped, PNG encode failed: %v", err)
		return
	}
	if err := clipboard.WriteImage(buf.Bytes()); err != nil {
		log.Printf("Clipboard copy failed: %v", err)
	}
}
