// Package capture wires the three capture modes to the grabber, the
// region overlay and the saver. Each entry point returns the path of
// the written file.
package capture

import (
	"errors"
	"fmt"
	"image"
	"log"

	"portable-screenshot/src/config"
	"portable-screenshot/src/gui"
	"portable-screenshot/src/saver"
	"portable-screenshot/src/screenshot"
)

// ErrCancelled is returned when the user dismisses the region overlay
// without committing a selection. Callers drop it silently.
var ErrCancelled = errors.New("selection cancelled")

// Swappable for tests running without a display.
var (
	grabDesktop    = screenshot.Capture
	foregroundRect = screenshot.ForegroundWindowRect
	selectRegion   = gui.SelectRegion
)

// acquire returns the desktop bitmap and the virtual-screen geometry,
// preferring the hotkey pre-capture over a fresh grab.
func acquire(pre *screenshot.PreCapture) (*image.RGBA, image.Rectangle, error) {
	if pre != nil {
		img, virtual, err := screenshot.FromPreCapture(pre)
		if err == nil {
			return img, virtual, nil
		}
		log.Printf("Pre-capture unusable, grabbing live: %v", err)
	}
	return grabDesktop()
}

// Fullscreen captures the whole virtual desktop and saves it.
func Fullscreen(cfg config.Settings, pre *screenshot.PreCapture) (string, error) {
	img, _, err := acquire(pre)
	if err != nil {
		return "", fmt.Errorf("capture desktop: %w", err)
	}
	return saver.Save(img, cfg)
}

// Window captures the foreground window. When no window rectangle can
// be resolved it falls back to a fullscreen capture, reusing the same
// pre-capture packet.
func Window(cfg config.Settings, pre *screenshot.PreCapture) (string, error) {
	rect, ok := foregroundRect()
	if !ok {
		log.Printf("No foreground window, falling back to fullscreen")
		return Fullscreen(cfg, pre)
	}

	img, virtual, err := acquire(pre)
	if err != nil {
		return "", fmt.Errorf("capture desktop: %w", err)
	}

	// Window rect is in screen coordinates; the bitmap is anchored at
	// the virtual-screen origin.
	local := rect.Sub(virtual.Min).Intersect(img.Bounds())
	if local.Empty() {
		return "", fmt.Errorf("foreground window %v outside captured area %v", rect, virtual)
	}
	return saver.Save(screenshot.Crop(img, local), cfg)
}

// Region freezes the desktop, runs the selection overlay and saves the
// chosen rectangle. Returns ErrCancelled when the user backs out.
func Region(cfg config.Settings, pre *screenshot.PreCapture) (string, error) {
	img, _, err := acquire(pre)
	if err != nil {
		return "", fmt.Errorf("capture desktop: %w", err)
	}

	rect, cancelled, err := selectRegion(img)
	if err != nil {
		return "", fmt.Errorf("region overlay: %w", err)
	}
	if cancelled {
		return "", ErrCancelled
	}
	return saver.Save(screenshot.Crop(img, rect), cfg)
}
