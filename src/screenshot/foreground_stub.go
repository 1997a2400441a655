//go:build !windows

package screenshot

import "image"

// ForegroundWindowRect is unsupported off Windows; callers fall back
// to a full-screen capture.
func ForegroundWindowRect() (image.Rectangle, bool) {
	return image.Rectangle{}, false
}
