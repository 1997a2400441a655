//go:build !windows

package gui

import (
	"fmt"
	"image"
)

func runRegionSelector(background *image.RGBA) (image.Rectangle, bool, error) {
	return image.Rectangle{}, false, fmt.Errorf("interactive region selection not implemented for this platform")
}
