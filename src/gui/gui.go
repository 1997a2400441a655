package gui

import (
	"image"
)

// MinSelectionSpan is the smallest rubber-band dimension (in device
// independent pixels) treated as an intentional selection. Anything
// smaller cancels instead of committing a sliver capture.
const MinSelectionSpan = 5

// selectionOutcome normalizes the drag rectangle and decides whether
// the release commits it or cancels the selection.
func selectionOutcome(originX, originY, currentX, currentY int) (image.Rectangle, bool) {
	rect := image.Rect(originX, originY, currentX, currentY)
	committed := rect.Dx() > MinSelectionSpan && rect.Dy() > MinSelectionSpan
	return rect, committed
}

// SelectRegion shows the full-virtual-desktop overlay over the frozen
// background and blocks until the user commits or cancels. The
// returned rectangle is in overlay-local coordinates, ready to crop
// the background with. cancelled is true on Escape or a too-small
// selection.
func SelectRegion(background *image.RGBA) (rect image.Rectangle, cancelled bool, err error) {
	return runRegionSelector(background)
}
