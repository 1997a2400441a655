package gui

import (
	"image"
	"testing"
)

func TestSelectionOutcomeNormalizesDragDirection(t *testing.T) {
	cases := []struct {
		name           string
		ox, oy, cx, cy int
		want           image.Rectangle
	}{
		{"down-right", 10, 20, 110, 220, image.Rect(10, 20, 110, 220)},
		{"up-left", 110, 220, 10, 20, image.Rect(10, 20, 110, 220)},
		{"down-left", 110, 20, 10, 220, image.Rect(10, 20, 110, 220)},
		{"up-right", 10, 220, 110, 20, image.Rect(10, 20, 110, 220)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rect, committed := selectionOutcome(tc.ox, tc.oy, tc.cx, tc.cy)
			if rect != tc.want {
				t.Errorf("rect = %v, want %v", rect, tc.want)
			}
			if !committed {
				t.Error("a 100x200 drag should commit")
			}
		})
	}
}

func TestSelectionOutcomeRejectsTinySelections(t *testing.T) {
	if _, committed := selectionOutcome(0, 0, 0, 0); committed {
		t.Error("zero-size selection should cancel")
	}
	if _, committed := selectionOutcome(50, 50, 55, 300); committed {
		t.Error("5px-wide selection should cancel")
	}
	if _, committed := selectionOutcome(50, 300, 300, 305); committed {
		t.Error("5px-tall selection should cancel")
	}
	if _, committed := selectionOutcome(50, 50, 56, 56); !committed {
		t.Error("6x6 selection should commit")
	}
}
