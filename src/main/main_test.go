package main

import "testing"

func TestValidFormat(t *testing.T) {
	for _, ok := range []string{"", "png", "jpg"} {
		if !validFormat(ok) {
			t.Errorf("validFormat(%q) = false, want true", ok)
		}
	}
	for _, bad := range []string{"jpeg", "PNG", "gif", "png "} {
		if validFormat(bad) {
			t.Errorf("validFormat(%q) = true, want false", bad)
		}
	}
}
