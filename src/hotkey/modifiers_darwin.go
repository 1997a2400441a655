//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var captureModifiers = []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModOption}
