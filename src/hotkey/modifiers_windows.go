//go:build windows

package hotkey

import "golang.design/x/hotkey"

var captureModifiers = []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModAlt}
