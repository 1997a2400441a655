//go:build linux

package hotkey

import "golang.design/x/hotkey"

var captureModifiers = []hotkey.Modifier{hotkey.ModCtrl, hotkey.Mod1}
