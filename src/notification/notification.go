package notification

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gen2brain/beeep"

	"portable-screenshot/src/config"
)

const appName = "PortableScreenshot"

// Saved shows the post-capture toast with the destination filename.
func Saved(path string) {
	show("Screenshot Saved", filepath.Base(path))
}

// Startup announces the hotkeys and active settings once the tray is up.
func Startup(cfg config.Settings, hotkeysActive bool) {
	hint := "click the tray menu to capture"
	if hotkeysActive {
		hint = "Ctrl+Alt+P to capture region"
	}
	show(appName, fmt.Sprintf("%s\nFormat: %s | Save: %s", hint, cfg.Format, cfg.SaveDirectory))
}

func show(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Printf("Notification failed: %v", err)
	}
}
