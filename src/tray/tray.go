// Package tray owns the system tray icon and its menu. Menu clicks
// never capture directly; they post requests to the event loop so the
// overlay always runs on the UI thread.
package tray

import (
	"log"

	"github.com/getlantern/systray"
	"github.com/ncruces/zenity"

	"portable-screenshot/src/config"
	"portable-screenshot/src/hotkey"
)

// Callbacks contains the menu event handlers.
type Callbacks struct {
	OnCapture func(kind hotkey.Kind)
	OnQuit    func()
}

// Tray manages the system tray icon and menu.
type Tray struct {
	store         *config.Store
	callbacks     Callbacks
	hotkeysActive bool

	regionBtn     *systray.MenuItem
	fullscreenBtn *systray.MenuItem
	windowBtn     *systray.MenuItem
	formatPNG     *systray.MenuItem
	formatJPG     *systray.MenuItem
	saveDirBtn    *systray.MenuItem
	saveDirEcho   *systray.MenuItem
	quitBtn       *systray.MenuItem
}

func New(store *config.Store, hotkeysActive bool, callbacks Callbacks) *Tray {
	return &Tray{
		store:         store,
		callbacks:     callbacks,
		hotkeysActive: hotkeysActive,
	}
}

// Run starts the tray. Blocking; run it on its own goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle("Portable Screenshot")
	systray.SetTooltip("Portable Screenshot")

	// Region first: it is the closest thing to an icon-click action
	// the menu can offer.
	t.regionBtn = systray.AddMenuItem(t.captureLabel("Capture Region", "Ctrl+Alt+P"), "Select a rectangle to capture")
	t.fullscreenBtn = systray.AddMenuItem(t.captureLabel("Capture Full Screen", "Ctrl+Alt+F"), "Capture all displays")
	t.windowBtn = systray.AddMenuItem(t.captureLabel("Capture Window", "Ctrl+Alt+W"), "Capture the active window")

	systray.AddSeparator()

	cfg := t.store.Settings()
	format := systray.AddMenuItem("Format", "Image file format")
	t.formatPNG = format.AddSubMenuItemCheckbox("PNG", "Lossless", cfg.Format == "png")
	t.formatJPG = format.AddSubMenuItemCheckbox("JPG", "Smaller files", cfg.Format == "jpg")

	t.saveDirBtn = systray.AddMenuItem("Save Location...", "Choose where screenshots are saved")
	t.saveDirEcho = systray.AddMenuItem(cfg.SaveDirectory, "")
	t.saveDirEcho.Disable()

	systray.AddSeparator()

	t.quitBtn = systray.AddMenuItem("Quit", "Exit Portable Screenshot")

	go t.handleMenuEvents()
}

func (t *Tray) captureLabel(action, combo string) string {
	if !t.hotkeysActive {
		return action
	}
	return action + "  " + combo
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.regionBtn.ClickedCh:
			t.capture(hotkey.KindRegion)
		case <-t.fullscreenBtn.ClickedCh:
			t.capture(hotkey.KindFullscreen)
		case <-t.windowBtn.ClickedCh:
			t.capture(hotkey.KindWindow)

		case <-t.formatPNG.ClickedCh:
			t.setFormat("png")
		case <-t.formatJPG.ClickedCh:
			t.setFormat("jpg")

		case <-t.saveDirBtn.ClickedCh:
			t.chooseSaveDir()

		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
			return
		}
	}
}

func (t *Tray) capture(kind hotkey.Kind) {
	if t.callbacks.OnCapture != nil {
		t.callbacks.OnCapture(kind)
	}
}

// setFormat persists the choice and keeps the check marks acting as a
// radio group, which systray does not do on its own.
func (t *Tray) setFormat(format string) {
	t.store.SetFormat(format)
	if format == "png" {
		t.formatPNG.Check()
		t.formatJPG.Uncheck()
	} else {
		t.formatJPG.Check()
		t.formatPNG.Uncheck()
	}
	log.Printf("Format set to %s", format)
}

func (t *Tray) chooseSaveDir() {
	current := t.store.Settings().SaveDirectory
	dir, err := zenity.SelectFile(
		zenity.Title("Choose save location"),
		zenity.Directory(),
		zenity.Filename(current),
	)
	if err != nil {
		// Includes zenity.ErrCanceled; either way nothing changes.
		if err != zenity.ErrCanceled {
			log.Printf("Save location dialog: %v", err)
		}
		return
	}
	t.store.SetSaveDirectory(dir)
	t.saveDirEcho.SetTitle(dir)
	log.Printf("Save location set to %s", dir)
}

func (t *Tray) onExit() {}

// Quit tears the tray icon down.
func (t *Tray) Quit() {
	systray.Quit()
}
