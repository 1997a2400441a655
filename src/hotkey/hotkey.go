// Package hotkey registers the global capture shortcuts and hands
// fired events to the event loop together with a pre-captured desktop
// bitmap, so the saved image shows the screen as it was at keypress.
package hotkey

import (
	"log"
	"sync"
	"sync/atomic"

	"golang.design/x/hotkey"

	"portable-screenshot/src/screenshot"
)

// Kind identifies which shortcut fired.
type Kind int

const (
	KindRegion Kind = iota
	KindFullscreen
	KindWindow
)

func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindFullscreen:
		return "fullscreen"
	case KindWindow:
		return "window"
	}
	return "unknown"
}

type binding struct {
	kind  Kind
	key   hotkey.Key
	label string
}

var bindings = [3]binding{
	{KindRegion, hotkey.KeyP, "Ctrl+Alt+P"},
	{KindFullscreen, hotkey.KeyF, "Ctrl+Alt+F"},
	{KindWindow, hotkey.KeyW, "Ctrl+Alt+W"},
}

// Listener owns the registered hotkeys and the goroutine that waits on
// them. Events are delivered on a small buffered channel; if the event
// loop is mid-capture, further presses are dropped rather than queued.
type Listener struct {
	events     chan Kind
	preCapture atomic.Pointer[screenshot.PreCapture]

	registered []*hotkey.Hotkey
	active     bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewListener() *Listener {
	return &Listener{
		events: make(chan Kind, 4),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start registers the shortcuts and spawns the wait loop. A shortcut
// already owned by another application logs a warning and is skipped;
// the rest keep working. With zero registrations the listener is a
// no-op and Active reports false.
func (l *Listener) Start() {
	var keydowns [len(bindings)]<-chan hotkey.Event
	for i, b := range bindings {
		hk := hotkey.New(captureModifiers, b.key)
		if err := hk.Register(); err != nil {
			log.Printf("Warning: could not register %s (%s capture): %v", b.label, b.kind, err)
			continue
		}
		l.registered = append(l.registered, hk)
		keydowns[i] = hk.Keydown()
		log.Printf("Registered %s for %s capture", b.label, b.kind)
	}
	l.active = len(l.registered) > 0
	if !l.active {
		log.Printf("No hotkeys registered; capture via the tray menu only")
		close(l.done)
		return
	}

	go l.loop(keydowns)
}

func (l *Listener) loop(keydowns [len(bindings)]<-chan hotkey.Event) {
	defer close(l.done)
	for {
		select {
		case <-l.stop:
			return
		case <-keydowns[KindRegion]:
			l.fire(KindRegion)
		case <-keydowns[KindFullscreen]:
			l.fire(KindFullscreen)
		case <-keydowns[KindWindow]:
			l.fire(KindWindow)
		}
	}
}

// fire snapshots the desktop before anything else so the overlay (or
// the save) operates on the screen exactly as it was at the keypress.
func (l *Listener) fire(kind Kind) {
	img, virtual, err := screenshot.Capture()
	if err != nil {
		log.Printf("Pre-capture failed, capture will grab live: %v", err)
		l.preCapture.Store(nil)
	} else {
		l.preCapture.Store(screenshot.NewPreCapture(img, virtual))
	}

	select {
	case l.events <- kind:
	default:
		log.Printf("Dropping %s hotkey press: capture already pending", kind)
	}
}

// Events is the stream of fired shortcuts.
func (l *Listener) Events() <-chan Kind {
	return l.events
}

// ConsumePreCapture takes the pending desktop snapshot, leaving the
// slot empty. Returns nil if no snapshot is waiting.
func (l *Listener) ConsumePreCapture() *screenshot.PreCapture {
	return l.preCapture.Swap(nil)
}

// Active reports whether at least one shortcut registered.
func (l *Listener) Active() bool {
	return l.active
}

// Stop unregisters the shortcuts and joins the wait loop. Safe to call
// more than once.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
		<-l.done
		for _, hk := range l.registered {
			if err := hk.Unregister(); err != nil {
				log.Printf("Unregister hotkey: %v", err)
			}
		}
		l.registered = nil
		l.active = false
	})
}
