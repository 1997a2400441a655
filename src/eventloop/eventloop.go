// Package eventloop runs the capture coordinator on the main OS
// thread. Overlay windows must be created and pumped on the thread
// that owns them, so every capture, hotkey or tray initiated, is
// dispatched from here.
package eventloop

import (
	"context"
	"errors"
	"log"

	"portable-screenshot/src/capture"
	"portable-screenshot/src/config"
	"portable-screenshot/src/hotkey"
	"portable-screenshot/src/notification"
	"portable-screenshot/src/screenshot"
)

// Loop is the single-threaded capture coordinator.
type Loop struct {
	store    *config.Store
	listener *hotkey.Listener
	requests chan hotkey.Kind
}

func New(store *config.Store, listener *hotkey.Listener) *Loop {
	return &Loop{
		store:    store,
		listener: listener,
		requests: make(chan hotkey.Kind, 4),
	}
}

// Request posts a tray-initiated capture. Non-blocking; a request
// arriving while a capture is in flight and the buffer is full is
// dropped.
func (l *Loop) Request(kind hotkey.Kind) {
	select {
	case l.requests <- kind:
	default:
		log.Printf("Dropping %s request: capture already pending", kind)
	}
}

// Run processes hotkey and tray events until ctx is cancelled. Call it
// from the goroutine locked to the main OS thread.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case kind := <-l.listener.Events():
			l.handle(kind, l.listener.ConsumePreCapture())
		case kind := <-l.requests:
			l.handle(kind, nil)
		}
	}
}

func (l *Loop) handle(kind hotkey.Kind, pre *screenshot.PreCapture) {
	cfg := l.store.Settings()

	var path string
	var err error
	switch kind {
	case hotkey.KindRegion:
		path, err = capture.Region(cfg, pre)
	case hotkey.KindFullscreen:
		path, err = capture.Fullscreen(cfg, pre)
	case hotkey.KindWindow:
		path, err = capture.Window(cfg, pre)
	default:
		log.Printf("Unknown capture kind %d", kind)
		return
	}

	if errors.Is(err, capture.ErrCancelled) {
		return
	}
	if err != nil {
		log.Printf("%s capture failed: %v", kind, err)
		return
	}

	log.Printf("Saved %s capture to %s", kind, path)
	notification.Saved(path)
}
