package eventloop

import (
	"context"
	"testing"
	"time"

	"portable-screenshot/src/config"
	"portable-screenshot/src/hotkey"
)

func TestRequestNeverBlocks(t *testing.T) {
	l := New(config.NewStore(""), hotkey.NewListener())

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Nothing drains the loop; posts beyond the buffer are dropped.
		for i := 0; i < 20; i++ {
			l.Request(hotkey.KindFullscreen)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Request blocked")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	l := New(config.NewStore(""), hotkey.NewListener())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
