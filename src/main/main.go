package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"portable-screenshot/src/capture"
	"portable-screenshot/src/clipboard"
	"portable-screenshot/src/config"
	"portable-screenshot/src/eventloop"
	"portable-screenshot/src/hotkey"
	"portable-screenshot/src/logutil"
	"portable-screenshot/src/notification"
	"portable-screenshot/src/tray"
)

func validFormat(f string) bool {
	return f == "" || f == "png" || f == "jpg"
}

func main() {
	// DPI awareness must be set before any window or metric query.
	enableDPIAwareness()

	// Overlay windows are created and pumped from this goroutine; it
	// must stay on one OS thread for the message queue to work.
	runtime.LockOSThread()

	once := flag.Bool("once", false, "capture the full screen once and exit")
	format := flag.String("format", "", "override image format for this run (png or jpg)")
	saveDir := flag.String("save-dir", "", "override save directory for this run")
	flag.Parse()

	if !validFormat(*format) {
		fmt.Fprintf(os.Stderr, "invalid --format %q: must be png or jpg\n", *format)
		os.Exit(2)
	}

	configPath := config.DefaultPath()
	logutil.Setup(os.Getenv("ENABLE_FILE_LOGGING") == "true")

	store := config.NewStore(configPath)
	store.Override(*format, *saveDir)

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable, captures will not be copied: %v", err)
	}

	if *once {
		path, err := capture.Fullscreen(store.Settings(), nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "capture failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved: %s\n", path)
		return
	}

	listener := hotkey.NewListener()
	listener.Start()

	loop := eventloop.New(store, listener)

	ctx, cancel := context.WithCancel(context.Background())

	trayIcon := tray.New(store, listener.Active(), tray.Callbacks{
		OnCapture: loop.Request,
		OnQuit:    cancel,
	})
	go trayIcon.Run()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	notification.Startup(store.Settings(), listener.Active())

	loop.Run(ctx)

	if err := store.Persist(); err != nil {
		log.Printf("Failed to persist settings on exit: %v", err)
	}
	listener.Stop()
	trayIcon.Quit()
}
