//go:build windows

package main

import "syscall"

// enableDPIAwareness opts in to per-monitor DPI awareness so overlay
// coordinates match physical pixels on scaled displays. Falls back to
// the Vista-era system awareness call on old Windows.
func enableDPIAwareness() {
	shcore := syscall.NewLazyDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	const processPerMonitorDPIAware = 2
	if err := setProcessDpiAwareness.Find(); err == nil {
		setProcessDpiAwareness.Call(uintptr(processPerMonitorDPIAware))
		return
	}
	user32 := syscall.NewLazyDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err == nil {
		setProcessDPIAware.Call()
	}
}
