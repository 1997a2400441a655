package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init prepares the system clipboard. On headless systems it fails;
// callers treat that as degraded rather than fatal and saves simply
// skip the clipboard copy.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return nil
	}
	if err := clipboard.Init(); err != nil {
		return err
	}
	initialized = true
	return nil
}

// WriteImage places PNG-encoded image data on the clipboard. The mutex
// guards against interleaved writes from the capture paths.
func WriteImage(png []byte) error {
	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		return fmt.Errorf("clipboard not initialized")
	}
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}
