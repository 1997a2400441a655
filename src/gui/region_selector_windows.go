//go:build windows

package gui

import (
	"fmt"
	"image"
	"log"
	"os"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
)

// Overlay state. A single selector runs at a time on the UI thread;
// the window procedure is a C callback and cannot close over locals.
var (
	overlayHwnd       win.HWND
	overlayBackground *image.RGBA
	overlayDarkened   *image.RGBA
	overlayResult     chan selectionResult
	crossCursor       win.HCURSOR

	selecting                  bool
	startX, startY, endX, endY int32

	backgroundDC win.HDC
	darkenedDC   win.HDC
	backgroundBM win.HBITMAP
	darkenedBM   win.HBITMAP
)

type selectionResult struct {
	rect      image.Rectangle
	committed bool
}

const (
	// COLORREF is 0x00BBGGRR; this is the spotlight border, RGB(0,174,255).
	borderColor   = 0x00FFAE00
	labelTextCol  = 0x00FFFFFF
	labelBackCol  = 0x00303030
	labelOffsetPx = 15
)

var (
	user32DLL                    = syscall.NewLazyDLL("user32.dll")
	procAllowSetForegroundWindow = user32DLL.NewProc("AllowSetForegroundWindow")

	gdi32DLL      = syscall.NewLazyDLL("gdi32.dll")
	procCreatePen = gdi32DLL.NewProc("CreatePen")
	procRectangle = gdi32DLL.NewProc("Rectangle")
)

func runRegionSelector(background *image.RGBA) (image.Rectangle, bool, error) {
	if background == nil || background.Bounds().Empty() {
		return image.Rectangle{}, false, fmt.Errorf("no background bitmap for overlay")
	}

	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	log.Printf("Overlay covering virtual screen: x=%d y=%d w=%d h=%d", vx, vy, vw, vh)

	overlayBackground = background
	overlayDarkened = darken(background)
	overlayResult = make(chan selectionResult, 1)
	selecting = false

	crossCursor = win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS))

	// Unique class name so a crashed previous registration never blocks us.
	classNameStr := fmt.Sprintf("RegionSelectorOverlay_%d", time.Now().UnixNano())
	className := syscall.StringToUTF16Ptr(classNameStr)
	wndClass := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   syscall.NewCallback(overlayWndProc),
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       crossCursor,
		HbrBackground: 0,
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wndClass) == 0 {
		return image.Rectangle{}, false, fmt.Errorf("failed to register overlay window class")
	}
	defer win.UnregisterClass(className)

	overlayHwnd = win.CreateWindowEx(
		win.WS_EX_TOPMOST,
		className,
		syscall.StringToUTF16Ptr("Drag to capture a region, ESC cancels"),
		win.WS_POPUP|win.WS_VISIBLE,
		vx, vy, vw, vh,
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if overlayHwnd == 0 {
		return image.Rectangle{}, false, fmt.Errorf("failed to create overlay window")
	}
	defer releaseBackbuffers()

	// Take input focus immediately so the first click and ESC are not
	// delivered to whatever window was active before.
	win.ShowWindow(overlayHwnd, win.SW_SHOW)
	procAllowSetForegroundWindow.Call(uintptr(os.Getpid()))
	win.SetForegroundWindow(overlayHwnd)
	win.BringWindowToTop(overlayHwnd)
	win.SetFocus(overlayHwnd)
	win.UpdateWindow(overlayHwnd)

	var msg win.MSG
	for {
		ret := win.GetMessage(&msg, 0, 0, 0)
		if ret == 0 || ret == -1 { // WM_QUIT (ESC) or error
			win.DestroyWindow(overlayHwnd)
			return image.Rectangle{}, true, nil
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)

		select {
		case res := <-overlayResult:
			win.DestroyWindow(overlayHwnd)
			if !res.committed {
				return image.Rectangle{}, true, nil
			}
			log.Printf("Selection committed: %v", res.rect)
			return res.rect, false, nil
		default:
		}
	}
}

func overlayWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_LBUTTONDOWN:
		win.SetCapture(hwnd)
		selecting = true
		startX = int32(win.LOWORD(uint32(lParam)))
		startY = int32(win.HIWORD(uint32(lParam)))
		endX, endY = startX, startY
		win.InvalidateRect(hwnd, nil, false)
		win.UpdateWindow(hwnd)
		return 0

	case win.WM_MOUSEMOVE:
		if selecting {
			endX = int32(win.LOWORD(uint32(lParam)))
			endY = int32(win.HIWORD(uint32(lParam)))
			win.InvalidateRect(hwnd, nil, false)
			win.UpdateWindow(hwnd)
		}
		return 0

	case win.WM_LBUTTONUP:
		if selecting {
			win.ReleaseCapture()
			selecting = false
			endX = int32(win.LOWORD(uint32(lParam)))
			endY = int32(win.HIWORD(uint32(lParam)))
			rect, committed := selectionOutcome(int(startX), int(startY), int(endX), int(endY))
			// A too-small selection closes the overlay as a cancel,
			// never as a zero-size capture.
			overlayResult <- selectionResult{rect: rect, committed: committed}
		}
		return 0

	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		paintOverlay(hdc)
		win.EndPaint(hwnd, &ps)
		return 0

	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			win.PostQuitMessage(0)
		}
		return 0

	case win.WM_SETCURSOR:
		if crossCursor != 0 {
			win.SetCursor(crossCursor)
		}
		return 1

	case win.WM_NCHITTEST:
		// Every point is client area so no hit on a border steals
		// mouse events from the rubber band.
		return uintptr(win.HTCLIENT)

	case win.WM_DESTROY:
		// No PostQuitMessage here: the commit path returns from
		// runRegionSelector directly, and a stray WM_QUIT left in the
		// thread queue would instantly cancel the next selection.
		return 0
	}

	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func paintOverlay(hdc win.HDC) {
	if !prepareBackbuffers(hdc) {
		return
	}
	w := int32(overlayBackground.Bounds().Dx())
	h := int32(overlayBackground.Bounds().Dy())

	// Darkened desktop everywhere...
	win.BitBlt(hdc, 0, 0, w, h, darkenedDC, 0, 0, win.SRCCOPY)

	if !selecting {
		return
	}
	rect, _ := selectionOutcome(int(startX), int(startY), int(endX), int(endY))
	if rect.Empty() {
		return
	}

	// ...except the spotlight, which shows the frozen capture as-is.
	win.BitBlt(hdc,
		int32(rect.Min.X), int32(rect.Min.Y), int32(rect.Dx()), int32(rect.Dy()),
		backgroundDC, int32(rect.Min.X), int32(rect.Min.Y), win.SRCCOPY)

	drawSelectionBorder(hdc, rect)
	drawSizeLabel(hdc, rect)
}

func drawSelectionBorder(hdc win.HDC, rect image.Rectangle) {
	pen, _, _ := procCreatePen.Call(0 /* PS_SOLID */, 2, borderColor)
	oldPen := win.SelectObject(hdc, win.HGDIOBJ(pen))
	oldBrush := win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))

	procRectangle.Call(uintptr(hdc),
		uintptr(rect.Min.X), uintptr(rect.Min.Y), uintptr(rect.Max.X), uintptr(rect.Max.Y))

	win.SelectObject(hdc, oldPen)
	win.SelectObject(hdc, oldBrush)
	win.DeleteObject(win.HGDIOBJ(pen))
}

func drawSizeLabel(hdc win.HDC, rect image.Rectangle) {
	label := fmt.Sprintf(" %d x %d ", rect.Dx(), rect.Dy())
	x := endX + labelOffsetPx
	y := endY + labelOffsetPx

	win.SetBkMode(hdc, win.OPAQUE)
	win.SetBkColor(hdc, labelBackCol)
	win.SetTextColor(hdc, labelTextCol)
	win.TextOut(hdc, x, y, syscall.StringToUTF16Ptr(label), int32(len(label)))
}

// prepareBackbuffers lazily creates two memory DCs holding the frozen
// and the darkened desktop as DIB sections, built once per overlay.
func prepareBackbuffers(hdc win.HDC) bool {
	if backgroundDC != 0 {
		return true
	}
	var ok1, ok2 bool
	backgroundDC, backgroundBM, ok1 = makeImageDC(hdc, overlayBackground)
	darkenedDC, darkenedBM, ok2 = makeImageDC(hdc, overlayDarkened)
	if !ok1 || !ok2 {
		log.Printf("Overlay backbuffer creation failed")
		releaseBackbuffers()
		return false
	}
	return true
}

func releaseBackbuffers() {
	if backgroundDC != 0 {
		win.DeleteDC(backgroundDC)
		backgroundDC = 0
	}
	if darkenedDC != 0 {
		win.DeleteDC(darkenedDC)
		darkenedDC = 0
	}
	if backgroundBM != 0 {
		win.DeleteObject(win.HGDIOBJ(backgroundBM))
		backgroundBM = 0
	}
	if darkenedBM != 0 {
		win.DeleteObject(win.HGDIOBJ(darkenedBM))
		darkenedBM = 0
	}
}

func makeImageDC(hdc win.HDC, img *image.RGBA) (win.HDC, win.HBITMAP, bool) {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	memDC := win.CreateCompatibleDC(hdc)
	if memDC == 0 {
		return 0, 0, false
	}

	bitmapInfo := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(width),
			BiHeight:      -int32(height), // top-down
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: win.BI_RGB,
		},
	}
	var pBits unsafe.Pointer
	hBitmap := win.CreateDIBSection(memDC, &bitmapInfo.BmiHeader, win.DIB_RGB_COLORS, &pBits, 0, 0)
	if hBitmap == 0 {
		win.DeleteDC(memDC)
		return 0, 0, false
	}
	win.SelectObject(memDC, win.HGDIOBJ(hBitmap))

	// RGBA to BGRA row copy into the DIB.
	dst := unsafe.Slice((*byte)(pBits), width*height*4)
	for y := 0; y < height; y++ {
		srcRow := img.Pix[y*img.Stride : y*img.Stride+width*4]
		dstRow := dst[y*width*4 : (y+1)*width*4]
		for x := 0; x < width*4; x += 4 {
			dstRow[x] = srcRow[x+2]
			dstRow[x+1] = srcRow[x+1]
			dstRow[x+2] = srcRow[x]
			dstRow[x+3] = srcRow[x+3]
		}
	}
	return memDC, hBitmap, true
}

// darken produces the tinted copy drawn outside the spotlight,
// roughly a 40% black overlay.
func darken(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = out.Pix[i] * 3 / 5
		out.Pix[i+1] = out.Pix[i+1] * 3 / 5
		out.Pix[i+2] = out.Pix[i+2] * 3 / 5
	}
	return out
}
