package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

const iconSize = 64

// Icon renders the tray icon, a crosshair inside a frame, encoded for
// the current platform. Windows wants ICO; everything else takes PNG.
func Icon() []byte {
	data := iconPNG()
	if runtime.GOOS == "windows" {
		return wrapICO(data)
	}
	return data
}

func iconPNG() []byte {
	frame := color.RGBA{R: 0, G: 120, B: 212, A: 255}
	cross := color.RGBA{R: 51, G: 51, B: 51, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	// Frame, 4px thick with a 4px margin.
	for y := 4; y < iconSize-4; y++ {
		for x := 4; x < iconSize-4; x++ {
			onBorder := x < 8 || x >= iconSize-8 || y < 8 || y >= iconSize-8
			if onBorder {
				img.SetRGBA(x, y, frame)
			}
		}
	}

	// Crosshair through the center.
	mid := iconSize / 2
	for i := 14; i < iconSize-14; i++ {
		for t := -1; t <= 1; t++ {
			img.SetRGBA(i, mid+t, cross)
			img.SetRGBA(mid+t, i, cross)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// wrapICO prepends the 22-byte ICO container to PNG data. Vista and
// later accept PNG-compressed icon entries directly.
func wrapICO(pngData []byte) []byte {
	var buf bytes.Buffer

	// ICONDIR: reserved, type 1 (icon), one entry.
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))

	// ICONDIRENTRY.
	buf.WriteByte(iconSize) // width
	buf.WriteByte(iconSize) // height
	buf.WriteByte(0)        // palette
	buf.WriteByte(0)        // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&buf, binary.LittleEndian, uint16(32)) // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	binary.Write(&buf, binary.LittleEndian, uint32(22)) // data offset

	buf.Write(pngData)
	return buf.Bytes()
}
