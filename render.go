package qrencode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
)

// quietZoneSize is the light border drawn around a symbol, in modules.
const quietZoneSize = 4

// border returns the quiet zone width in modules.
func (q *QRCode) border() int {
	if q.DisableBorder {
		return 0
	}

	return quietZoneSize
}

// drawnSize returns the side of the drawn symbol, quiet zone included.
func (q *QRCode) drawnSize() int {
	return q.symbol.Size() + 2*q.border()
}

// dark reports whether module (x, y) of the drawn symbol is dark. The
// quiet zone and anything beyond it are light.
func (q *QRCode) dark(x, y int) bool {
	b := q.border()
	return q.symbol.Module(x-b, y-b)
}

// Bitmap returns the QR Code as a 2D array of 1-bit pixels, true being dark.
// It includes the quiet zone unless DisableBorder is set.
func (q *QRCode) Bitmap() [][]bool {
	n := q.drawnSize()

	rows := make([][]bool, n)
	for y := range rows {
		rows[y] = make([]bool, n)
		for x := range rows[y] {
			rows[y][x] = q.dark(x, y)
		}
	}

	return rows
}

// Image returns the QR Code as an image.Image.
//
// A positive size sets a fixed image width and height (e.g. 256 yields a
// 256x256px image). A size too small for one pixel per module is increased.
//
// A negative size gives a variable sized image: -5 draws each module as 5x5
// pixels.
func (q *QRCode) Image(size int) image.Image {
	modules := q.drawnSize()

	switch {
	case size < 0:
		size = -size * modules
	case size < modules:
		size = modules
	}

	// Palette index 0 is the background, so a new image starts light.
	const fg = 1
	img := image.NewPaletted(image.Rect(0, 0, size, size),
		color.Palette{q.BackgroundColor, q.ForegroundColor})

	// Each pixel takes the module under its top left corner.
	for py := 0; py < size; py++ {
		my := py * modules / size
		row := img.Pix[py*img.Stride : py*img.Stride+size]
		for px := range row {
			if q.dark(px*modules/size, my) {
				row[px] = fg
			}
		}
	}

	return img
}

// PNG returns the QR Code as a PNG image. size is as for Image.
func (q *QRCode) PNG(size int) ([]byte, error) {
	img := q.Image(size)

	encoder := png.Encoder{CompressionLevel: png.BestCompression}

	var b bytes.Buffer
	if err := encoder.Encode(&b, img); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// ToString renders the QR Code for a terminal, two characters per module.
// inverseColor swaps dark and light for terminals with a light background.
func (q *QRCode) ToString(inverseColor bool) string {
	n := q.drawnSize()

	var buf strings.Builder
	buf.Grow(n * (2*len("█") + 1) * n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if q.dark(x, y) == inverseColor {
				buf.WriteString("██")
			} else {
				buf.WriteString("  ")
			}
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

// halfBlocks is indexed by whether the upper and the lower module of a
// terminal cell are drawn as block.
var halfBlocks = [2][2]string{
	{" ", "▄"},
	{"▀", "█"},
}

// ToSmallString renders the QR Code at half the height of ToString, packing
// two rows into each line with half block characters. An odd last row is
// paired with a row that draws as blank.
func (q *QRCode) ToSmallString(inverseColor bool) string {
	n := q.drawnSize()

	block := func(x, y int) int {
		if y < n && q.dark(x, y) == inverseColor {
			return 1
		}
		return 0
	}

	var buf strings.Builder
	for y := 0; y < n; y += 2 {
		for x := 0; x < n; x++ {
			buf.WriteString(halfBlocks[block(x, y)][block(x, y+1)])
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}
