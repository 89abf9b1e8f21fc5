package driver

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

// BMPDriver accumulates rows into an in-memory raster and writes a
// 24-bit uncompressed BMP once Finalize is called, the same row-at-a-
// time accumulate-then-flush shape as the original C library's
// driver.c (gs1_driverInit/gs1_driverAddRow/gs1_driverFinalise). No BMP
// encoder exists anywhere in the retrieval pack, so this -- like the
// original -- hand-rolls the file format rather than reaching for a
// non-existent dependency (see DESIGN.md).
type BMPDriver struct {
	w         io.Writer
	pixMult   int // module width/height in pixels
	sepHeight int // pixel height of a guard/separator row
	rows      []Row
	moduleW   int // fixed module width every row is padded/cropped to
}

// NewBMPDriver returns a driver writing to w. pixMult is the pixel size
// of one module (the X-dimension); sepHeight is the pixel height given
// to a Guards-marked separator row.
func NewBMPDriver(w io.Writer, pixMult, sepHeight int) *BMPDriver {
	if pixMult < 1 {
		pixMult = 1
	}
	if sepHeight < 1 {
		sepHeight = pixMult
	}
	return &BMPDriver{w: w, pixMult: pixMult, sepHeight: sepHeight}
}

// AddRow buffers a row. The raster can't be allocated until Finalize,
// since the symbol's pixel height depends on every row's Height and
// Guards flag.
func (d *BMPDriver) AddRow(r Row) error {
	if mw := r.ModuleWidth(); mw > d.moduleW {
		d.moduleW = mw
	}
	d.rows = append(d.rows, r)
	return nil
}

// Finalize rasterizes the buffered rows and writes the BMP file.
func (d *BMPDriver) Finalize() error {
	if len(d.rows) == 0 {
		return fmt.Errorf("driver: BMPDriver.Finalize: no rows to render")
	}
	pixW := d.moduleW * d.pixMult
	pixH := 0
	for _, r := range d.rows {
		h := r.Height * d.pixMult
		if h <= 0 {
			h = d.pixMult
		}
		pixH += h
		if r.Guards {
			pixH += d.sepHeight
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	for y := 0; y < pixH; y++ {
		for x := 0; x < pixW; x++ {
			img.Set(x, y, white)
		}
	}

	y := 0
	for _, r := range d.rows {
		h := r.Height * d.pixMult
		if h <= 0 {
			h = d.pixMult
		}
		black2 := r.WhtFirst
		x := r.LeftPad * d.pixMult
		for _, width := range r.Widths {
			if !black2 {
				for dy := 0; dy < h; dy++ {
					for dx := 0; dx < width*d.pixMult; dx++ {
						img.Set(x+dx, y+dy, black)
					}
				}
			}
			x += width * d.pixMult
			black2 = !black2
		}
		y += h
		if r.Guards {
			y += d.sepHeight
		}
	}

	return writeBMP(d.w, img)
}

// writeBMP writes img as an uncompressed 24-bit-per-pixel BMP (BITMAPINFOHEADER).
func writeBMP(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rowSize := (width*3 + 3) &^ 3 // rows are padded to a 4-byte boundary
	pixelDataSize := rowSize * height
	fileSize := 14 + 40 + pixelDataSize

	bw := bufio.NewWriter(w)

	// BITMAPFILEHEADER
	bw.WriteString("BM")
	binary.Write(bw, binary.LittleEndian, uint32(fileSize))
	binary.Write(bw, binary.LittleEndian, uint32(0)) // reserved
	binary.Write(bw, binary.LittleEndian, uint32(14+40))

	// BITMAPINFOHEADER
	binary.Write(bw, binary.LittleEndian, uint32(40))
	binary.Write(bw, binary.LittleEndian, int32(width))
	binary.Write(bw, binary.LittleEndian, int32(height))
	binary.Write(bw, binary.LittleEndian, uint16(1))  // planes
	binary.Write(bw, binary.LittleEndian, uint16(24)) // bits per pixel
	binary.Write(bw, binary.LittleEndian, uint32(0))  // no compression
	binary.Write(bw, binary.LittleEndian, uint32(pixelDataSize))
	binary.Write(bw, binary.LittleEndian, int32(2835)) // ~72 DPI
	binary.Write(bw, binary.LittleEndian, int32(2835))
	binary.Write(bw, binary.LittleEndian, uint32(0))
	binary.Write(bw, binary.LittleEndian, uint32(0))

	// Pixel data, bottom-up, BGR, row-padded to 4 bytes.
	pad := make([]byte, rowSize-width*3)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			bw.Write([]byte{c.B, c.G, c.R})
		}
		bw.Write(pad)
	}

	return bw.Flush()
}
