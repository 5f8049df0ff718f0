package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrUnsupportedTGA reports a TGA variant the decoder does not handle.
var ErrUnsupportedTGA = errors.New("unsupported TGA")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < 18 {
		return tgaHeader{}, fmt.Errorf("TGA data too short (%d bytes)", len(data))
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}
	switch {
	case h.colorMap != 0:
		return h, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("%w: type %d", ErrUnsupportedTGA, h.imageType)
	case h.bpp != 24 && h.bpp != 32:
		return h, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, h.bpp)
	case h.width == 0 || h.height == 0:
		return h, fmt.Errorf("%w: empty %dx%d image", ErrUnsupportedTGA, h.width, h.height)
	}
	return h, nil
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA data.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := 18 + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		h:   h,
		src: data[offset:],
		img: image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
		bpp: h.bpp / 8,
	}
	if h.imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	h   tgaHeader
	src []byte
	pos int
	img *image.RGBA
	bpp int
	n   int // pixels written
}

// pixel reads one BGR(A) pixel from the source stream.
func (d *tgaDecoder) pixel() (color.RGBA, bool) {
	if d.pos+d.bpp > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	d.pos += d.bpp
	return c, true
}

// put writes the next pixel in file order, flipping rows for bottom-up files.
func (d *tgaDecoder) put(c color.RGBA) {
	x, y := d.n%d.h.width, d.n/d.h.width
	if !d.h.topToBottom {
		y = d.h.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.n++
}

func (d *tgaDecoder) total() int { return d.h.width * d.h.height }

func (d *tgaDecoder) raw() error {
	if len(d.src) < d.total()*d.bpp {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for d.n < d.total() {
		c, _ := d.pixel()
		d.put(c)
	}
	return nil
}

// rle decodes run-length packets. A truncated stream leaves the remaining
// pixels transparent.
func (d *tgaDecoder) rle() error {
	for d.n < d.total() && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				break
			}
			for i := 0; i < count && d.n < d.total(); i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.n < d.total(); i++ {
			c, ok := d.pixel()
			if !ok {
				return nil
			}
			d.put(c)
		}
	}
	return nil
}
