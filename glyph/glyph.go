// Package glyph describes bitmap icons and converts them into the
// toolkit's icon descriptor.
package glyph

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/drake/syncux/toolkit"
)

var (
	// ErrInvalidBPP is carried by the panic raised when a glyph with an
	// unsupported bit depth is converted.
	ErrInvalidBPP = errors.New("invalid bpp")

	ErrShortHeader  = errors.New("glyph file shorter than header")
	ErrSizeMismatch = errors.New("glyph file size does not match header")
)

// HeaderSize is the length of the image file header that precedes the
// (possibly compressed) bitmap of a file glyph.
const HeaderSize = 8

// Glyph is an immutable icon description. Bitmap is borrowed, never copied.
type Glyph struct {
	Width  uint16
	Height uint16
	BPP    uint8
	IsFile bool
	Bitmap []byte
}

// New describes a bitmap.
func New(bitmap []byte, width, height uint16, bpp uint8, isFile bool) Glyph {
	return Glyph{
		Width:  width,
		Height: height,
		BPP:    bpp,
		IsFile: isFile,
		Bitmap: bitmap,
	}
}

// ParseFile describes a glyph stored as an image file: a little-endian
// width and height, one byte holding the bit-depth code in its high nibble
// and the compression scheme in its low nibble, then a 24-bit little-endian
// payload length. The returned glyph borrows data.
func ParseFile(data []byte) (Glyph, error) {
	if len(data) < HeaderSize {
		return Glyph{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(data))
	}
	width := binary.LittleEndian.Uint16(data[0:2])
	height := binary.LittleEndian.Uint16(data[2:4])
	code := data[4] >> 4
	size := int(data[5]) | int(data[6])<<8 | int(data[7])<<16
	if size != len(data)-HeaderSize {
		return Glyph{}, fmt.Errorf("%w: header says %d, have %d", ErrSizeMismatch, size, len(data)-HeaderSize)
	}
	bpp := uint8(toolkit.BPP(code).Bits())
	if bpp == 0 {
		return Glyph{}, fmt.Errorf("%w: file code %d", ErrInvalidBPP, code)
	}
	return New(data, width, height, bpp, true), nil
}

// Compression returns the compression scheme of a file glyph, 0 for raw.
func (g Glyph) Compression() uint8 {
	if !g.IsFile || len(g.Bitmap) < HeaderSize {
		return 0
	}
	return g.Bitmap[4] & 0x0F
}

// Icon converts the glyph into the toolkit's descriptor. Any bit depth
// other than 1, 2 or 4 is a programming error and panics.
func (g Glyph) Icon() toolkit.IconDetails {
	var bpp toolkit.BPP
	switch g.BPP {
	case 1:
		bpp = toolkit.BPP1
	case 2:
		bpp = toolkit.BPP2
	case 4:
		bpp = toolkit.BPP4
	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidBPP, g.BPP))
	}
	return toolkit.IconDetails{
		Width:  g.Width,
		Height: g.Height,
		BPP:    bpp,
		IsFile: g.IsFile,
		Bitmap: g.Bitmap,
	}
}

// IconPtr is Icon for optional fields; a nil glyph yields a nil icon.
func IconPtr(g *Glyph) *toolkit.IconDetails {
	if g == nil {
		return nil
	}
	icon := g.Icon()
	return &icon
}
