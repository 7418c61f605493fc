// Package rom provides helpers for opening N64 cartridge images,
// normalising their byte order, reading the header, and mapping virtual
// addresses to file offsets.
package rom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

var (
	ErrNotN64     = errors.New("not an N64 ROM image")
	ErrShortRead  = errors.New("image too small")
	ErrOutOfRange = errors.New("address not mapped")
)

// Format is the on-disk byte order of an image.
type Format int

const (
	Z64 Format = iota // big endian, native
	V64               // 16-bit byte swapped
	N64               // 32-bit little endian
)

func (f Format) String() string {
	switch f {
	case Z64:
		return "z64"
	case V64:
		return "v64"
	default:
		return "n64"
	}
}

const (
	HeaderSize = 0x40
	// IPL3Offset is where the boot code begins and the default entry
	// point of the raw ROM mapping.
	IPL3Offset = 0x40
	// CodeOffset is the first byte copied to the boot address by IPL3.
	CodeOffset = 0x1000
	// CodeSize is the amount IPL3 copies.
	CodeSize = 0x100000
)

var magic = [4]byte{0x80, 0x37, 0x12, 0x40}

type Header struct {
	PIConfig    uint32
	ClockRate   uint32
	BootAddress uint32
	Release     uint32
	CRC1        uint32
	CRC2        uint32
	Title       string
	MediaFormat byte
	CartID      string
	Region      byte
	Version     byte
}

// GameCode is the four character product code, e.g. "NSME".
func (h Header) GameCode() string {
	return string([]byte{h.MediaFormat}) + h.CartID + string([]byte{h.Region})
}

type Seg struct {
	Name          string
	VA, Off, Size uint32
	Executable    bool
}

type Image struct {
	Path   string
	Format Format
	Data   []byte // big endian
	Header Header
	Segs   []Seg
}

// Open reads and normalises the image at path.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open rom: %w", err)
	}
	im, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	im.Path = path
	return im, nil
}

// Detect reports the byte order of data from its first word.
func Detect(data []byte) (Format, error) {
	if len(data) < HeaderSize {
		return 0, ErrShortRead
	}
	switch {
	case bytes.Equal(data[:4], magic[:]):
		return Z64, nil
	case bytes.Equal(data[:4], []byte{0x37, 0x80, 0x40, 0x12}):
		return V64, nil
	case bytes.Equal(data[:4], []byte{0x40, 0x12, 0x37, 0x80}):
		return N64, nil
	case data[0x3B] == 'N':
		// Unusual PI settings, but a cartridge media byte.
		return Z64, nil
	}
	return 0, ErrNotN64
}

// Normalize returns a big endian copy of data stored in format f.
func Normalize(data []byte, f Format) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	switch f {
	case V64:
		for i := 0; i+1 < len(out); i += 2 {
			out[i], out[i+1] = out[i+1], out[i]
		}
	case N64:
		for i := 0; i+3 < len(out); i += 4 {
			out[i], out[i+1], out[i+2], out[i+3] = out[i+3], out[i+2], out[i+1], out[i]
		}
	}
	return out
}

// Load parses an in-memory image.
func Load(data []byte) (*Image, error) {
	f, err := Detect(data)
	if err != nil {
		return nil, err
	}
	be := Normalize(data, f)
	im := &Image{Format: f, Data: be, Header: parseHeader(be)}

	size := uint32(len(be))
	im.Segs = append(im.Segs, Seg{Name: "rom", VA: 0, Off: 0, Size: size, Executable: true})
	if size > CodeOffset && im.Header.BootAddress != 0 {
		code := min(size-CodeOffset, CodeSize)
		im.Segs = append([]Seg{{
			Name:       "code",
			VA:         im.Header.BootAddress,
			Off:        CodeOffset,
			Size:       code,
			Executable: true,
		}}, im.Segs...)
	}
	return im, nil
}

func parseHeader(b []byte) Header {
	title := bytes.TrimRight(b[0x20:0x34], " \x00")
	return Header{
		PIConfig:    binary.BigEndian.Uint32(b[0x00:]),
		ClockRate:   binary.BigEndian.Uint32(b[0x04:]),
		BootAddress: binary.BigEndian.Uint32(b[0x08:]),
		Release:     binary.BigEndian.Uint32(b[0x0C:]),
		CRC1:        binary.BigEndian.Uint32(b[0x10:]),
		CRC2:        binary.BigEndian.Uint32(b[0x14:]),
		Title:       string(title),
		MediaFormat: b[0x3B],
		CartID:      string(b[0x3C:0x3E]),
		Region:      b[0x3E],
		Version:     b[0x3F],
	}
}

// EntryPoint returns the analysis entry point: the IPL3 offset in the
// raw ROM mapping, or the header boot address when boot is set.
func (im *Image) EntryPoint(boot bool) uint32 {
	if boot && im.Header.BootAddress != 0 {
		return im.Header.BootAddress
	}
	return IPL3Offset
}

// VA2Off maps a virtual address to a file offset.
func (im *Image) VA2Off(va uint32) (uint32, bool) {
	for _, s := range im.Segs {
		if va >= s.VA && va-s.VA < s.Size {
			return s.Off + (va - s.VA), true
		}
	}
	return 0, false
}

// SliceVA returns up to size bytes starting at va, clipped to the end
// of the containing segment.
func (im *Image) SliceVA(va uint32, size uint32) ([]byte, bool) {
	for _, s := range im.Segs {
		if va < s.VA || va-s.VA >= s.Size {
			continue
		}
		off := s.Off + (va - s.VA)
		end := s.Off + s.Size
		if size < end-off {
			end = off + size
		}
		return im.Data[off:end], true
	}
	return nil, false
}

// ReadWordVA reads the big endian word at va.
func (im *Image) ReadWordVA(va uint32) (uint32, error) {
	b, ok := im.SliceVA(va, 4)
	if !ok || len(b) < 4 {
		return 0, fmt.Errorf("read 0x%08x: %w", va, ErrOutOfRange)
	}
	return binary.BigEndian.Uint32(b), nil
}

// Segment returns the segment containing va.
func (im *Image) Segment(va uint32) (Seg, bool) {
	for _, s := range im.Segs {
		if va >= s.VA && va-s.VA < s.Size {
			return s, true
		}
	}
	return Seg{}, false
}
