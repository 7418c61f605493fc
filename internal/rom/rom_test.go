package rom

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage builds a minimal big endian cartridge image.
func testImage(size int) []byte {
	b := make([]byte, size)
	copy(b, magic[:])
	binary.BigEndian.PutUint32(b[0x08:], 0x80000400)
	binary.BigEndian.PutUint32(b[0x10:], 0x635A2BFF)
	binary.BigEndian.PutUint32(b[0x14:], 0x8B022326)
	copy(b[0x20:0x34], "SUPER MARIO 64      ")
	b[0x3B] = 'N'
	copy(b[0x3C:], "SM")
	b[0x3E] = 'E'
	b[0x3F] = 0
	// first word of the boot code: addiu $sp, $sp, -0x18
	binary.BigEndian.PutUint32(b[CodeOffset:], 0x27BDFFE8)
	return b
}

func TestDetect(t *testing.T) {
	be := testImage(0x2000)

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"z64", be, Z64},
		{"v64", swap16(be), V64},
		{"n64", swap32(be), N64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, be, Normalize(tt.data, got))
		})
	}
}

func TestDetectErrors(t *testing.T) {
	_, err := Detect(make([]byte, 0x10))
	assert.ErrorIs(t, err, ErrShortRead)

	_, err = Detect(make([]byte, 0x100))
	assert.ErrorIs(t, err, ErrNotN64)

	odd := make([]byte, 0x100)
	odd[0x3B] = 'N'
	f, err := Detect(odd)
	require.NoError(t, err)
	assert.Equal(t, Z64, f)
}

func TestLoadHeader(t *testing.T) {
	im, err := Load(swap16(testImage(0x2000)))
	require.NoError(t, err)

	assert.Equal(t, V64, im.Format)
	assert.Equal(t, "SUPER MARIO 64", im.Header.Title)
	assert.Equal(t, uint32(0x80000400), im.Header.BootAddress)
	assert.Equal(t, uint32(0x635A2BFF), im.Header.CRC1)
	assert.Equal(t, "NSME", im.Header.GameCode())
	assert.Equal(t, uint32(IPL3Offset), im.EntryPoint(false))
	assert.Equal(t, uint32(0x80000400), im.EntryPoint(true))
}

func TestVAMapping(t *testing.T) {
	im, err := Load(testImage(0x2000))
	require.NoError(t, err)
	require.Len(t, im.Segs, 2)
	assert.Equal(t, "code", im.Segs[0].Name)
	assert.Equal(t, uint32(0x1000), im.Segs[0].Size)

	off, ok := im.VA2Off(0x80000400)
	require.True(t, ok)
	assert.Equal(t, uint32(CodeOffset), off)

	off, ok = im.VA2Off(0x40)
	require.True(t, ok)
	assert.Equal(t, uint32(0x40), off)

	_, ok = im.VA2Off(0x80001400)
	assert.False(t, ok)

	w, err := im.ReadWordVA(0x80000400)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x27BDFFE8), w)

	b, ok := im.SliceVA(0x800013FC, 64)
	require.True(t, ok)
	assert.Len(t, b, 4)

	_, err = im.ReadWordVA(0x90000000)
	assert.ErrorIs(t, err, ErrOutOfRange)

	seg, ok := im.Segment(0x80000800)
	require.True(t, ok)
	assert.Equal(t, "code", seg.Name)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.n64")
	require.NoError(t, os.WriteFile(path, swap32(testImage(0x2000)), 0o644))

	im, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, im.Path)
	assert.Equal(t, N64, im.Format)
	assert.Equal(t, "SUPER MARIO 64", im.Header.Title)

	_, err = Open(filepath.Join(dir, "missing.z64"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.z64")
	require.NoError(t, os.WriteFile(bad, make([]byte, 0x100), 0o644))
	_, err = Open(bad)
	assert.ErrorIs(t, err, ErrNotN64)
}

func swap16(b []byte) []byte {
	out := make([]byte, len(b))
	for i := 0; i+1 < len(b); i += 2 {
		out[i], out[i+1] = b[i+1], b[i]
	}
	return out
}

func swap32(b []byte) []byte {
	out := make([]byte, len(b))
	for i := 0; i+3 < len(b); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = b[i+3], b[i+2], b[i+1], b[i]
	}
	return out
}
