package xmlpos

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	posmodel "github.com/farukalpay/xml-lib-sub000/internal/model"
)

type readByte struct {
	b   byte
	pos posmodel.Position
}

func TestReaderTracksLineAndColumn(t *testing.T) {
	r := New(strings.NewReader("ab\ncd\n"))

	var got []readByte
	for i := 0; i < 6; i++ {
		b, err := r.ReadByte()
		require.NoError(t, err)
		got = append(got, readByte{b: b, pos: r.Position()})
	}

	// "ab\ncd\n": after consuming each byte, position reflects bytes read so
	// far — column 1 resets on the byte *after* a line feed.
	assert.Equal(t, byte('a'), got[0].b)
	assert.Equal(t, 1, got[0].pos.Line)
	assert.Equal(t, 2, got[0].pos.Column)

	assert.Equal(t, byte('\n'), got[2].b)
	assert.Equal(t, 2, got[2].pos.Line)
	assert.Equal(t, 1, got[2].pos.Column)

	assert.Equal(t, byte('c'), got[3].b)
	assert.Equal(t, 2, got[3].pos.Line)
	assert.Equal(t, 2, got[3].pos.Column)

	assert.Equal(t, int64(6), r.Position().ByteOffset)
	assert.Equal(t, 3, r.Position().Line)
}

func TestReaderReadTracksPositionOverSlice(t *testing.T) {
	r := New(strings.NewReader("hello\nworld"))

	buf := make([]byte, 6)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, int64(6), r.Position().ByteOffset)
	assert.Equal(t, 2, r.Position().Line)
	assert.Equal(t, 1, r.Position().Column)
}

func TestReaderSeekRebuildsPosition(t *testing.T) {
	src := "line1\nline2\nline3\n"
	r := New(bytes.NewReader([]byte(src)))

	require.NoError(t, r.Seek(12))
	assert.Equal(t, int64(12), r.Position().ByteOffset)
	assert.Equal(t, 3, r.Position().Line)
	assert.Equal(t, 1, r.Position().Column)

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, src[12], b)
}

func TestReaderSeekRequiresSeeker(t *testing.T) {
	r := New(io.NopCloser(strings.NewReader("abc")))
	err := r.Seek(1)
	require.Error(t, err)
	assert.False(t, r.Seekable())
}

func TestReaderSeekable(t *testing.T) {
	r := New(bytes.NewReader([]byte("abc")))
	assert.True(t, r.Seekable())
}
