package serialport

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, r io.Reader) ([]string, error) {
	t.Helper()
	var lines []string
	err := ReadLines(context.Background(), r, func(line string) {
		lines = append(lines, line)
	})
	return lines, err
}

func TestReadLines(t *testing.T) {
	lines, err := collect(t, strings.NewReader("temp=21.5\nhum=40\r\n\nrain=1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"temp=21.5", "hum=40", "", "rain=1"}, lines)
}

func TestReadLinesDropsPartialTail(t *testing.T) {
	lines, err := collect(t, strings.NewReader("a\nb\npartial"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestReadLinesSkipsOversizedLine(t *testing.T) {
	noise := strings.Repeat("x", 70*1024)
	lines, err := collect(t, strings.NewReader("a\n"+noise+"\nt=20\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "t=20"}, lines)
}

func TestReadLinesOversizedTail(t *testing.T) {
	lines, err := collect(t, strings.NewReader("a\n"+strings.Repeat("x", 3*maxLineLength)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, lines)
}

func TestLineSplitter(t *testing.T) {
	s := &lineSplitter{max: 4}

	adv, tok, err := s.split([]byte("abcd"), false)
	require.NoError(t, err)
	assert.Equal(t, 4, adv)
	assert.Nil(t, tok)

	adv, tok, _ = s.split([]byte("ef\ngh\n"), false)
	assert.Equal(t, 3, adv)
	assert.Nil(t, tok, "rest of the long line is dropped")

	adv, tok, _ = s.split([]byte("gh\r\n"), false)
	assert.Equal(t, 4, adv)
	assert.Equal(t, []byte("gh"), tok)
}

func TestReadLinesAcrossReads(t *testing.T) {
	lines, err := collect(t, iotest.OneByteReader(strings.NewReader("split line\nnext\n")))
	require.NoError(t, err)
	assert.Equal(t, []string{"split line", "next"}, lines)
}

func TestReadLinesReadError(t *testing.T) {
	boom := errors.New("device unplugged")
	r := io.MultiReader(strings.NewReader("ok\n"), iotest.ErrReader(boom))

	lines, err := collect(t, r)

	assert.Equal(t, []string{"ok"}, lines)
	assert.ErrorIs(t, err, boom)
}

func TestReadLinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var lines []string
	err := ReadLines(ctx, strings.NewReader("1\n2\n3\n"), func(line string) {
		lines = append(lines, line)
		cancel()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"1"}, lines)
}

type fakeConfig struct{}

func (fakeConfig) SerialPort() string { return "/dev/does-not-exist-weatherglass" }
func (fakeConfig) BaudRate() uint     { return 115200 }

func TestOpenMissingPort(t *testing.T) {
	_, err := Open(fakeConfig{})
	assert.ErrorContains(t, err, "does-not-exist")
}
