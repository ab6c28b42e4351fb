// Package serialport reads newline-delimited text from a serial device.
package serialport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"go.bug.st/serial"
)

const maxLineLength = 64 * 1024

type SerialConfig interface {
	SerialPort() string
	BaudRate() uint
}

func Open(cfg SerialConfig) (serial.Port, error) {
	port, err := serial.Open(cfg.SerialPort(), &serial.Mode{BaudRate: int(cfg.BaudRate())})
	if err != nil {
		return nil, fmt.Errorf("could not open serial port %s: %w", cfg.SerialPort(), err)
	}
	return port, nil
}

// ReadLines calls emit for every complete line read from r, without the delimiter.
// A trailing partial line is discarded when r ends, as is any line longer than 64KiB.
// Close r to unblock a pending read.
func ReadLines(ctx context.Context, r io.Reader, emit func(line string)) error {
	ls := &lineSplitter{max: maxLineLength}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)
	sc.Split(ls.split)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(sc.Text())
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("serial read failed: %w", err)
	}
	return ctx.Err()
}

// lineSplitter is a bufio.SplitFunc that only yields complete lines and skips over lines
// that do not fit into max bytes.
type lineSplitter struct {
	max        int
	discarding bool
	dropped    int
}

func (s *lineSplitter) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	i := bytes.IndexByte(data, '\n')
	if s.discarding {
		if i < 0 {
			s.dropped += len(data)
			return len(data), nil, nil
		}
		log.Printf("dropped serial line of %d bytes", s.dropped+i)
		s.discarding = false
		s.dropped = 0
		return i + 1, nil, nil
	}
	if i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte{'\r'}), nil
	}
	if atEOF {
		return len(data), nil, nil
	}
	if len(data) >= s.max {
		s.discarding = true
		s.dropped = len(data)
		return len(data), nil, nil
	}
	return 0, nil, nil
}
