// Package track is the boundary to the hand-tracking collaborator. Detection
// itself is a black box running out of process (typically a MediaPipe
// pipeline); we consume its per-frame observations as line-delimited JSON.
package track

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/jsphweid/airpiano/model"
)

// Frame is one observation tick: zero or more hands plus the capture
// dimensions the landmark pixels are relative to.
type Frame struct {
	Hands  []model.Hand `json:"hands"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
}

// Source yields frames until the feed ends. Next blocks on the collaborator;
// a non-EOF error is a recoverable single-frame failure.
type Source interface {
	Next() (Frame, error)
	Close() error
}

// ErrBadFrame wraps per-frame decode failures so callers can keep the loop
// alive and just skip the frame.
type ErrBadFrame struct{ cause error }

func (e ErrBadFrame) Error() string { return fmt.Sprintf("undecodable frame: %v", e.cause) }
func (e ErrBadFrame) Unwrap() error { return e.cause }

// Stream reads newline-delimited JSON frames.
type Stream struct {
	r       io.ReadCloser
	scanner *bufio.Scanner
}

func NewStream(r io.ReadCloser) *Stream {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Stream{r: r, scanner: scanner}
}

func (s *Stream) Next() (Frame, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return Frame{}, err
		}
		return Frame{}, io.EOF
	}

	var f Frame
	if err := json.Unmarshal(s.scanner.Bytes(), &f); err != nil {
		return Frame{}, ErrBadFrame{cause: err}
	}
	return f, nil
}

func (s *Stream) Close() error {
	return s.r.Close()
}

// Open resolves a tracker spec: "tcp:host:port" dials the out-of-process
// tracker, "-" reads stdin, anything else is a capture file replayed from
// disk. No reachable tracker is fatal at startup.
func Open(spec string) (Source, error) {
	switch {
	case spec == "-":
		return NewStream(os.Stdin), nil
	case strings.HasPrefix(spec, "tcp:"):
		addr := strings.TrimPrefix(spec, "tcp:")
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("dialing tracker at %s: %w", addr, err)
		}
		return NewStream(conn), nil
	default:
		f, err := os.Open(spec)
		if err != nil {
			return nil, fmt.Errorf("opening tracker capture %s: %w", spec, err)
		}
		return NewStream(f), nil
	}
}
