package instance

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxFrameBytes = 64 * 1024

// Request carries the command-line arguments of a second invocation to the
// running instance.
type Request struct {
	ID   string   `json:"id"`
	Args []string `json:"args"`
}

// Response acknowledges a Request.
type Response struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// writeFrame writes v as one newline-terminated JSON line.
func writeFrame(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}

// readFrame reads one newline-terminated JSON line into v.
func readFrame(r *bufio.Reader, v any) error {
	raw, err := r.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		return fmt.Errorf("frame exceeds %d bytes", maxFrameBytes)
	}
	if err != nil && !(errors.Is(err, io.EOF) && len(raw) > 0) {
		return err
	}
	return json.Unmarshal(raw, v)
}
