package instance

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dialTimeout = 3 * time.Second

// Send relays args to the instance listening on endpoint and waits for its
// acknowledgement.
func Send(endpoint string, args []string) error {
	conn, err := dial(endpoint, dialTimeout)
	if err != nil {
		return fmt.Errorf("connect to running instance: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(connTimeout)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	req := Request{ID: uuid.NewString(), Args: args}
	if err := writeFrame(conn, req); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	var resp Response
	if err := readFrame(bufio.NewReaderSize(conn, maxFrameBytes+1), &resp); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.ID != req.ID {
		return fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	if !resp.OK {
		return errors.New(resp.Error)
	}
	return nil
}
