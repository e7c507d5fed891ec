package cli

import (
	"context"
	"errors"
	"io"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader reads piped input while still honoring cancellation.
type NonBlockingReader struct {
	reader      io.Reader
	readingLock sync.Mutex
}

// NewNonBlockingReader creates a new non-blocking reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &NonBlockingReader{
		reader: reader,
	}
}

// ReadAll reads until EOF. A canceled context returns ErrInputCancelled at
// once; the pending read finishes in the background.
func (r *NonBlockingReader) ReadAll(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		data, err := io.ReadAll(r.reader)
		resultCh <- result{value: string(data), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}
