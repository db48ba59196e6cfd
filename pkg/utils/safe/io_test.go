package safe_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/utils/safe"
)

func TestClose(t *testing.T) {
	t.Run("close valid reader", func(t *testing.T) {
		reader := io.NopCloser(bytes.NewReader([]byte("test")))
		safe.Close(reader)
	})

	t.Run("close nil reader", func(t *testing.T) {
		safe.Close(nil)
	})

	t.Run("close reader that returns error", func(t *testing.T) {
		safe.Close(&errorCloser{})
	})
}

func TestCloseBody(t *testing.T) {
	body := &trackingBody{Reader: bytes.NewReader([]byte("remaining body"))}
	safe.CloseBody(body)

	gt.True(t, body.closed)
	gt.V(t, body.Len()).Equal(0)

	safe.CloseBody(nil)
}

type errorCloser struct{}

func (e *errorCloser) Close() error {
	return io.ErrUnexpectedEOF
}

type trackingBody struct {
	*bytes.Reader
	closed bool
}

func (x *trackingBody) Close() error {
	x.closed = true
	return nil
}
