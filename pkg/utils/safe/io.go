package safe

import (
	"io"
	"log/slog"

	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

// Close safely closes the resource and logs error if any
func Close(closer io.Closer) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			if err == io.EOF {
				return
			}
			logging.Default().Warn("Fail to close resource", slog.Any("error", err))
		}
	}
}

// CloseBody drains and closes an HTTP response body so that the underlying
// connection can be reused.
func CloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	if _, err := io.Copy(io.Discard, io.LimitReader(body, 1<<20)); err != nil {
		logging.Default().Debug("Fail to drain body", slog.Any("error", err))
	}
	Close(body)
}
