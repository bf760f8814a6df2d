package identity

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// retryAfter reads a delta-seconds Retry-After, capped at maxRetryWait
func retryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	if n >= int(maxRetryWait/time.Second) {
		return maxRetryWait
	}
	return time.Duration(n) * time.Second
}

// sleepCtx waits for d or until ctx ends, whichever comes first
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
