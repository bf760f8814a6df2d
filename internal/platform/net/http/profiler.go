package http

import (
	"crypto/subtle"
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// DebugHeader carries the token MountProfiler checks when one is configured
const DebugHeader = "X-Debug-Token"

// ProfilerOptions controls the pprof mount
type ProfilerOptions struct {
	// Prefix is where pprof lives, e.g. "/debug"
	Prefix  string
	Enabled bool
	// Token, when set, must be sent in DebugHeader. Other requests get a 404
	Token string
}

// MountProfiler mounts chi's pprof router under o.Prefix when enabled
func MountProfiler(r Router, o ProfilerOptions) {
	if !o.Enabled || o.Prefix == "" {
		return
	}
	r.Mount(o.Prefix, requireToken(o.Token, mw.Profiler()))
}

func requireToken(token string, next stdhttp.Handler) stdhttp.Handler {
	if token == "" {
		return next
	}
	want := []byte(token)
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		if subtle.ConstantTimeCompare([]byte(req.Header.Get(DebugHeader)), want) != 1 {
			stdhttp.NotFound(w, req)
			return
		}
		next.ServeHTTP(w, req)
	})
}
