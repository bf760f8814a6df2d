package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "chirp/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	root := phttp.AdaptChi(chi.NewMux())
	root.Route("/meta", func(r phttp.Router) { Register(r, d) })

	rr := httptest.NewRecorder()
	root.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return rr.Code
}

func TestReady(t *testing.T) {
	t.Parallel()

	down := pinger{err: errors.New("connection refused")}
	cases := []struct {
		name   string
		probes map[string]Pinger
		want   string
	}{
		{"all up", map[string]Pinger{"pg": pinger{}, "redis": pinger{}, "clickhouse": pinger{}}, "ok"},
		{"optional skipped", map[string]Pinger{"pg": pinger{}}, "ok"},
		{"optional down", map[string]Pinger{"pg": pinger{}, "redis": down}, "degraded"},
		{"pg down", map[string]Pinger{"pg": down, "redis": pinger{}}, "fail"},
		{"pg missing", map[string]Pinger{}, "fail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out ReadyResponse
			d := Deps{Probes: tc.probes, Required: []string{"pg"}, Optional: []string{"redis", "clickhouse"}}
			if code := get(t, d, "/meta/ready", &out); code != stdhttp.StatusOK {
				t.Fatalf("code = %d", code)
			}
			if out.Status != tc.want || len(out.Checks) != 3 {
				t.Fatalf("ready = %+v", out)
			}
		})
	}
}

func TestHealthVersionService(t *testing.T) {
	t.Parallel()

	d := Deps{ServiceName: "chirp-api", StartedAt: time.Now().Add(-time.Minute), Modules: func() []string { return []string{"meta", "posts"} }}

	var h HealthResponse
	if get(t, d, "/meta/health", &h); !h.OK || h.Service != "chirp-api" {
		t.Fatalf("health = %+v", h)
	}
	var v struct {
		Service string `json:"service"`
		Version string `json:"version"`
	}
	if get(t, d, "/meta/version", &v); v.Service != "chirp-api" || v.Version == "" {
		t.Fatalf("version = %+v", v)
	}
	var s ServiceResponse
	if get(t, d, "/meta/service", &s); s.Uptime < 59 {
		t.Fatalf("service = %+v", s)
	}
	var mods []string
	if get(t, d, "/meta/modules", &mods); len(mods) != 2 || mods[1] != "posts" {
		t.Fatalf("modules = %v", mods)
	}
}
