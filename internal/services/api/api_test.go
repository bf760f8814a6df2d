package api

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"testing"

	"chirp/internal/adapters/identity"
	"chirp/internal/modkit/httpkit"
	"chirp/internal/modkit/module"
	"chirp/internal/platform/config"
	perr "chirp/internal/platform/errors"
	phttp "chirp/internal/platform/net/http"
	"chirp/internal/platform/store"
	"chirp/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type emptyRows struct{}

func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return nil }
func (emptyRows) Err() error        { return nil }
func (emptyRows) Close()            {}

type fakePG struct {
	store.TxRunner
}

func (fakePG) Query(context.Context, string, ...any) (store.Rows, error) { return emptyRows{}, nil }
func (fakePG) Ping(context.Context) error                                { return nil }

type fakeDir struct{}

func (fakeDir) ResolveMany(context.Context, []string) (map[string]identity.User, error) {
	return map[string]identity.User{}, nil
}

func (fakeDir) ResolveByUsername(context.Context, string) (identity.User, bool, error) {
	return identity.User{}, false, nil
}

func mount(t *testing.T, opt Options) http.Handler {
	t.Helper()
	testkit.Serial(t)
	module.Reset()
	t.Cleanup(module.Reset)

	opt.Config = config.Conf{}
	opt.Store = &store.Store{PG: fakePG{}}
	opt.Directory = fakeDir{}
	mux := chi.NewMux()
	Mount(phttp.AdaptChi(mux), opt)
	return mux
}

func TestMount_RoutesAndRegistry(t *testing.T) {
	h := mount(t, Options{})

	cases := []struct {
		name, method, path, body string
		want                     int
	}{
		{"feed", http.MethodGet, "/api/v1/posts", "", http.StatusOK},
		{"health", http.MethodGet, "/api/v1/meta/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/api/v1/meta/ready", "", http.StatusOK},
		{"profile miss", http.MethodGet, "/api/v1/profiles/nobody", "", http.StatusNotFound},
		{"rpc list", http.MethodGet, "/api/v1/rpc", "", http.StatusOK},
		{"rpc read", http.MethodPost, "/api/v1/rpc/posts.getAll", "{}", http.StatusOK},
		{"rpc unknown", http.MethodPost, "/api/v1/rpc/posts.nope", "{}", http.StatusNotFound},
		{"rpc write without auth", http.MethodPost, "/api/v1/rpc/posts.create", `{"content":"🙂"}`, http.StatusUnauthorized},
		{"rest write without auth", http.MethodPost, "/api/v1/posts", `{"content":"🙂"}`, http.StatusUnauthorized},
		{"docs disabled", http.MethodGet, "/api/docs/doc.json", "", http.StatusNotFound},
	}
	for _, c := range cases {
		if rr := testkit.Do(h, c.method, c.path, c.body, ""); rr.Code != c.want {
			t.Fatalf("%s: code=%d want %d body=%s", c.name, rr.Code, c.want, rr.Body.String())
		}
	}

	names := module.Names()
	for _, want := range []string{"meta", "posts", "profiles", "rpc"} {
		if !slices.Contains(names, want) {
			t.Fatalf("module %q not registered: %v", want, names)
		}
	}
}

func TestMount_FeedEnvelope(t *testing.T) {
	h := mount(t, Options{})

	rr := testkit.Do(h, http.MethodGet, "/api/v1/posts", "", "")
	env := testkit.DecodeJSON[struct {
		Data []json.RawMessage `json:"data"`
	}](t, rr)
	if env.Data == nil || len(env.Data) != 0 {
		t.Fatalf("want empty data array, got %s", rr.Body.String())
	}
}

func TestMount_AuthOverride(t *testing.T) {
	port := httpkit.NewPortFunc(func(_ context.Context, tok string) (string, error) {
		if tok == "good" {
			return "user_abcd", nil
		}
		return "", perr.Unauthorizedf("bad token")
	})
	h := mount(t, Options{Auth: port, EnableSwagger: true})

	// a stale token never blocks a public read
	reads := []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/posts", ""},
		{http.MethodPost, "/api/v1/rpc/posts.getAll", "{}"},
	}
	for _, rd := range reads {
		if rr := testkit.Do(h, rd.method, rd.path, rd.body, "stale"); rr.Code != http.StatusOK {
			t.Fatalf("%s %s with stale token = %d body=%s", rd.method, rd.path, rr.Code, rr.Body.String())
		}
	}
	// but it does not authorize a write
	for _, path := range []string{"/api/v1/posts", "/api/v1/rpc/posts.create"} {
		if rr := testkit.Do(h, http.MethodPost, path, `{"content":"🐦"}`, "stale"); rr.Code != http.StatusUnauthorized {
			t.Fatalf("POST %s with stale token = %d", path, rr.Code)
		}
	}
	// invalid content is rejected before any write
	rr := testkit.Do(h, http.MethodPost, "/api/v1/posts", `{"content":"hello"}`, "good")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid content = %d body=%s", rr.Code, rr.Body.String())
	}
	rr = testkit.Do(h, http.MethodGet, "/api/docs/doc.json", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("docs enabled = %d", rr.Code)
	}
	// the procedure list in the doc comes from the mounted table
	testkit.MustContain(t, rr.Body.String(), `"posts.getPosts"`)
}
