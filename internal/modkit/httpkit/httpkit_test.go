package httpkit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perrs "chirp/internal/platform/errors"
	pnet "chirp/internal/platform/net"
	phttp "chirp/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() Router { return phttp.AdaptChi(chi.NewMux()) }

func do(t *testing.T, r Router, method, path, body string, hdr map[string]string) (int, Envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, req)

	var env Envelope
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v", rr.Body.String(), err)
		}
	}
	return rr.Code, env
}

type echoIn struct {
	Name string `json:"name" validate:"required,max=5"`
}

func TestSugar_GetPostCreate(t *testing.T) {
	t.Parallel()

	r := newRouter()
	Get(r, "/get", func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil })
	PostJSON(r, "/post", func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil })
	CreateJSON(r, "/create", func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil })
	Get(r, "/fail", func(*http.Request) (any, error) { return nil, perrs.NotFoundf("post not found") })
	Get(r, "/nocontent", func(*http.Request) (any, error) { return NoContent(), nil })

	cases := []struct {
		name, method, path, body string
		wantCode                  int
		wantKind                  perrs.Kind
	}{
		{"get", http.MethodGet, "/get", "", http.StatusOK, ""},
		{"post", http.MethodPost, "/post", `{"name":"ann"}`, http.StatusOK, ""},
		{"create", http.MethodPost, "/create", `{"name":"ann"}`, http.StatusCreated, ""},
		{"validation", http.MethodPost, "/post", `{"name":"toolong"}`, http.StatusBadRequest, perrs.KindInvalidInput},
		{"missing field", http.MethodPost, "/create", `{}`, http.StatusBadRequest, perrs.KindInvalidInput},
		{"handler error", http.MethodGet, "/fail", "", http.StatusNotFound, perrs.KindNotFound},
		{"response passthrough", http.MethodGet, "/nocontent", "", http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, r, tc.method, tc.path, tc.body, nil)
			if code != tc.wantCode || env.Kind != tc.wantKind {
				t.Fatalf("code=%d kind=%q env=%+v", code, env.Kind, env)
			}
		})
	}
}

func TestJWT(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header, want string
		ok           bool
	}{
		{"", "", false},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer    ", "", false},
		{"Bearer tok", "tok", true},
		{"bearer  tok2 ", "tok2", true},
		{"  BEARER tok3", "tok3", true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		got, err := JWT(req)
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("JWT(%q) = %q, %v", tc.header, got, err)
		}
		if err != nil && !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
			t.Fatalf("JWT(%q) wrong code: %v", tc.header, err)
		}
	}
}

func TestUser(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := User(req); perrs.KindFor(err) != perrs.KindUnauthenticated {
		t.Fatalf("expected UNAUTHENTICATED, got %v", err)
	}
	req = req.WithContext(pnet.WithUser(req.Context(), "user_1"))
	if uid, err := User(req); err != nil || uid != "user_1" {
		t.Fatalf("User = %q, %v", uid, err)
	}
}

func TestPort_Parse(t *testing.T) {
	t.Parallel()

	var gotToken string
	p := NewPortFunc(func(_ context.Context, tok string) (string, error) {
		gotToken = tok
		if tok == "good" {
			return "user_9", nil
		}
		return "", errors.New("signature mismatch")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := p.Parse(req); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("missing header: %v", err)
	}
	if gotToken != "" {
		t.Fatalf("verifier should not run without a token")
	}

	req.Header.Set("Authorization", "Bearer bad")
	if _, err := p.Parse(req); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("bad token: %v", err)
	}

	req.Header.Set("Authorization", "Bearer good")
	if uid, err := p.Parse(req); err != nil || uid != "user_9" {
		t.Fatalf("good token = %q, %v", uid, err)
	}

	var nilPort *Port
	if _, err := nilPort.Parse(req); err == nil {
		t.Fatalf("nil port must reject")
	}
}

func TestProtected_RequiresCaller(t *testing.T) {
	t.Parallel()

	port := NewPortFunc(func(_ context.Context, tok string) (string, error) {
		if tok == "ok" {
			return "user_7", nil
		}
		return "", errors.New("nope")
	})

	r := newRouter()
	Get(r, "/public", func(*http.Request) (any, error) { return "hi", nil })
	Protected(r, port, func(pr Router) {
		Get(pr, "/me", func(req *http.Request) (any, error) { return User(req) })
	})

	if code, _ := do(t, r, http.MethodGet, "/public", "", nil); code != http.StatusOK {
		t.Fatalf("public = %d", code)
	}
	if code, env := do(t, r, http.MethodGet, "/me", "", nil); code != http.StatusUnauthorized || env.Kind != perrs.KindUnauthenticated {
		t.Fatalf("anonymous /me = %d %+v", code, env)
	}
	if code, _ := do(t, r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer nope"}); code != http.StatusUnauthorized {
		t.Fatalf("bad token /me = %d", code)
	}
	code, env := do(t, r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer ok"})
	if code != http.StatusOK || env.Data != "user_7" {
		t.Fatalf("authed /me = %d %+v", code, env)
	}
}

func TestMountAPIV1_WithCommonStack(t *testing.T) {
	t.Parallel()

	r := newRouter()
	MountAPIV1(r, CommonStack(StackOptions{}), func(api Router) {
		Get(api, "/ping", func(req *http.Request) (any, error) { return pnet.RequestID(req.Context()) != "", nil })
	})

	code, env := do(t, r, http.MethodGet, "/api/v1/ping", "", nil)
	if code != http.StatusOK || env.Data != true || env.RequestID == "" {
		t.Fatalf("ping = %d %+v", code, env)
	}
	if code, _ := do(t, r, http.MethodGet, "/ping", "", nil); code != http.StatusNotFound {
		t.Fatalf("unversioned path should 404, got %d", code)
	}
}

func TestMountAPI_TrimsSlashes(t *testing.T) {
	t.Parallel()

	r := newRouter()
	MountAPI(r, "/v2/", nil, func(api Router) {
		Get(api, "/x", func(*http.Request) (any, error) { return nil, nil })
	})
	if code, _ := do(t, r, http.MethodGet, "/api/v2/x", "", nil); code != http.StatusOK {
		t.Fatalf("got %d", code)
	}
}
