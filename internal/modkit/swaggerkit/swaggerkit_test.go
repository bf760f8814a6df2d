package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "chirp/internal/platform/net/http"
	"chirp/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func mounted(enabled bool) http.Handler {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), enabled, "(test)")
	return mux
}

func getDoc(t *testing.T, h http.Handler) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec.Code, spec
}

func TestMount_Disabled(t *testing.T) {
	testkit.Serial(t)

	if code, _ := getDoc(t, mounted(false)); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestMount_RedirectsBarePath(t *testing.T) {
	testkit.Serial(t)

	rec := httptest.NewRecorder()
	mounted(true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect || rec.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("redirect = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDocJSON_Decorated(t *testing.T) {
	testkit.Serial(t)

	code, spec := getDoc(t, mounted(true))
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	info := spec["info"].(map[string]any)
	if info["title"] != "chirp API (test)" {
		t.Fatalf("title = %v", info["title"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema missing")
	}

	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/posts", "/posts/{id}", "/posts/by-user/{userId}", "/profiles/{username}", "/rpc/{procedure}"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("path %s missing", p)
		}
	}
	create := paths["/posts"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	for _, status := range []string{"201", "400", "401", "429", "500"} {
		if _, ok := create[status]; !ok {
			t.Fatalf("POST /posts missing %s response", status)
		}
	}
}

func TestDocJSON_Mutators(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &mutators, map[string]SpecMutator{})
	Register("b", func(spec map[string]any) { spec["x-order"] = spec["x-order"].(string) + "b" })
	Register("a", func(spec map[string]any) { spec["x-order"] = "a" })
	Register("c", func(spec map[string]any) { spec["x-chirp"] = false })
	Register("c", func(spec map[string]any) { spec["x-chirp"] = true })
	Register("d", func(spec map[string]any) { spec["x-gone"] = true })
	Register("d", nil)

	_, spec := getDoc(t, mounted(true))
	if spec["x-chirp"] != true || spec["x-order"] != "ab" {
		t.Fatalf("mutators not applied in name order: %v %v", spec["x-chirp"], spec["x-order"])
	}
	if _, ok := spec["x-gone"]; ok || len(mutators) != 3 {
		t.Fatalf("nil mutator should unregister, have %d", len(mutators))
	}
}

func TestDocJSON_ParseError(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &docReader, func() []byte { return []byte("{nope") })
	if code, _ := getDoc(t, mounted(true)); code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
}

func TestEnsureServers_Rewrites31(t *testing.T) {
	t.Parallel()

	spec := map[string]any{"swagger": "2.0", "openapi": "3.1.0", "servers": []any{"keep"}}
	ensureServers(spec, "/x")
	if _, ok := spec["swagger"]; ok || spec["openapi"] != "3.0.3" {
		t.Fatalf("spec = %v", spec)
	}
	if s := spec["servers"].([]any); s[0] != "keep" {
		t.Fatalf("servers overwritten: %v", s)
	}
}
