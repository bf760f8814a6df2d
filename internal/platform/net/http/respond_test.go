package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "chirp/internal/platform/errors"
	pnet "chirp/internal/platform/net"
	phttp "chirp/internal/platform/net/http"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestRespondOKAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithReqID("GET", "/x", "rid-1"), map[string]string{"a": "b"})
	env := decodeEnvelope(t, rec)
	if rec.Code != http.StatusOK || env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}

	rec = httptest.NewRecorder()
	phttp.RespondError(rec, reqWithReqID("GET", "/x", "rid-2"), perr.NotFoundf("post %s not found", "p1"))
	env = decodeEnvelope(t, rec)
	if rec.Code != http.StatusNotFound || env.Kind != perr.KindNotFound || env.Error != "post p1 not found" {
		t.Fatalf("bad error envelope: %d %+v", rec.Code, env)
	}
}

func TestHandle_ReturnStyle(t *testing.T) {
	cases := []struct {
		name   string
		resp   phttp.Response
		status int
		kind   perr.Kind
	}{
		{"ok", phttp.OK([]string{"a"}), http.StatusOK, ""},
		{"created", phttp.Created("p1"), http.StatusCreated, ""},
		{"zero status", phttp.Response{Body: 1}, http.StatusOK, ""},
		{"rate limited", phttp.Error(perr.TooManyRequestsf("slow down")), http.StatusTooManyRequests, perr.KindRateLimited},
		{"unauthenticated", phttp.Error(perr.Unauthorizedf("sign in")), http.StatusUnauthorized, perr.KindUnauthenticated},
		{"foreign error", phttp.Error(errors.New("boom")), http.StatusInternalServerError, perr.KindInternal},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return c.resp })(rec, reqWithReqID("GET", "/", "rid"))
			env := decodeEnvelope(t, rec)
			if rec.Code != c.status || env.StatusCode != c.status || env.Kind != c.kind {
				t.Fatalf("got %d %+v", rec.Code, env)
			}
			if env.RequestID != "rid" {
				t.Fatalf("request id = %q", env.RequestID)
			}
		})
	}
}

func TestHandle_NoContentAndHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() })(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusOK, Body: "x", Header: http.Header{"X-Limit": {"3"}}}
	})(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Header().Get("X-Limit") != "3" {
		t.Fatalf("header not copied")
	}
}
