package net_test

import (
	"encoding/json"
	"errors"
	"strings"
	"net/http"
	"testing"

	perr "chirp/internal/platform/errors"
	pnet "chirp/internal/platform/net"
)

func TestSuccessEnvelopes(t *testing.T) {
	cases := []struct {
		name   string
		build  func() (int, pnet.Wire)
		status int
	}{
		{"ok", func() (int, pnet.Wire) { return pnet.OK([]int{1}, "r1") }, http.StatusOK},
		{"created", func() (int, pnet.Wire) { return pnet.Created("p1", "r1") }, http.StatusCreated},
		{"nil error", func() (int, pnet.Wire) { return pnet.Error(nil, "r1") }, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, w := c.build()
			if status != c.status || w.StatusCode != c.status || w.Status != http.StatusText(c.status) {
				t.Fatalf("status mismatch: %d %+v", status, w)
			}
			if w.RequestID != "r1" || w.Kind != "" || w.Error != "" {
				t.Fatalf("unexpected envelope: %+v", w)
			}
		})
	}
}

func TestErrorEnvelope(t *testing.T) {
	err := perr.WithField(perr.Validationf("content must be emoji only"), "content")
	status, w := pnet.Error(err, "r2")
	if status != http.StatusBadRequest || w.Kind != perr.KindInvalidInput {
		t.Fatalf("got %d %+v", status, w)
	}
	if w.Field != "content" || w.Error != "content must be emoji only" || w.RequestID != "r2" {
		t.Fatalf("envelope = %+v", w)
	}

	status, w = pnet.Error(errors.New("boom"), "")
	if status != http.StatusInternalServerError || w.Kind != perr.KindInternal {
		t.Fatalf("foreign error = %d %+v", status, w)
	}
}

func TestHTTPStatus(t *testing.T) {
	if pnet.HTTPStatus(nil) != http.StatusOK {
		t.Fatal("nil -> 200")
	}
	if pnet.HTTPStatus(perr.TooManyRequestsf("slow")) != http.StatusTooManyRequests {
		t.Fatal("rate -> 429")
	}
}

func TestEnvelope_EmptyListIsKept(t *testing.T) {
	_, w := pnet.OK([]string{}, "")
	raw, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"data":[]`) {
		t.Fatalf("empty feed dropped: %s", raw)
	}

	_, w = pnet.Error(perr.NotFoundf("post p1 not found"), "")
	raw, _ = json.Marshal(w)
	if strings.Contains(string(raw), `"data"`) {
		t.Fatalf("error envelope carries data: %s", raw)
	}
}
