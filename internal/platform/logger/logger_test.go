package logger

import (
	"bytes"
	"context"
	"testing"

	kit "chirp/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"off":      zerolog.Disabled,
		"":         zerolog.InfoLevel,
		" bogus  ": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init is once-only, so everything that needs the buffer lives in this test
func TestInit_NamedAndRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "chirp-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Info().Msg("root-msg")
	Named("posts").Info().Msg("named-msg")

	ctx := WithRequest(context.Background(), "req-123", "user_2abc")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Info().Msg("bare-msg")

	out := buf.String()
	kit.MustContain(t, out, `"service":"chirp-test"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, `"component":"posts"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"user_id":"user_2abc"`)
	kit.MustContain(t, out, "bare-msg")
}

func TestNamed_EmptyReturnsRoot(t *testing.T) {
	if Named("") != Get() {
		t.Fatal("Named(\"\") should return the root logger")
	}
}

func TestWithRequest_SkipsEmpty(t *testing.T) {
	ctx := WithRequest(context.Background(), "", "")
	if ctx.Value(keyRequestID) != nil || ctx.Value(keyUserID) != nil {
		t.Fatal("empty ids should not be stored")
	}
}
