package version

import (
	"testing"

	"chirp/internal/platform/testkit"
)

func TestInfo(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &version, "v1.2.3")
	testkit.Swap(t, &commit, "abc123")

	bi := Info()
	if bi.Service != "chirp-api" || bi.Version != "v1.2.3" || bi.Commit != "abc123" || bi.Date != "unknown" {
		t.Fatalf("info = %+v", bi)
	}
	if For("chirp-dbcheck").Service != "chirp-dbcheck" || Version() != "v1.2.3" {
		t.Fatalf("For/Version mismatch")
	}
}
