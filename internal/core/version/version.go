// Package version reports build information stamped at link time.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set with -ldflags, e.g.
// -X 'chirp/internal/core/version.version=v0.1.0' -X 'chirp/internal/core/version.commit=abcd'
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for the api binary.
func Info() BuildInfo { return For("chirp-api") }

// For returns the build information labelled with service.
func For(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Version returns the stamped version string.
func Version() string { return version }
