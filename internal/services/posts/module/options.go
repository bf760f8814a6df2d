package module

import (
	"chirp/internal/platform/config"
	"chirp/internal/services/posts/repo"
)

// Options controls posts behavior
type Options struct {
	// FeedLimit caps list results, at most repo.MaxList
	FeedLimit int
}

// FromConfig reads FEED_LIMIT from the api scoped config
func FromConfig(cfg config.Conf) Options {
	n := cfg.MayInt("FEED_LIMIT", repo.MaxList)
	if n <= 0 || n > repo.MaxList {
		n = repo.MaxList
	}
	return Options{FeedLimit: n}
}
