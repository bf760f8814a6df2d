package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	perr "chirp/internal/platform/errors"
	pstrings "chirp/internal/platform/strings"
)

// User is the part of a directory user record we read
type User struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL string  `json:"profile_image_url"`
	ImageURL        string  `json:"image_url"`
}

// Name returns the username, "" when unset
func (u User) Name() string { return pstrings.Deref(u.Username) }

// Avatar prefers profile_image_url and falls back to image_url
func (u User) Avatar() string {
	if u.ProfileImageURL != "" {
		return u.ProfileImageURL
	}
	return u.ImageURL
}

// ResolveMany looks up ids in chunks of MaxBatch. Duplicates and blanks are
// dropped before the call, ids the directory does not know are simply absent
// from the result. Any failed chunk fails the whole lookup
func (c *Client) ResolveMany(ctx context.Context, ids []string) (map[string]User, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	out := make(map[string]User, len(uniq))
	for start := 0; start < len(uniq); start += MaxBatch {
		end := min(start+MaxBatch, len(uniq))
		q := url.Values{}
		for _, id := range uniq[start:end] {
			q.Add("user_id", id)
		}
		q.Set("limit", strconv.Itoa(MaxBatch))

		users, err := c.listUsers(ctx, q)
		if err != nil {
			return nil, perr.WithOp(err, "identity.ResolveMany")
		}
		for _, u := range users {
			if _, want := seen[u.ID]; want {
				out[u.ID] = u
			}
		}
	}
	return out, nil
}

// ResolveByUsername returns the user holding username, compared case-insensitively
func (c *Client) ResolveByUsername(ctx context.Context, username string) (User, bool, error) {
	if username == "" {
		return User{}, false, nil
	}
	q := url.Values{}
	q.Add("username", username)
	q.Set("limit", "1")

	users, err := c.listUsers(ctx, q)
	if err != nil {
		return User{}, false, perr.WithOp(err, "identity.ResolveByUsername")
	}
	for _, u := range users {
		if strings.EqualFold(u.Name(), username) {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

// listUsers accepts both a bare array and a {"data": [...]} envelope
func (c *Client) listUsers(ctx context.Context, q url.Values) ([]User, error) {
	body, err := c.get(ctx, "/v1/users", q)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var users []User
		if err := json.Unmarshal(body, &users); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "identity decode users failed")
		}
		return users, nil
	}
	var env struct {
		Data []User `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "identity decode users failed")
	}
	return env.Data, nil
}
