package service

import (
	"context"
	"errors"
	"testing"

	"chirp/internal/adapters/identity"
	perr "chirp/internal/platform/errors"
	"chirp/internal/platform/testkit"
	"chirp/internal/services/profiles/domain"
)

type fakeDir struct {
	users map[string]identity.User
	err   error
}

func (f fakeDir) ResolveByUsername(_ context.Context, username string) (identity.User, bool, error) {
	if f.err != nil {
		return identity.User{}, false, f.err
	}
	u, ok := f.users[username]
	return u, ok, nil
}

func TestByUsername(t *testing.T) {
	t.Parallel()

	robin := "robin"
	s := New(fakeDir{users: map[string]identity.User{
		"robin": {ID: "user_42", Username: &robin, ProfileImageURL: "https://img/42"},
	}})

	v, err := s.ByUsername(context.Background(), domain.UsernameInput{Username: "robin"})
	if err != nil || v.ID != "user_42" || v.Username != "robin" || v.ProfileImageURL != "https://img/42" {
		t.Fatalf("v=%+v err=%v", v, err)
	}

	_, err = s.ByUsername(context.Background(), domain.UsernameInput{Username: "ghost"})
	if perr.KindFor(err) != perr.KindNotFound {
		t.Fatalf("ghost kind = %v", perr.KindFor(err))
	}
}

func TestByUsername_UpstreamFailure(t *testing.T) {
	t.Parallel()

	_, err := New(fakeDir{err: errors.New("dial tcp: refused")}).ByUsername(context.Background(), domain.UsernameInput{Username: "x"})
	if perr.KindFor(err) != perr.KindInternal {
		t.Fatalf("kind = %v", perr.KindFor(err))
	}
}

func TestNew_RequiresDirectory(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { New(nil) })
}
