// Package author holds the public author projection shown next to posts
package author

// View is the public shape of a post author
type View struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// UnknownUsername is used when the id is too short to derive a handle
const UnknownUsername = "Unknown User"

// PlaceholderUsername derives a display handle from the last 4 characters of id
func PlaceholderUsername(id string) string {
	r := []rune(id)
	if len(r) < 4 {
		return UnknownUsername
	}
	return "user-" + string(r[len(r)-4:])
}

// Placeholder is the view for an author the identity service did not return
func Placeholder(id string) View {
	return View{ID: id, Username: PlaceholderUsername(id)}
}

// From builds a view from resolved identity data. An empty username is
// synthesized while the avatar is kept
func From(id, username, imageURL string) View {
	if username == "" {
		username = PlaceholderUsername(id)
	}
	return View{ID: id, Username: username, ProfileImageURL: imageURL}
}
