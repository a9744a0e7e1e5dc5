package models

// Profile is a read-only projection of a user row plus the viewer-relative
// following flag. It is computed at query time and never stored.
type Profile struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// ProfileOf builds a Profile for the given user with an explicit following
// state. Used by follow/unfollow, where the flag is known from the mutation
// just committed.
func ProfileOf(user *User, following bool) *Profile {
	return &Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}
}
