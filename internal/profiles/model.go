package profiles

import "time"

// Profile is the stored identity of a signed-in user. Guest users have no
// profile row; their identity lives only in the guest header.
type Profile struct {
	UserID     string
	Email      string
	Name       string
	PictureURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
