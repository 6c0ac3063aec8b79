package profiles

import "time"

// ProfileResponse is the outward-facing representation of a profile.
type ProfileResponse struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	PictureURL string    `json:"pictureUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(profile Profile) ProfileResponse {
	return ProfileResponse{
		UserID:     profile.UserID,
		Email:      profile.Email,
		Name:       profile.Name,
		PictureURL: profile.PictureURL,
		CreatedAt:  profile.CreatedAt,
	}
}
