package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service manages user profiles.
type Service struct {
	Repo Repo
}

// EnsureProfile creates or refreshes the profile for a signed-in user.
// Called on every successful login so the stored name and picture track the
// identity provider.
func (s *Service) EnsureProfile(ctx context.Context, userID, email, name, pictureURL string) (Profile, error) {
	now := time.Now().UTC()
	profile := Profile{
		UserID:     userID,
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Name:       strings.TrimSpace(name),
		PictureURL: pictureURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	existing, err := s.Repo.Get(ctx, userID)
	if err == nil {
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Get returns the profile for a user.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return s.Repo.Get(ctx, userID)
}
