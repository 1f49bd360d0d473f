package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	domainerrors "soundmint/contexts/artist-identity/profile-service/domain/errors"
	"soundmint/contexts/artist-identity/profile-service/ports"
)

type Store struct {
	mu       sync.RWMutex
	profiles map[string]ports.ArtistProfile
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]ports.ArtistProfile),
	}
}

func (s *Store) CreateProfile(_ context.Context, profile ports.ArtistProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(profile.Authority)
	if key == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, exists := s.profiles[key]; exists {
		return domainerrors.ErrProfileExists
	}
	s.profiles[key] = cloneProfile(profile)
	return nil
}

func (s *Store) GetProfile(_ context.Context, authorityID string) (ports.ArtistProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[strings.TrimSpace(authorityID)]
	if !ok {
		return ports.ArtistProfile{}, domainerrors.ErrProfileNotFound
	}
	return cloneProfile(profile), nil
}

func (s *Store) UpdateProfile(_ context.Context, profile ports.ArtistProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(profile.Authority)
	if _, ok := s.profiles[key]; !ok {
		return domainerrors.ErrProfileNotFound
	}
	s.profiles[key] = cloneProfile(profile)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func cloneProfile(profile ports.ArtistProfile) ports.ArtistProfile {
	item := profile
	item.SocialLinks = append([]ports.SocialLink(nil), profile.SocialLinks...)
	return item
}
