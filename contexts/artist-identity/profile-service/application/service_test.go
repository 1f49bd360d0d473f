package application

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"soundmint/contexts/artist-identity/profile-service/adapters/memory"
	domainerrors "soundmint/contexts/artist-identity/profile-service/domain/errors"
	"soundmint/contexts/artist-identity/profile-service/ports"
	"soundmint/internal/shared/authority"
)

type stubTreasury struct {
	authority string
	err       error
}

func (s stubTreasury) TreasuryAuthority(context.Context) (string, error) {
	return s.authority, s.err
}

func newService() (Service, *memory.Store) {
	store := memory.NewStore()
	return Service{
		Repo:     store,
		Treasury: stubTreasury{authority: "platform-admin"},
		Clock:    store,
	}, store
}

func TestCreateProfileDefaults(t *testing.T) {
	service, _ := newService()

	profile, err := service.CreateProfile(context.Background(), "artist-1", "Nova", "electronic producer", "ipfs://img")
	if err != nil {
		t.Fatalf("create profile failed: %v", err)
	}
	if profile.IsVerified {
		t.Fatal("new profile must not be verified")
	}
	if profile.TrackCount != 0 {
		t.Fatalf("new profile must have zero tracks, got %d", profile.TrackCount)
	}
	if len(profile.SocialLinks) != 0 {
		t.Fatal("new profile must have no social links")
	}
}

func TestCreateProfileTwiceFails(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.CreateProfile(ctx, "artist-1", "Nova", "", ""); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := service.CreateProfile(ctx, "artist-1", "Other Name", "", "")
	if !errors.Is(err, domainerrors.ErrProfileExists) {
		t.Fatalf("expected profile-exists, got %v", err)
	}

	stored, _ := service.GetProfile(ctx, "artist-1")
	if stored.Name != "Nova" {
		t.Fatalf("duplicate create must not mutate, got name %s", stored.Name)
	}
}

func TestCreateProfileLengthLimits(t *testing.T) {
	service, _ := newService()

	_, err := service.CreateProfile(context.Background(), "artist-1", strings.Repeat("x", 51), "", "")
	if !errors.Is(err, domainerrors.ErrStringTooLong) {
		t.Fatalf("expected string-too-long, got %v", err)
	}
}

func TestUpdateProfileSocialLinksReplace(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	if _, err := service.CreateProfile(ctx, "artist-1", "Nova", "", ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first := []ports.SocialLink{
		{Platform: "twitter", URL: "https://x.com/nova"},
		{Platform: "bandcamp", URL: "https://nova.bandcamp.com"},
	}
	if _, err := service.UpdateProfile(ctx, "artist-1", ports.UpdateProfileInput{SocialLinks: &first}); err != nil {
		t.Fatalf("first link update failed: %v", err)
	}

	replacement := []ports.SocialLink{{Platform: "instagram", URL: "https://instagram.com/nova"}}
	profile, err := service.UpdateProfile(ctx, "artist-1", ports.UpdateProfileInput{SocialLinks: &replacement})
	if err != nil {
		t.Fatalf("replacement failed: %v", err)
	}
	if !reflect.DeepEqual(profile.SocialLinks, replacement) {
		t.Fatalf("expected full replacement, got %+v", profile.SocialLinks)
	}

	// Omitting social links retains the stored sequence exactly.
	name := "Nova Prime"
	profile, err = service.UpdateProfile(ctx, "artist-1", ports.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("name-only update failed: %v", err)
	}
	if !reflect.DeepEqual(profile.SocialLinks, replacement) {
		t.Fatalf("omitted links must be retained, got %+v", profile.SocialLinks)
	}
	if profile.Name != "Nova Prime" {
		t.Fatalf("unexpected name %s", profile.Name)
	}
}

func TestUpdateProfileTooManyLinks(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	if _, err := service.CreateProfile(ctx, "artist-1", "Nova", "", ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	links := make([]ports.SocialLink, 6)
	for i := range links {
		links[i] = ports.SocialLink{Platform: "p", URL: "u"}
	}
	_, err := service.UpdateProfile(ctx, "artist-1", ports.UpdateProfileInput{SocialLinks: &links})
	if !errors.Is(err, domainerrors.ErrTooManySocialLinks) {
		t.Fatalf("expected too-many-links, got %v", err)
	}
}

func TestVerifyArtistGate(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	if _, err := service.CreateProfile(ctx, "artist-1", "Nova", "", ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := service.VerifyArtist(ctx, "artist-1", "artist-1", true)
	if !errors.Is(err, authority.ErrUnauthorized) {
		t.Fatalf("artist self-verification must fail, got %v", err)
	}
	stored, _ := service.GetProfile(ctx, "artist-1")
	if stored.IsVerified {
		t.Fatal("failed verification must not flip the flag")
	}

	profile, err := service.VerifyArtist(ctx, "platform-admin", "artist-1", true)
	if err != nil {
		t.Fatalf("admin verification failed: %v", err)
	}
	if !profile.IsVerified {
		t.Fatal("expected verified profile")
	}

	profile, err = service.VerifyArtist(ctx, "platform-admin", "artist-1", false)
	if err != nil {
		t.Fatalf("admin unverification failed: %v", err)
	}
	if profile.IsVerified {
		t.Fatal("expected flag set exactly as given")
	}
}

func TestRegisterWorkIncrementsTrackCount(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	if _, err := service.CreateProfile(ctx, "artist-1", "Nova", "", ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	profile, err := service.RegisterWork(ctx, "artist-1")
	if err != nil {
		t.Fatalf("register work failed: %v", err)
	}
	if profile.TrackCount != 1 {
		t.Fatalf("expected track count 1, got %d", profile.TrackCount)
	}
}
