package bootstrap

import (
	"context"

	profileapp "soundmint/contexts/artist-identity/profile-service/application"
	workapp "soundmint/contexts/catalog/work-registry/application"
	workports "soundmint/contexts/catalog/work-registry/ports"
	royaltyports "soundmint/contexts/finance-core/royalty-ledger/ports"
	treasuryapp "soundmint/contexts/platform-treasury/treasury-service/application"
)

// The glue adapters below satisfy each context's consumer-side ports with the
// application services of the owning context. Contexts never import each
// other; all cross-context traffic passes through here.

type treasuryAuthorityReader struct {
	service treasuryapp.Service
}

func (a treasuryAuthorityReader) TreasuryAuthority(ctx context.Context) (string, error) {
	treasury, err := a.service.GetTreasury(ctx)
	if err != nil {
		return "", err
	}
	return treasury.Authority, nil
}

type registryTreasury struct {
	service treasuryapp.Service
}

func (a registryTreasury) MintPolicy(ctx context.Context) (workports.MintPolicy, error) {
	treasury, err := a.service.GetTreasury(ctx)
	if err != nil {
		return workports.MintPolicy{}, err
	}
	return workports.MintPolicy{
		TreasuryWallet: treasury.TreasuryWallet,
		MintFee:        treasury.MintFee,
	}, nil
}

func (a registryTreasury) AccrueRevenue(ctx context.Context, amount uint64) error {
	return a.service.AccrueRevenue(ctx, amount)
}

func (a registryTreasury) ReverseRevenue(ctx context.Context, amount uint64) error {
	return a.service.ReverseRevenue(ctx, amount)
}

type royaltyTreasury struct {
	service treasuryapp.Service
}

func (a royaltyTreasury) DistributionPolicy(ctx context.Context) (royaltyports.DistributionPolicy, error) {
	treasury, err := a.service.GetTreasury(ctx)
	if err != nil {
		return royaltyports.DistributionPolicy{}, err
	}
	return royaltyports.DistributionPolicy{
		StreamingProvider:      treasury.StreamingProvider,
		TreasuryWallet:         treasury.TreasuryWallet,
		PlatformFeeBasisPoints: treasury.PlatformFeeBasisPoints,
	}, nil
}

func (a royaltyTreasury) AccrueRevenue(ctx context.Context, amount uint64) error {
	return a.service.AccrueRevenue(ctx, amount)
}

func (a royaltyTreasury) ReverseRevenue(ctx context.Context, amount uint64) error {
	return a.service.ReverseRevenue(ctx, amount)
}

type profileDirectory struct {
	service profileapp.Service
}

func (a profileDirectory) GetProfile(ctx context.Context, authorityID string) (workports.ArtistProfileView, error) {
	profile, err := a.service.GetProfile(ctx, authorityID)
	if err != nil {
		return workports.ArtistProfileView{}, err
	}
	return workports.ArtistProfileView{
		Authority:  profile.Authority,
		IsVerified: profile.IsVerified,
		TrackCount: profile.TrackCount,
	}, nil
}

func (a profileDirectory) RegisterWork(ctx context.Context, authorityID string) error {
	_, err := a.service.RegisterWork(ctx, authorityID)
	return err
}

type workDirectory struct {
	service workapp.Service
}

func (a workDirectory) WorkAuthority(ctx context.Context, workID string) (string, error) {
	work, err := a.service.GetWork(ctx, workID)
	if err != nil {
		return "", err
	}
	return work.ArtistAuthority, nil
}
