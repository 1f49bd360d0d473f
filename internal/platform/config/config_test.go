package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("LEDGER_SEED_ACCOUNTS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "soundmint" || cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TreasuryFloatAccount != "soundmint_platform_float" {
		t.Fatalf("unexpected float account %s", cfg.TreasuryFloatAccount)
	}
	if cfg.RoyaltyEscrowAccount != "soundmint_royalty_escrow" {
		t.Fatalf("unexpected escrow account %s", cfg.RoyaltyEscrowAccount)
	}
	if cfg.LedgerSeedAccounts != nil {
		t.Fatalf("expected no seed accounts, got %v", cfg.LedgerSeedAccounts)
	}
}

func TestLoadParsesLedgerSeedAccounts(t *testing.T) {
	t.Setenv("LEDGER_SEED_ACCOUNTS", "artist-1:10000000, label-2 : 5000000 ,broken,empty:,zero:0,bad:amount")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.LedgerSeedAccounts) != 2 {
		t.Fatalf("expected two seed accounts, got %v", cfg.LedgerSeedAccounts)
	}
	if cfg.LedgerSeedAccounts["artist-1"] != 10_000_000 {
		t.Fatalf("unexpected artist-1 seed %d", cfg.LedgerSeedAccounts["artist-1"])
	}
	if cfg.LedgerSeedAccounts["label-2"] != 5_000_000 {
		t.Fatalf("unexpected label-2 seed %d", cfg.LedgerSeedAccounts["label-2"])
	}
}
