package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	TreasuryFloatAccount string
	RoyaltyEscrowAccount string

	// LedgerSeedAccounts pre-funds the in-process ledger so operations that
	// charge fees can settle before external settlement wiring lands.
	LedgerSeedAccounts map[string]uint64

	EnableWorkOutboxRelay    bool
	EnableRoyaltyOutboxRelay bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "soundmint"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	float := os.Getenv("TREASURY_FLOAT_ACCOUNT")
	if float == "" {
		float = "soundmint_platform_float"
	}
	escrow := os.Getenv("ROYALTY_ESCROW_ACCOUNT")
	if escrow == "" {
		escrow = "soundmint_royalty_escrow"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		TreasuryFloatAccount: float,
		RoyaltyEscrowAccount: escrow,

		LedgerSeedAccounts: envSeedAccounts("LEDGER_SEED_ACCOUNTS"),

		EnableWorkOutboxRelay:    envBool("ENABLE_WORK_OUTBOX_RELAY", true),
		EnableRoyaltyOutboxRelay: envBool("ENABLE_ROYALTY_OUTBOX_RELAY", true),
	}, nil
}

// envSeedAccounts parses "account:amount" pairs separated by commas, e.g.
// "artist-1:10000000,label-2:5000000". Malformed entries are skipped.
func envSeedAccounts(name string) map[string]uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil
	}
	seeds := make(map[string]uint64)
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			continue
		}
		account := strings.TrimSpace(parts[0])
		amount, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || account == "" || amount == 0 {
			continue
		}
		seeds[account] = amount
	}
	if len(seeds) == 0 {
		return nil
	}
	return seeds
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
