package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	ApprovalThresholdPct decimal.Decimal
	VoteQuorum           int
	ContributorRatio     decimal.Decimal
	PoolAccount          string
	PoolAmount           decimal.Decimal

	EnableVotingOutboxRelay     bool
	EnableSettlementOutboxRelay bool
	EnableVoteCastConsumer      bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "openwave"
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

	poolAccount := strings.TrimSpace(os.Getenv("FUNDING_POOL_ACCOUNT"))
	if poolAccount == "" {
		poolAccount = "funding-pool"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		ApprovalThresholdPct: envDecimal("APPROVAL_THRESHOLD_PCT", decimal.NewFromInt(60)),
		VoteQuorum:           envInt("VOTE_QUORUM", 1),
		ContributorRatio:     envDecimal("CONTRIBUTOR_SPLIT_RATIO", decimal.RequireFromString("0.70")),
		PoolAccount:          poolAccount,
		PoolAmount:           envDecimal("FUNDING_POOL_AMOUNT", decimal.NewFromInt(1000)),

		EnableVotingOutboxRelay:     envBool("ENABLE_VOTING_OUTBOX_RELAY", true),
		EnableSettlementOutboxRelay: envBool("ENABLE_SETTLEMENT_OUTBOX_RELAY", true),
		EnableVoteCastConsumer:      envBool("ENABLE_VOTE_CAST_CONSUMER", true),
	}, nil
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

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDecimal(name string, fallback decimal.Decimal) decimal.Decimal {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return value
}
