package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/config"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/engine"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/noise"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/storage"
)

// openStorage opens the SQLite database at the configured path.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/orbi/orbi.db"
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadRegistry builds the noise registry, merging the configured overlay
// file when present.
func loadRegistry() (*noise.Registry, error) {
	overlay := viper.GetString("noise.overlay")
	if overlay != "" {
		overlay = config.ExpandPath(overlay)
	}
	return noise.LoadRegistry(overlay)
}

// engineConfig builds the engine configuration from defaults overridden by
// viper settings.
func engineConfig() engine.Config {
	cfg := engine.DefaultConfig()

	if v := viper.GetFloat64("classification.channel_bonus"); v > 0 {
		cfg.ChannelCorroborationBonus = v
	}
	if v := viper.GetFloat64("classification.noise_penalty"); v > 0 {
		cfg.NoiseStrippingPenalty = v
	}
	if v := viper.GetInt("classification.noise_penalty_threshold"); v > 0 {
		cfg.NoisePenaltyThreshold = v
	}
	if v := viper.GetInt("classification.concurrency"); v > 0 {
		cfg.Concurrency = v
	}
	if v := viper.GetDuration("classification.dictionary_timeout"); v > 0 {
		cfg.DictionaryTimeout = v
	}
	if v := viper.GetDuration("classification.persist_timeout"); v > 0 {
		cfg.PersistTimeout = v
	}

	return cfg
}

// dictionaryTTL returns the configured warm-cache TTL for the dictionary.
func dictionaryTTL() time.Duration {
	return viper.GetDuration("dictionary.cache_ttl")
}
