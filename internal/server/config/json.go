package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akorchagin/authgate/internal/flagx"
	"github.com/akorchagin/authgate/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "3s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr      string         `json:"endpoint_addr"`
	DatabaseDSN       string         `json:"database_dsn"`
	TokenHashKey      string         `json:"token_hash_key"`
	BcryptCost        int            `json:"bcrypt_cost"`
	TokenValidityDays int            `json:"token_validity_days"`
	StoreTimeout      timex.Duration `json:"store_timeout"`
	MaxOpenConns      int            `json:"max_open_conns"`
	MaxIdleConns      int            `json:"max_idle_conns"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; if neither
// is set, no JSON file is loaded. Fields absent from the file keep their
// current (default) values. If the file cannot be read or contains invalid
// JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.TokenHashKey != "" {
		config.TokenHashKey = c.TokenHashKey
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.TokenValidityDays != 0 {
		config.TokenValidityDays = c.TokenValidityDays
	}
	if c.StoreTimeout.Duration != 0 {
		config.StoreTimeout = time.Duration(c.StoreTimeout.Duration)
	}
	if c.MaxOpenConns != 0 {
		config.MaxOpenConns = c.MaxOpenConns
	}
	if c.MaxIdleConns != 0 {
		config.MaxIdleConns = c.MaxIdleConns
	}
}
