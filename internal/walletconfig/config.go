// Package walletconfig is the wallet-side configuration for handling
// signing requests: default callback background mode, preferred chain id,
// and whether to attempt compression on encode. It holds no secrets, only
// display/behavior preferences, so plain JSON-on-disk storage is
// sufficient — the protocol core itself keeps no persisted state; this is
// wallet-side ambient config layered over it.
package walletconfig

import (
	"encoding/json"
	"time"
)

// Config is the top-level wallet configuration.
type Config struct {
	Version         string    `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	DefaultBackground bool      `json:"defaultBackground"`
	PreferredChainHex string    `json:"preferredChainHex,omitempty"`
	AttemptCompress bool      `json:"attemptCompress"`
}

// New returns a Config with the library's own defaults: foreground
// callbacks, no chain preference, compression attempted.
func New() *Config {
	now := time.Now()
	return &Config{
		Version:         "1.0.0",
		CreatedAt:       now,
		UpdatedAt:       now,
		DefaultBackground: false,
		AttemptCompress: true,
	}
}

// SetDefaultBackground updates the default callback background flag.
func (c *Config) SetDefaultBackground(background bool) {
	c.DefaultBackground = background
	c.UpdatedAt = time.Now()
}

// SetPreferredChain records the preferred chain id as lowercase hex, or
// clears it if hexID is empty.
func (c *Config) SetPreferredChain(hexID string) {
	c.PreferredChainHex = hexID
	c.UpdatedAt = time.Now()
}

// SetAttemptCompress updates whether Encode should attempt compression.
func (c *Config) SetAttemptCompress(attempt bool) {
	c.AttemptCompress = attempt
	c.UpdatedAt = time.Now()
}

// ToJSON serializes c to indented JSON.
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// FromJSON deserializes a Config from JSON.
func FromJSON(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
