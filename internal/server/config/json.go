package config

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"shelflog/internal/flagx"
)

type jsonConfig struct {
	Address                 *string `json:"address"`
	DatabaseDSN             *string `json:"database_dsn"`
	SecretKey               *string `json:"secret_key"`
	SessionValidityDuration *string `json:"session_validity_duration"`
	SecureCookies           *bool   `json:"secure_cookies"`
}

// parseJson overlays settings from a JSON config file when one is named via
// -c/-config or the CONFIG environment variable. Only keys present in the
// file override the current values.
func parseJson(cfg *Config) {
	fileName := flagx.JsonConfigFlags()
	if fileName == "" {
		fileName = os.Getenv("CONFIG")
	}
	if fileName == "" {
		return
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		log.Printf("error reading config file %s: %v", fileName, err)
		return
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		log.Printf("error parsing config file %s: %v", fileName, err)
		return
	}

	if jc.Address != nil {
		cfg.EndpointAddrHTTP = *jc.Address
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.SessionValidityDuration != nil {
		if d, err := time.ParseDuration(*jc.SessionValidityDuration); err == nil {
			cfg.SessionValidityDuration = d
		} else {
			log.Printf("invalid session_validity_duration %q: %v", *jc.SessionValidityDuration, err)
		}
	}
	if jc.SecureCookies != nil {
		cfg.SecureCookies = *jc.SecureCookies
	}
}
