package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerCfg struct {
	Port string `yaml:"port" json:"port"`
	Env  string `yaml:"env" json:"env"`
}

type CacheCfg struct {
	Backend    string `yaml:"backend" json:"backend"` // memory | redis | mongo | hybrid
	TTLMinutes int    `yaml:"ttl_minutes" json:"ttl_minutes"`
	L1Size     int    `yaml:"l1_size" json:"l1_size"`
}

type ParserOpts struct {
	NilDefaults bool `yaml:"nil_defaults" json:"nil_defaults"` // leave unmatched fields null instead of ""
}

type BatchCfg struct {
	MaxTexts int `yaml:"max_texts" json:"max_texts"`
}

type AppCfg struct {
	Server ServerCfg  `yaml:"server" json:"server"`
	Cache  CacheCfg   `yaml:"cache" json:"cache"`
	Parser ParserOpts `yaml:"parser" json:"parser"`
	Batch  BatchCfg   `yaml:"batch" json:"batch"`
}

var C = AppCfg{
	Server: ServerCfg{Port: "8080", Env: "development"},
	Cache:  CacheCfg{Backend: "memory", TTLMinutes: 1440, L1Size: 10000},
	Batch:  BatchCfg{MaxTexts: 20000},
}

// Load reads the YAML config at path into the package-level C, then applies
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides()
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}
	applyEnvOverrides()
	return nil
}

func applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		C.Server.Port = port
	}
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		C.Cache.Backend = backend
	}
	switch os.Getenv("NIL_DEFAULTS") {
	case "0":
		C.Parser.NilDefaults = false
	case "1":
		C.Parser.NilDefaults = true
	}
}

// CacheTTL returns the configured cache entry lifetime.
func CacheTTL() time.Duration { return time.Duration(C.Cache.TTLMinutes) * time.Minute }

// RequestTimeout bounds a single parse request.
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
