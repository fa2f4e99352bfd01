package app

import (
	"os"
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/datacontainer/pkg/utils"
)

// Config holds the defaults for the global options. It is merged
// from ~/.dcctl, <user config dir>/.dcctl and ./.dcctl, and the
// DCCTL_* environment variables.
type Config struct {
	Relationship *string `json:"relationship,omitempty"`
	Store        *string `json:"store,omitempty"`
	StoreType    *string `json:"storeType,omitempty"`
}

func GetConfig(fs vfs.FileSystem) *Config {
	var cfg Config

	dir, err := os.UserHomeDir()
	if err == nil {
		MergeConfig(&cfg, ReadConfig(fs, filepath.Join(dir, ".dcctl")))
	}
	dir, err = os.UserConfigDir()
	if err == nil {
		MergeConfig(&cfg, ReadConfig(fs, filepath.Join(dir, ".dcctl")))
	}
	MergeConfig(&cfg, ReadConfig(fs, ".dcctl"))

	if v := os.Getenv("DCCTL_CONFIG"); v != "" {
		cfg.Relationship = utils.Pointer(v)
	}
	if v := os.Getenv("DCCTL_STORE"); v != "" {
		cfg.Store = utils.Pointer(v)
	}
	if v := os.Getenv("DCCTL_STORE_TYPE"); v != "" {
		cfg.StoreType = utils.Pointer(v)
	}
	if cfg.Relationship == nil || *cfg.Relationship == "" {
		cfg.Relationship = utils.Pointer("relationship.yaml")
	}
	return &cfg
}

func ReadConfig(fs vfs.FileSystem, path string) *Config {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil
	}
	return &cfg
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.Relationship != nil {
		cfg.Relationship = add.Relationship
	}
	if add.Store != nil {
		cfg.Store = add.Store
	}
	if add.StoreType != nil {
		cfg.StoreType = add.StoreType
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
