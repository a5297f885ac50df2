package configs

import (
	"errors"
	"fmt"
)

var Values Config

type (
	Config struct {
		Export Export `mapstructure:"export"`
		Log    Log    `mapstructure:"log"`
	}

	// Export describes where the build/deploy outputs live and where they are exported to.
	// Relative paths are resolved against ProjectDir.
	Export struct {
		ProjectDir        string   `mapstructure:"project-dir"`
		ExportDir         string   `mapstructure:"export-dir"`
		MainContract      string   `mapstructure:"main-contract"`
		Contracts         []string `mapstructure:"contracts"`
		ArtifactsDir      string   `mapstructure:"artifacts-dir"`
		BroadcastDir      string   `mapstructure:"broadcast-dir"`
		CacheDir          string   `mapstructure:"cache-dir"`
		ABIDirName        string   `mapstructure:"abi-dir-name"`
		ConfigFileName    string   `mapstructure:"config-file-name"`
		ValidateABI       bool     `mapstructure:"validate-abi"`
		ValidateAddresses bool     `mapstructure:"validate-addresses"`
		Manifest          bool     `mapstructure:"manifest"`
	}

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}
)

func (c *Export) Validate() error {
	var errs []error

	if c.ProjectDir == "" {
		errs = append(errs, errors.New("export.project-dir is required"))
	}
	if c.ExportDir == "" {
		errs = append(errs, errors.New("export.export-dir is required"))
	}
	if c.MainContract == "" {
		errs = append(errs, errors.New("export.main-contract is required"))
	}
	if len(c.Contracts) == 0 {
		errs = append(errs, errors.New("export.contracts must not be empty"))
	}
	for i, name := range c.Contracts {
		if name == "" {
			errs = append(errs, fmt.Errorf("export.contracts[%d] is empty", i))
		}
	}
	if c.ArtifactsDir == "" {
		errs = append(errs, errors.New("export.artifacts-dir is required"))
	}
	if c.BroadcastDir == "" {
		errs = append(errs, errors.New("export.broadcast-dir is required"))
	}
	if c.CacheDir == "" {
		errs = append(errs, errors.New("export.cache-dir is required"))
	}
	if c.ABIDirName == "" {
		errs = append(errs, errors.New("export.abi-dir-name is required"))
	}
	if c.ConfigFileName == "" {
		errs = append(errs, errors.New("export.config-file-name is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("export configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

func (c *Log) Validate() error {
	switch c.Format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("log.format must be either 'json' or 'text', got '%s'", c.Format)
	}
}
