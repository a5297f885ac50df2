package export

import (
	"github.com/compose-network/deploy-exporter/configs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag with its configuration.
type (
	flagType interface {
		string | bool | []string
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

var defaults = configs.MustDefaultConfig()

var (
	stringFlags = []flagDef[string]{
		// Layout
		{"project-dir", "export.project-dir", defaults.Export.ProjectDir, "Directory containing the Foundry out/, broadcast/ and cache/ outputs"},
		{"export-dir", "export.export-dir", defaults.Export.ExportDir, "Destination directory of the export"},
		{"artifacts-dir", "export.artifacts-dir", defaults.Export.ArtifactsDir, "Foundry compiled artifacts directory"},
		{"broadcast-dir", "export.broadcast-dir", defaults.Export.BroadcastDir, "Foundry broadcast directory"},
		{"cache-dir", "export.cache-dir", defaults.Export.CacheDir, "Foundry cache directory"},
		{"abi-dir-name", "export.abi-dir-name", defaults.Export.ABIDirName, "Subdirectory of the export directory receiving the ABIs"},
		{"config-file-name", "export.config-file-name", defaults.Export.ConfigFileName, "File name of the exported deployment config"},

		// Contracts
		{"main-contract", "export.main-contract", defaults.Export.MainContract, "Contract whose deployments are exported"},

		// Logging
		{"log-level", "log.level", defaults.Log.Level, "Log level (debug, info, warn, error)"},
		{"log-format", "log.format", defaults.Log.Format, "Log format (json or text)"},
	}

	stringSliceFlags = []flagDef[[]string]{
		{"contracts", "export.contracts", defaults.Export.Contracts, "Contracts whose ABIs are exported"},
	}

	boolFlags = []flagDef[bool]{
		{"validate-abi", "export.validate-abi", defaults.Export.ValidateABI, "Check that every artifact carries a parseable ABI before exporting it"},
		{"validate-addresses", "export.validate-addresses", defaults.Export.ValidateAddresses, "Fail when a deployed address is not a 20-byte hex address instead of only logging it"},
		{"manifest", "export.manifest", defaults.Export.Manifest, "Also write manifest.yaml describing the export"},
	}
)

// BindFlags declares the export flags as persistent flags of cmd and binds them to viper.
func BindFlags(cmd *cobra.Command) error {
	if err := declareFlags(cmd, stringFlags); err != nil {
		return err
	}
	if err := declareFlags(cmd, stringSliceFlags); err != nil {
		return err
	}
	return declareFlags(cmd, boolFlags)
}

// declareFlags declares multiple flags and binds them to viper configuration keys.
func declareFlags[T flagType](cmd *cobra.Command, flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(cmd, flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single flag and binds it to a viper configuration key.
// The type parameter T determines the flag type (string, bool or string slice).
func declareFlag[T flagType](cmd *cobra.Command, flagName, viperKey string, defaultValue T, description string) error {
	flags := cmd.PersistentFlags()

	var zero T
	switch any(zero).(type) {
	case string:
		flags.String(flagName, any(defaultValue).(string), description)
	case bool:
		flags.Bool(flagName, any(defaultValue).(bool), description)
	case []string:
		flags.StringSlice(flagName, any(defaultValue).([]string), description)
	}
	return viper.BindPFlag(viperKey, flags.Lookup(flagName))
}
