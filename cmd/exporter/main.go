package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/compose-network/deploy-exporter/configs"
	"github.com/compose-network/deploy-exporter/internal/export"
	"github.com/compose-network/deploy-exporter/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "deploy-exporter"

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Export Foundry contract ABIs and deployment metadata to a consumer directory",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.LoadDefaults(viper.GetViper()); err != nil {
			return err
		}

		viper.SetConfigName("exporter")
		viper.SetConfigType("yaml")

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			viper.AddConfigPath(execDir)
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")

		// The config file is optional: embedded defaults and flags cover every key
		configFileErr := viper.MergeInConfig()
		var notFound viper.ConfigFileNotFoundError
		if configFileErr != nil && !errors.As(configFileErr, &notFound) {
			return errors.Join(configFileErr, errors.New("error reading config file"))
		}

		if err := viper.Unmarshal(&configs.Values); err != nil {
			return errors.Join(err, errors.New("unable to decode application config"))
		}

		if err := configs.Values.Log.Validate(); err != nil {
			return err
		}
		level, err := logger.ParseLevel(configs.Values.Log.Level)
		if err != nil {
			return err
		}
		logger.Initialize(os.Stderr, level, configs.Values.Log.Format)

		if configFileErr == nil {
			slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
		} else {
			slog.Debug("no config file found, will rely on flags and defaults")
		}
		slog.With("config", configs.Values).Debug("configuration loaded")

		return nil
	},
	RunE: export.CMD.RunE,
}

func init() {
	if err := export.BindFlags(rootCmd); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(export.CMD)
	rootCmd.AddCommand(export.NetworksCMD)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
