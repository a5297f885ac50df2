package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/compose-network/deploy-exporter/configs"
	fsjson "github.com/compose-network/deploy-exporter/internal/infra/filesystem/json"
	"github.com/spf13/cobra"
)

var (
	CMD = &cobra.Command{
		Use:   "export",
		Short: "Export contract ABIs and the deployment config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), configs.Values.Export)
		},
	}

	NetworksCMD = &cobra.Command{
		Use:   "networks",
		Short: "List networks the main contract has been deployed to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listNetworks(cmd.OutOrStdout(), configs.Values.Export)
		},
	}
)

func run(out io.Writer, cfg configs.Export) error {
	slog.Info("starting export. Validating config", slog.Any("config", cfg))

	if err := cfg.Validate(); err != nil {
		return err
	}

	exporter := NewExporter(cfg, fsjson.NewReader(), fsjson.NewWriter())

	fmt.Fprintf(out, "Exporting to %s\n", cfg.ExportDir)

	if err := exporter.Run(); err != nil {
		return fmt.Errorf("error occurred exporting to '%s': %w", exporter.ExportDir(), err)
	}

	slog.With("export_dir", exporter.ExportDir()).Info("export finished successfully")

	return nil
}

func listNetworks(out io.Writer, cfg configs.Export) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	networks, err := NewExporter(cfg, fsjson.NewReader(), fsjson.NewWriter()).Networks()
	if err != nil {
		return err
	}

	for _, network := range networks {
		fmt.Fprintln(out, network)
	}

	return nil
}
