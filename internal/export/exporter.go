package export

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/compose-network/deploy-exporter/configs"
	"github.com/compose-network/deploy-exporter/internal/artifacts"
	"github.com/compose-network/deploy-exporter/internal/broadcast"
	"github.com/compose-network/deploy-exporter/internal/domain"
	"github.com/compose-network/deploy-exporter/internal/infra/filesystem"
	"github.com/compose-network/deploy-exporter/internal/logger"
)

type (
	deploymentExtractor interface {
		DiscoverNetworks(contract string) ([]string, error)
		ExtractLatestDeployedAddress(contract, network string) (*string, error)
		ExtractLatestRPCURL(contract, network string) (string, error)
	}

	artifactCopier interface {
		Copy(contract string) error
	}

	// Exporter exports contract ABIs and the per-network deployment config of the main contract
	Exporter struct {
		cfg       configs.Export
		exportDir string
		extractor deploymentExtractor
		artifacts artifactCopier
		writer    filesystem.Writer
		logger    *slog.Logger
	}
)

// NewExporter wires an exporter for cfg. Relative paths in cfg are resolved against cfg.ProjectDir.
func NewExporter(cfg configs.Export, reader filesystem.Reader, writer filesystem.Writer) *Exporter {
	exportDir := resolve(cfg.ProjectDir, cfg.ExportDir)

	return &Exporter{
		cfg:       cfg,
		exportDir: exportDir,
		extractor: broadcast.NewExtractor(reader, resolve(cfg.ProjectDir, cfg.BroadcastDir), resolve(cfg.ProjectDir, cfg.CacheDir), cfg.ValidateAddresses),
		artifacts: artifacts.NewExporter(reader, writer, resolve(cfg.ProjectDir, cfg.ArtifactsDir), filepath.Join(exportDir, cfg.ABIDirName), cfg.ValidateABI),
		writer:    writer,
		logger:    logger.Named("exporter"),
	}
}

// ExportDir returns the resolved export directory
func (e *Exporter) ExportDir() string {
	return e.exportDir
}

// ConfigPath returns the path the exported configuration is written to
func (e *Exporter) ConfigPath() string {
	return filepath.Join(e.exportDir, e.cfg.ConfigFileName)
}

// Networks lists the networks the main contract has been deployed to
func (e *Exporter) Networks() ([]string, error) {
	return e.extractor.DiscoverNetworks(e.cfg.MainContract)
}

// Run exports every configured ABI and then the deployment config.
// The first failure aborts the run; steps after it are not attempted.
func (e *Exporter) Run() error {
	abiDir := filepath.Join(e.exportDir, e.cfg.ABIDirName)
	if err := e.writer.EnsureDir(abiDir); err != nil {
		return fmt.Errorf("failed to prepare export directory '%s': %w", abiDir, err)
	}

	for _, contract := range e.cfg.Contracts {
		if err := e.artifacts.Copy(contract); err != nil {
			return err
		}
	}

	config, err := e.BuildConfiguration()
	if err != nil {
		return fmt.Errorf("failed to build configuration: %w", err)
	}

	path := e.ConfigPath()
	if err := e.writer.WriteJSON(path, config); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}

	e.logger.
		With("file_path", path).
		With("networks", len(config)).
		Info("configuration exported")

	if e.cfg.Manifest {
		if err := e.writeManifest(config); err != nil {
			return err
		}
	}

	return nil
}

// BuildConfiguration collects the address and RPC URL of the main contract on every network
// it was deployed to. Any failure discards the whole configuration.
func (e *Exporter) BuildConfiguration() (domain.ExportedConfig, error) {
	contract := e.cfg.MainContract

	networks, err := e.extractor.DiscoverNetworks(contract)
	if err != nil {
		return nil, err
	}

	config := make(domain.ExportedConfig, len(networks))
	for _, network := range networks {
		address, err := e.extractor.ExtractLatestDeployedAddress(contract, network)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", network, err)
		}

		rpcURL, err := e.extractor.ExtractLatestRPCURL(contract, network)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", network, err)
		}

		config[network] = domain.NetworkConfig{
			ContractAddress: address,
			RPCURL:          rpcURL,
		}
	}

	return config, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
