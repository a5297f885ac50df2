package export

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/compose-network/deploy-exporter/internal/domain"
	"gopkg.in/yaml.v3"
)

const manifestFileName = "manifest.yaml"

type (
	Manifest struct {
		MainContract string                     `yaml:"main-contract"`
		Contracts    []ManifestContract         `yaml:"contracts"`
		Networks     map[string]ManifestNetwork `yaml:"networks"`
	}

	ManifestContract struct {
		Name string `yaml:"name"`
		ABI  string `yaml:"abi"`
	}

	ManifestNetwork struct {
		ContractAddress *string `yaml:"contract-address"`
		RPCURL          string  `yaml:"rpc-url"`
	}
)

func (e *Exporter) buildManifest(config domain.ExportedConfig) Manifest {
	manifest := Manifest{
		MainContract: e.cfg.MainContract,
		Contracts:    make([]ManifestContract, 0, len(e.cfg.Contracts)),
		Networks:     make(map[string]ManifestNetwork, len(config)),
	}

	for _, contract := range e.cfg.Contracts {
		manifest.Contracts = append(manifest.Contracts, ManifestContract{
			Name: contract,
			ABI:  filepath.ToSlash(filepath.Join(e.cfg.ABIDirName, contract+".json")),
		})
	}
	sort.Slice(manifest.Contracts, func(i, j int) bool {
		return manifest.Contracts[i].Name < manifest.Contracts[j].Name
	})

	for network, cfg := range config {
		manifest.Networks[network] = ManifestNetwork{
			ContractAddress: cfg.ContractAddress,
			RPCURL:          cfg.RPCURL,
		}
	}

	return manifest
}

func (e *Exporter) writeManifest(config domain.ExportedConfig) error {
	data, err := yaml.Marshal(e.buildManifest(config))
	if err != nil {
		return fmt.Errorf("could not marshal manifest. Err: '%w'", err)
	}

	path := filepath.Join(e.exportDir, manifestFileName)
	if err := e.writer.WriteBytes(path, data); err != nil {
		return fmt.Errorf("could not write manifest file. Err: '%w'", err)
	}

	e.logger.With("file_path", path).Info("manifest exported")

	return nil
}
