package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/compose-network/deploy-exporter/internal/infra/filesystem"
	"github.com/compose-network/deploy-exporter/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

type (
	// Exporter copies compiled Foundry artifacts into the export ABI directory
	Exporter struct {
		artifactsDir string
		abiDir       string
		validateABI  bool
		reader       filesystem.Reader
		writer       filesystem.Writer
		logger       *slog.Logger
	}

	// artifact is the part of a Foundry artifact that is inspected before export
	artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
)

// NewExporter creates an artifact exporter. When validateABI is set, the 'abi' field
// of every artifact must decode as a contract ABI before it is copied.
func NewExporter(reader filesystem.Reader, writer filesystem.Writer, artifactsDir, abiDir string, validateABI bool) *Exporter {
	return &Exporter{
		artifactsDir: artifactsDir,
		abiDir:       abiDir,
		validateABI:  validateABI,
		reader:       reader,
		writer:       writer,
		logger:       logger.Named("artifacts_exporter"),
	}
}

// SourcePath returns the path of the compiled artifact of contract, out/<name>.sol/<name>.json
func (e *Exporter) SourcePath(contract string) string {
	return filepath.Join(e.artifactsDir, contract+".sol", contract+".json")
}

// DestinationPath returns the path contract's artifact is exported to
func (e *Exporter) DestinationPath(contract string) string {
	return filepath.Join(e.abiDir, contract+".json")
}

// Copy exports the artifact of contract verbatim, replacing any previous export
func (e *Exporter) Copy(contract string) error {
	src, dst := e.SourcePath(contract), e.DestinationPath(contract)

	data, err := e.reader.ReadBytes(src)
	if err != nil {
		return fmt.Errorf("failed to read artifact of %s: %w", contract, err)
	}

	if e.validateABI {
		if err := validate(data); err != nil {
			return fmt.Errorf("invalid artifact of %s at '%s': %w", contract, src, err)
		}
	}

	if err := e.writer.WriteBytes(dst, data); err != nil {
		return fmt.Errorf("failed to export artifact of %s: %w", contract, err)
	}

	e.logger.
		With("contract", contract).
		With("destination", dst).
		Info("artifact exported")

	return nil
}

func validate(data []byte) error {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("failed to parse artifact: %w", err)
	}
	if len(a.ABI) == 0 {
		return fmt.Errorf("artifact has no 'abi' field")
	}

	if _, err := abi.JSON(bytes.NewReader(a.ABI)); err != nil {
		return fmt.Errorf("failed to parse ABI: %w", err)
	}

	return nil
}
