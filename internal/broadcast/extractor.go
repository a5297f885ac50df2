package broadcast

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/compose-network/deploy-exporter/internal/domain"
	"github.com/compose-network/deploy-exporter/internal/infra/filesystem"
	"github.com/compose-network/deploy-exporter/internal/logger"
	"github.com/ethereum/go-ethereum/common"
)

const (
	scriptDirFormat = "Deploy%s.s.sol"
	runLatestFile   = "run-latest.json"
)

var (
	ErrMissingTransactions = errors.New("record has no 'transactions' list")
	ErrNoTransactions      = errors.New("record contains no transactions")
	ErrMissingField        = errors.New("transaction is missing a required field")
	ErrMissingRPC          = errors.New("first transaction has no 'rpc' field")
	ErrNullRPC             = errors.New("first transaction has a null 'rpc'")
	ErrInvalidAddress      = errors.New("deployed address is not a valid hex address")
)

// Extractor reads Foundry broadcast and cache outputs of deployment scripts
type Extractor struct {
	broadcastDir      string
	cacheDir          string
	validateAddresses bool
	reader            filesystem.Reader
	logger            *slog.Logger
}

// NewExtractor creates an extractor over the given broadcast and cache directories.
// When validateAddresses is set, a deployed address that is not 20-byte hex fails the lookup
// instead of only being reported.
func NewExtractor(reader filesystem.Reader, broadcastDir, cacheDir string, validateAddresses bool) *Extractor {
	return &Extractor{
		broadcastDir:      broadcastDir,
		cacheDir:          cacheDir,
		validateAddresses: validateAddresses,
		reader:            reader,
		logger:            logger.Named("broadcast_extractor"),
	}
}

// ScriptDir returns the broadcast directory of the deployment script for contract
func (e *Extractor) ScriptDir(contract string) string {
	return filepath.Join(e.broadcastDir, fmt.Sprintf(scriptDirFormat, contract))
}

// DeploymentRecordPath returns the path of the latest broadcast record of contract on network
func (e *Extractor) DeploymentRecordPath(contract, network string) string {
	return filepath.Join(e.ScriptDir(contract), network, runLatestFile)
}

// RPCRecordPath returns the path of the latest cached run of contract on network
func (e *Extractor) RPCRecordPath(contract, network string) string {
	return filepath.Join(e.cacheDir, fmt.Sprintf(scriptDirFormat, contract), network, runLatestFile)
}

// DiscoverNetworks lists the networks contract has been broadcast to.
// Each subdirectory of the script's broadcast directory is a network identifier.
func (e *Extractor) DiscoverNetworks(contract string) ([]string, error) {
	dir := e.ScriptDir(contract)

	networks, err := e.reader.ListDirs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover networks of %s in '%s': %w", contract, dir, err)
	}

	e.logger.
		With("contract", contract).
		With("networks", networks).
		Debug("networks discovered")

	return networks, nil
}

// ExtractLatestDeployedAddress returns the address of the first transaction in the broadcast
// record that deployed contract. A nil address with a nil error means no transaction matched.
func (e *Extractor) ExtractLatestDeployedAddress(contract, network string) (*string, error) {
	path := e.DeploymentRecordPath(contract, network)
	logger := e.logger.With("contract", contract).With("network", network)

	var record domain.DeploymentRecord
	if err := e.reader.ReadJSON(path, &record); err != nil {
		return nil, fmt.Errorf("failed to read deployment record '%s': %w", path, err)
	}
	if record.Transactions == nil {
		return nil, fmt.Errorf("deployment record '%s': %w", path, ErrMissingTransactions)
	}

	for i, tx := range record.Transactions {
		if !tx.Has(domain.KeyContractName) {
			return nil, fmt.Errorf("deployment record '%s' transaction %d: '%s': %w", path, i, domain.KeyContractName, ErrMissingField)
		}
		if tx.ContractName == nil || *tx.ContractName != contract {
			continue
		}

		if !tx.Has(domain.KeyContractAddress) {
			return nil, fmt.Errorf("deployment record '%s' transaction %d: '%s': %w", path, i, domain.KeyContractAddress, ErrMissingField)
		}

		if tx.ContractAddress != nil && !common.IsHexAddress(*tx.ContractAddress) {
			if e.validateAddresses {
				return nil, fmt.Errorf("deployment record '%s': '%s': %w", path, *tx.ContractAddress, ErrInvalidAddress)
			}
			logger.With("address", *tx.ContractAddress).Warn("deployed address is not a valid hex address")
		}

		return tx.ContractAddress, nil
	}

	logger.Warn("no deployment transaction found for contract")

	return nil, nil
}

// ExtractLatestRPCURL returns the RPC endpoint of the first cached transaction.
// The endpoint belongs to the network, so transactions are not filtered by contract.
func (e *Extractor) ExtractLatestRPCURL(contract, network string) (string, error) {
	path := e.RPCRecordPath(contract, network)

	var record domain.RPCRecord
	if err := e.reader.ReadJSON(path, &record); err != nil {
		return "", fmt.Errorf("failed to read rpc record '%s': %w", path, err)
	}
	if record.Transactions == nil {
		return "", fmt.Errorf("rpc record '%s': %w", path, ErrMissingTransactions)
	}
	if len(record.Transactions) == 0 {
		return "", fmt.Errorf("rpc record '%s': %w", path, ErrNoTransactions)
	}

	first := record.Transactions[0]
	if !first.Has(domain.KeyRPC) {
		return "", fmt.Errorf("rpc record '%s': %w", path, ErrMissingRPC)
	}
	// rpc_url is exported as a string, so a null endpoint cannot be represented.
	if first.RPC == nil {
		return "", fmt.Errorf("rpc record '%s': %w", path, ErrNullRPC)
	}

	return *first.RPC, nil
}
