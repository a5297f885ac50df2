package domain

import (
	"encoding/json"
	"fmt"
)

const (
	KeyContractName    = "contractName"
	KeyContractAddress = "contractAddress"
	KeyRPC             = "rpc"
)

// DeploymentRecord represents a Foundry broadcast file (broadcast/<script>/<chain>/run-latest.json)
// NOTE: This is a partial representation - only fields actually used by the application are included.
type DeploymentRecord struct {
	Transactions []DeploymentTransaction `json:"transactions"`
}

// DeploymentTransaction is a single broadcast transaction.
// Both fields are null for plain calls; ContractAddress is set for creations.
type DeploymentTransaction struct {
	ContractName    *string
	ContractAddress *string
	keys            keySet
}

func (t *DeploymentTransaction) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}

	t.keys = keysOf(raw)
	if err := decodeString(raw, KeyContractName, &t.ContractName); err != nil {
		return err
	}
	return decodeString(raw, KeyContractAddress, &t.ContractAddress)
}

// Has reports whether key was present in the decoded transaction, even with a null value
func (t DeploymentTransaction) Has(key string) bool {
	return t.keys[key]
}

// RPCRecord represents the Foundry cache file (cache/<script>/<chain>/run-latest.json)
type RPCRecord struct {
	Transactions []RPCTransaction `json:"transactions"`
}

type RPCTransaction struct {
	RPC  *string
	keys keySet
}

func (t *RPCTransaction) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}

	t.keys = keysOf(raw)
	return decodeString(raw, KeyRPC, &t.RPC)
}

// Has reports whether key was present in the decoded transaction, even with a null value
func (t RPCTransaction) Has(key string) bool {
	return t.keys[key]
}

// NetworkConfig is the exported deployment metadata of the main contract on one network
type NetworkConfig struct {
	ContractAddress *string `json:"contract_address"`
	RPCURL          string  `json:"rpc_url"`
}

// ExportedConfig maps a network identifier (chain ID) to its deployment metadata
type ExportedConfig map[string]NetworkConfig

type keySet map[string]bool

// decodeObject decodes a JSON object keeping its raw values. A null transaction decodes to no keys.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	return raw, nil
}

func keysOf(raw map[string]json.RawMessage) keySet {
	keys := make(keySet, len(raw))
	for key := range raw {
		keys[key] = true
	}
	return keys
}

func decodeString(raw map[string]json.RawMessage, key string, target **string) error {
	value, ok := raw[key]
	if !ok {
		*target = nil
		return nil
	}

	if err := json.Unmarshal(value, target); err != nil {
		return fmt.Errorf("failed to decode '%s': %w", key, err)
	}
	return nil
}
