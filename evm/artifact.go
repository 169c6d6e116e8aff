package evm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// A truffle build artifact. Only the abi is of interest here.
type artifact struct {
	Abi json.RawMessage `json:"abi"`
}

// ExtractABI returns the JSON ABI held by data, which may be either a bare
// ABI array or a truffle build artifact with an abi field.
func ExtractABI(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("not a valid ABI: empty input")
	}

	switch trimmed[0] {
	case '[':
		return trimmed, nil
	case '{':
		var a artifact
		if err := json.Unmarshal(trimmed, &a); err != nil {
			return nil, fmt.Errorf("not a valid ABI: %w", err)
		}
		abiJSON := bytes.TrimSpace(a.Abi)
		if len(abiJSON) == 0 || abiJSON[0] != '[' {
			return nil, fmt.Errorf("not a valid ABI: artifact has no abi array")
		}
		return abiJSON, nil
	}

	return nil, fmt.Errorf("not a valid ABI: expected a JSON array or object")
}

// ContractName derives a TypeScript identifier from an artifact path:
// the file name without its extension, leading digits and characters that
// cannot appear in an identifier dropped, first letter upper-cased.
func ContractName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		if r == '_' || r == '$' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}

	name := strings.TrimLeftFunc(b.String(), unicode.IsDigit)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// LoadArtifact builds the contract described by the artifact at path.
// It returns nil and no error when the ABI is empty, as it is for
// interfaces and abstract contracts without external functions.
func LoadArtifact(path string, data []byte) (*Contract, error) {
	abiJSON, err := ExtractABI(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(abiJSON, &entries); err != nil {
		return nil, fmt.Errorf("%s: not a valid ABI: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	name := ContractName(path)
	if name == "" {
		return nil, fmt.Errorf("%s: cannot derive a contract name from the file name", path)
	}

	c, err := ParseABI(name, abiJSON)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
