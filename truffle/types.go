package truffle

import (
	"strings"

	"github.com/jshufro/typegen-truffle/evm"
)

// MapInput renders t as the type of an argument. Arguments accept every
// representation web3 can encode, so numbers and addresses are unions.
func MapInput(t evm.Type) (string, error) {
	switch t := t.(type) {
	case evm.Integer, evm.UInteger:
		return "number | BN | string", nil
	case evm.Address, evm.Bytes:
		return "string | BN", nil
	case evm.DynamicBytes:
		return "string", nil
	case evm.Array:
		return arrayType(t, MapInput)
	case evm.Boolean:
		return "boolean", nil
	case evm.String:
		return "string", nil
	case evm.Tuple:
		return tupleType(t, MapInput)
	}

	return "", unrenderable(t, PositionInput)
}

// MapOutput renders t as the type of a returned value. Results are
// normalized: every integer is a BN, addresses and bytes are hex strings.
func MapOutput(t evm.Type) (string, error) {
	switch t := t.(type) {
	case evm.Integer, evm.UInteger:
		return "BN", nil
	case evm.Address, evm.Bytes, evm.DynamicBytes:
		return "string", nil
	case evm.Void:
		return "void", nil
	case evm.Array:
		return arrayType(t, MapOutput)
	case evm.Boolean:
		return "boolean", nil
	case evm.String:
		return "string", nil
	case evm.Tuple:
		return tupleType(t, MapOutput)
	}

	return "", unrenderable(t, PositionOutput)
}

func arrayType(a evm.Array, mapper func(evm.Type) (string, error)) (string, error) {
	item, err := mapper(a.Item)
	if err != nil {
		return "", err
	}
	return "(" + item + ")[]", nil
}

// Tuples render as inline records, so equal shapes give equal text.
func tupleType(t evm.Tuple, mapper func(evm.Type) (string, error)) (string, error) {
	fields := make([]string, 0, len(t.Components))
	for _, c := range t.Components {
		ct, err := mapper(c.Type)
		if err != nil {
			return "", err
		}
		fields = append(fields, c.Name+": "+ct)
	}
	return "{" + strings.Join(fields, ", ") + "}", nil
}

// InputList renders params as a comma separated parameter list. It is
// empty for no params; callers add the separator before a trailing option.
func InputList(params []evm.Param) (string, error) {
	entries := make([]string, 0, len(params))
	for i, p := range params {
		t, err := MapInput(p.Type)
		if err != nil {
			return "", err
		}
		entries = append(entries, p.DisplayName(i)+": "+t)
	}
	return strings.Join(entries, ", "), nil
}

// OutputType renders the result type of a function. A single output is
// returned bare, anything else as a fixed length tuple.
func OutputType(params []evm.Param) (string, error) {
	if len(params) == 1 {
		return MapOutput(params[0].Type)
	}

	types := make([]string, 0, len(params))
	for _, p := range params {
		t, err := MapOutput(p.Type)
		if err != nil {
			return "", err
		}
		types = append(types, t)
	}
	return "[" + strings.Join(types, ", ") + "]", nil
}
