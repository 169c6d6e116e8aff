package evm

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// A single entry of a JSON ABI, as emitted by solc
type abiEntry struct {
	Type            string                   `json:"type"`
	Name            string                   `json:"name"`
	Inputs          []abi.ArgumentMarshaling `json:"inputs"`
	Outputs         []abi.ArgumentMarshaling `json:"outputs"`
	StateMutability string                   `json:"stateMutability"`
	Constant        bool                     `json:"constant"`
	Payable         bool                     `json:"payable"`
}

// FromABIType converts a go-ethereum ABI type into the renderer's model.
func FromABIType(t abi.Type) (Type, error) {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		// abi.NewType takes any width, solc only emits multiples of 8 up to 256
		if t.Size == 0 || t.Size%8 != 0 || t.Size > 256 {
			return nil, fmt.Errorf("unsupported integer width in '%s'", t.String())
		}
		if t.T == abi.IntTy {
			return Integer{Bits: t.Size}, nil
		}
		return UInteger{Bits: t.Size}, nil
	case abi.AddressTy:
		return Address{}, nil
	case abi.FixedBytesTy:
		return Bytes{Size: t.Size}, nil
	case abi.HashTy:
		return Bytes{Size: 32}, nil
	case abi.FunctionTy:
		// An external function pointer is encoded as bytes24
		return Bytes{Size: 24}, nil
	case abi.BytesTy:
		return DynamicBytes{}, nil
	case abi.BoolTy:
		return Boolean{}, nil
	case abi.StringTy:
		return String{}, nil
	case abi.SliceTy, abi.ArrayTy:
		if t.Elem == nil {
			return nil, fmt.Errorf("array type '%s' has no element type", t.String())
		}
		item, err := FromABIType(*t.Elem)
		if err != nil {
			return nil, err
		}
		size := 0
		if t.T == abi.ArrayTy {
			size = t.Size
		}
		return Array{Item: item, Size: size}, nil
	case abi.TupleTy:
		out := Tuple{Components: make([]Component, 0, len(t.TupleElems))}
		for i, elem := range t.TupleElems {
			ct, err := FromABIType(*elem)
			if err != nil {
				return nil, err
			}
			out.Components = append(out.Components, Component{Name: t.TupleRawNames[i], Type: ct})
		}
		return out, nil
	}

	return nil, fmt.Errorf("unsupported abi type '%s'", t.String())
}

// nameComponents gives anonymous tuple components the positional name
// arg<index>, since abi.NewType refuses unnamed struct fields.
func nameComponents(components []abi.ArgumentMarshaling) []abi.ArgumentMarshaling {
	if len(components) == 0 {
		return components
	}
	out := make([]abi.ArgumentMarshaling, len(components))
	for i, c := range components {
		if c.Name == "" {
			c.Name = fmt.Sprintf("arg%d", i)
		}
		c.Components = nameComponents(c.Components)
		out[i] = c
	}
	return out
}

func parseArguments(args []abi.ArgumentMarshaling) ([]Param, error) {
	out := make([]Param, 0, len(args))
	for _, arg := range args {
		abiType, err := abi.NewType(arg.Type, arg.InternalType, nameComponents(arg.Components))
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %w", arg.Name, err)
		}
		t, err := FromABIType(abiType)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %w", arg.Name, err)
		}
		out = append(out, Param{Name: arg.Name, Type: t})
	}
	return out, nil
}

func parseFunction(e *abiEntry) (*Function, error) {
	out := new(Function)
	out.Name = e.Name
	out.StateMutability = e.StateMutability
	out.Constant = e.Constant
	out.Payable = e.Payable

	var err error
	out.Inputs, err = parseArguments(e.Inputs)
	if err != nil {
		return nil, fmt.Errorf("inputs of '%s': %w", e.Name, err)
	}
	out.Outputs, err = parseArguments(e.Outputs)
	if err != nil {
		return nil, fmt.Errorf("outputs of '%s': %w", e.Name, err)
	}

	return out, nil
}

// ParseABI builds the model of a contract called name from its JSON ABI.
// Functions keep ABI declaration order; events, errors, fallback and receive
// entries carry nothing the declarations use and are skipped.
func ParseABI(name string, data []byte) (*Contract, error) {
	var entries []abiEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing abi of %s: %w", name, err)
	}

	out := &Contract{Name: name}
	for i := range entries {
		e := &entries[i]
		switch e.Type {
		case "function", "":
			fn, err := parseFunction(e)
			if err != nil {
				return nil, fmt.Errorf("error parsing abi of %s: %w", name, err)
			}
			out.AddFunction(fn)
		case "constructor":
			if out.Constructor != nil {
				return nil, fmt.Errorf("error parsing abi of %s: more than one constructor", name)
			}
			e.Name = "constructor"
			fn, err := parseFunction(e)
			if err != nil {
				return nil, fmt.Errorf("error parsing abi of %s: %w", name, err)
			}
			out.Constructor = fn
		}
	}

	return out, nil
}
