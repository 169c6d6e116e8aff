// Package evm holds the intermediate model of a contract ABI that the
// declaration renderers consume, and the loaders that build it from ABI JSON
// and build artifacts.
package evm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// In-memory representation of a single contract
type Contract struct {
	Name        string          // Unique within a generation run
	Constructor *Function       // nil if the ABI declares no constructor. Only Inputs is meaningful.
	Functions   []FunctionGroup // Ordered by first appearance in the ABI
}

// All functions sharing one name. Never empty.
type FunctionGroup struct {
	Name      string
	Overloads []*Function
}

// In-memory representation of a single function or constructor
type Function struct {
	Name            string
	Inputs          []Param
	Outputs         []Param
	StateMutability string // pure, view, nonpayable or payable. Empty in legacy ABIs.
	Constant        bool   // Legacy "constant" flag
	Payable         bool   // Legacy "payable" flag
}

// In-memory representation of a single input or output
type Param struct {
	Name string // Empty when the ABI leaves the parameter anonymous
	Type Type
}

// DisplayName returns the declared name, or arg<index> for anonymous parameters.
func (p Param) DisplayName(index int) string {
	if p.Name == "" {
		return fmt.Sprintf("arg%d", index)
	}
	return p.Name
}

// Overloads returns the overload list registered under name, or nil.
func (c *Contract) Overloads(name string) []*Function {
	for _, g := range c.Functions {
		if g.Name == name {
			return g.Overloads
		}
	}
	return nil
}

// AddFunction appends fn to the overload list of its name, opening a new
// group at the end if the name is new.
func (c *Contract) AddFunction(fn *Function) {
	for i := range c.Functions {
		if c.Functions[i].Name == fn.Name {
			c.Functions[i].Overloads = append(c.Functions[i].Overloads, fn)
			return
		}
	}
	c.Functions = append(c.Functions, FunctionGroup{Name: fn.Name, Overloads: []*Function{fn}})
}

// IsConstant reports whether fn can be evaluated without submitting a
// transaction. It applies the same rule go-ethereum uses for bound calls:
// view and pure functions, plus functions carrying the legacy constant flag.
func IsConstant(fn *Function) bool {
	m := abi.NewMethod(fn.Name, fn.Name, abi.Function, fn.StateMutability, fn.Constant, fn.Payable, nil, nil)
	return m.IsConstant()
}
