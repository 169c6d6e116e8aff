// Package truffle renders contract models into TypeScript declarations for
// the truffle-typings library.
package truffle

import (
	"bytes"
	"fmt"

	"github.com/jshufro/typegen-truffle/evm"
)

const txDetails = "Truffle.TransactionDetails"

// printer accumulates generated lines
type printer struct {
	buf bytes.Buffer
}

// P prints a line made of the concatenation of v.
func (p *printer) P(v ...interface{}) {
	for _, x := range v {
		fmt.Fprint(&p.buf, x)
	}
	fmt.Fprintln(&p.buf)
}

func (p *printer) String() string {
	return p.buf.String()
}

// Generator renders declarations. The zero value classifies functions with
// evm.IsConstant.
type Generator struct {
	// IsConstant reports whether a function is called rather than transacted
	IsConstant func(*evm.Function) bool
}

var defaultGenerator = &Generator{IsConstant: evm.IsConstant}

// Codegen renders the contract and instance interfaces of contracts with the
// default generator.
func Codegen(contracts []*evm.Contract) (string, error) {
	return defaultGenerator.Codegen(contracts)
}

// GenerateArtifactHeaders renders the artifacts.require overloads for contracts.
func GenerateArtifactHeaders(contracts []*evm.Contract) string {
	return defaultGenerator.GenerateArtifactHeaders(contracts)
}

func (g *Generator) isConstant(fn *evm.Function) bool {
	if g.IsConstant == nil {
		return evm.IsConstant(fn)
	}
	return g.IsConstant(fn)
}

// Codegen renders one contract interface per contract, followed by one
// instance interface per contract, both in the order given. Nothing is
// returned if any type fails to render.
func (g *Generator) Codegen(contracts []*evm.Contract) (string, error) {
	p := new(printer)
	p.P(`/// <reference types="truffle-typings" />`)
	p.P(`import BN from "bn.js";`)

	for _, c := range contracts {
		p.P()
		if err := g.generateContractInterface(p, c); err != nil {
			return "", fmt.Errorf("contract %s: %w", c.Name, err)
		}
	}

	for _, c := range contracts {
		p.P()
		if err := g.generateInstanceInterface(p, c); err != nil {
			return "", fmt.Errorf("contract %s: %w", c.Name, err)
		}
	}

	return p.String(), nil
}

// GenerateArtifactHeaders renders a global augmentation of Truffle.Artifacts
// mapping every contract name to its contract interface.
func (g *Generator) GenerateArtifactHeaders(contracts []*evm.Contract) string {
	p := new(printer)
	p.P(`/// <reference types="truffle-typings" />`)
	p.P()
	p.P(`import * as TruffleContracts from ".";`)
	p.P()
	p.P("declare global {")
	p.P("  namespace Truffle {")
	p.P("    interface Artifacts {")
	for _, c := range contracts {
		p.P(`      require(name: "`, c.Name, `"): TruffleContracts.`, c.Name, "Contract;")
	}
	p.P("    }")
	p.P("  }")
	p.P("}")

	return p.String()
}

// params renders the argument list of a signature: the declared inputs, then
// the optional options argument called opt.
func params(inputs []evm.Param, opt string) (string, error) {
	in, err := InputList(inputs)
	if err != nil {
		return "", err
	}
	if in == "" {
		return opt + "?: " + txDetails, nil
	}
	return in + ", " + opt + "?: " + txDetails, nil
}

func (g *Generator) generateContractInterface(p *printer, c *evm.Contract) error {
	var inputs []evm.Param
	if c.Constructor != nil {
		inputs = c.Constructor.Inputs
	}
	args, err := params(inputs, "meta")
	if err != nil {
		return fmt.Errorf("constructor: %w", err)
	}

	p.P("export interface ", c.Name, "Contract extends Truffle.Contract<", c.Name, "Instance> {")
	p.P(`  "new"(`, args, "): Promise<", c.Name, "Instance>;")
	p.P("}")
	return nil
}

func (g *Generator) generateInstanceInterface(p *printer, c *evm.Contract) error {
	// Render every member first so a failure leaves nothing half written
	members := new(printer)
	for _, group := range c.Functions {
		if len(group.Overloads) == 0 {
			continue
		}
		// Only the first overload is declared
		if err := g.generateFunction(members, group.Overloads[0]); err != nil {
			return fmt.Errorf("function %s: %w", group.Name, err)
		}
	}

	p.P("export interface ", c.Name, "Instance extends Truffle.ContractInstance {")
	p.buf.WriteString(members.String())
	p.P("}")
	return nil
}

func (g *Generator) generateFunction(p *printer, fn *evm.Function) error {
	args, err := params(fn.Inputs, "txDetails")
	if err != nil {
		return err
	}
	out, err := OutputType(fn.Outputs)
	if err != nil {
		return err
	}

	if g.isConstant(fn) {
		p.P("  ", fn.Name, "(", args, "): Promise<", out, ">;")
		return nil
	}

	p.P("  ", fn.Name, ": {")
	p.P("    (", args, "): Promise<Truffle.TransactionResponse>;")
	p.P("    call(", args, "): Promise<", out, ">;")
	p.P("    sendTransaction(", args, "): Promise<string>;")
	p.P("    estimateGas(", args, "): Promise<number>;")
	p.P("  };")
	return nil
}
