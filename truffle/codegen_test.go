package truffle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jshufro/typegen-truffle/evm"
)

func token() *evm.Contract {
	c := &evm.Contract{Name: "Token"}
	c.AddFunction(&evm.Function{
		Name:            "balanceOf",
		Inputs:          []evm.Param{{Name: "owner", Type: evm.Address{}}},
		Outputs:         []evm.Param{{Type: evm.UInteger{Bits: 256}}},
		StateMutability: "view",
	})
	c.AddFunction(&evm.Function{
		Name:            "transfer",
		Inputs:          []evm.Param{{Name: "to", Type: evm.Address{}}, {Name: "amount", Type: evm.UInteger{Bits: 256}}},
		Outputs:         []evm.Param{{Type: evm.Boolean{}}},
		StateMutability: "nonpayable",
	})
	return c
}

const tokenDeclarations = `/// <reference types="truffle-typings" />
import BN from "bn.js";

export interface TokenContract extends Truffle.Contract<TokenInstance> {
  "new"(meta?: Truffle.TransactionDetails): Promise<TokenInstance>;
}

export interface TokenInstance extends Truffle.ContractInstance {
  balanceOf(owner: string | BN, txDetails?: Truffle.TransactionDetails): Promise<BN>;
  transfer: {
    (to: string | BN, amount: number | BN | string, txDetails?: Truffle.TransactionDetails): Promise<Truffle.TransactionResponse>;
    call(to: string | BN, amount: number | BN | string, txDetails?: Truffle.TransactionDetails): Promise<boolean>;
    sendTransaction(to: string | BN, amount: number | BN | string, txDetails?: Truffle.TransactionDetails): Promise<string>;
    estimateGas(to: string | BN, amount: number | BN | string, txDetails?: Truffle.TransactionDetails): Promise<number>;
  };
}
`

func TestCodegenToken(t *testing.T) {
	out, err := Codegen([]*evm.Contract{token()})
	require.NoError(t, err)
	assert.Equal(t, tokenDeclarations, out)
}

func TestCodegenEmpty(t *testing.T) {
	out, err := Codegen(nil)
	require.NoError(t, err)
	assert.Equal(t, "/// <reference types=\"truffle-typings\" />\nimport BN from \"bn.js\";\n", out)
	assert.NotContains(t, out, "interface")
}

func TestCodegenOrder(t *testing.T) {
	contracts := []*evm.Contract{{Name: "Zeta"}, {Name: "Alpha"}, {Name: "Mid"}}
	out, err := Codegen(contracts)
	require.NoError(t, err)

	var positions []int
	for _, decl := range []string{
		"interface ZetaContract ", "interface AlphaContract ", "interface MidContract ",
		"interface ZetaInstance ", "interface AlphaInstance ", "interface MidInstance ",
	} {
		assert.Equal(t, 1, strings.Count(out, decl), decl)
		positions = append(positions, strings.Index(out, decl))
	}
	for i := 1; i < len(positions); i++ {
		assert.Less(t, positions[i-1], positions[i])
	}
}

func TestCodegenConstructor(t *testing.T) {
	withArgs := &evm.Contract{
		Name: "Vault",
		Constructor: &evm.Function{
			Name:   "constructor",
			Inputs: []evm.Param{{Name: "owner", Type: evm.Address{}}, {Type: evm.Array{Item: evm.Bytes{Size: 32}}}},
		},
	}
	noArgs := &evm.Contract{Name: "Box", Constructor: &evm.Function{Name: "constructor"}}

	out, err := Codegen([]*evm.Contract{withArgs, noArgs})
	require.NoError(t, err)
	assert.Contains(t, out, `  "new"(owner: string | BN, arg1: (string | BN)[], meta?: Truffle.TransactionDetails): Promise<VaultInstance>;`)
	assert.Contains(t, out, `  "new"(meta?: Truffle.TransactionDetails): Promise<BoxInstance>;`)
}

func TestCodegenFirstOverloadOnly(t *testing.T) {
	c := &evm.Contract{Name: "Multi"}
	c.AddFunction(&evm.Function{Name: "get", Inputs: []evm.Param{{Name: "id", Type: evm.UInteger{Bits: 256}}}, Outputs: []evm.Param{{Type: evm.String{}}}, StateMutability: "view"})
	c.AddFunction(&evm.Function{Name: "get", Inputs: []evm.Param{{Name: "key", Type: evm.String{}}}, Outputs: []evm.Param{{Type: evm.String{}}}, StateMutability: "view"})

	out, err := Codegen([]*evm.Contract{c})
	require.NoError(t, err)
	assert.Contains(t, out, "  get(id: number | BN | string, txDetails?: Truffle.TransactionDetails): Promise<string>;")
	assert.NotContains(t, out, "key")
	assert.Equal(t, 1, strings.Count(out, "get("))
}

func TestCodegenFunctionShapes(t *testing.T) {
	c := &evm.Contract{Name: "Shapes"}
	c.AddFunction(&evm.Function{
		Name:            "pair",
		Outputs:         []evm.Param{{Type: evm.UInteger{Bits: 256}}, {Type: evm.String{}}},
		StateMutability: "pure",
	})
	c.AddFunction(&evm.Function{Name: "poke", Payable: true, StateMutability: "payable"})
	c.AddFunction(&evm.Function{Name: "legacy", Constant: true, Outputs: []evm.Param{{Type: evm.Address{}}}})
	c.AddFunction(&evm.Function{
		Name:   "deposit",
		Inputs: []evm.Param{{Name: "d", Type: evm.Tuple{Components: []evm.Component{{Name: "owner", Type: evm.Address{}}, {Name: "amount", Type: evm.UInteger{Bits: 256}}}}}},
	})

	out, err := Codegen([]*evm.Contract{c})
	require.NoError(t, err)

	assert.Contains(t, out, "  pair(txDetails?: Truffle.TransactionDetails): Promise<[BN, string]>;\n")
	assert.Contains(t, out, "  legacy(txDetails?: Truffle.TransactionDetails): Promise<string>;\n")
	assert.Contains(t, out, "  poke: {\n    (txDetails?: Truffle.TransactionDetails): Promise<Truffle.TransactionResponse>;\n    call(txDetails?: Truffle.TransactionDetails): Promise<[]>;\n")
	assert.Contains(t, out, "    call(d: {owner: string | BN, amount: number | BN | string}, txDetails?: Truffle.TransactionDetails): Promise<[]>;\n")
	assert.Equal(t, 2, strings.Count(out, "sendTransaction("))
	assert.Equal(t, 2, strings.Count(out, "estimateGas("))
}

func TestCodegenClassifier(t *testing.T) {
	g := &Generator{IsConstant: func(fn *evm.Function) bool { return fn.Name == "transfer" }}
	out, err := g.Codegen([]*evm.Contract{token()})
	require.NoError(t, err)
	assert.Contains(t, out, "  transfer(to: string | BN, amount: number | BN | string, txDetails?: Truffle.TransactionDetails): Promise<boolean>;\n")
	assert.Contains(t, out, "  balanceOf: {\n")

	// The zero value falls back to the default classifier
	out, err = (&Generator{}).Codegen([]*evm.Contract{token()})
	require.NoError(t, err)
	assert.Equal(t, tokenDeclarations, out)
}

func TestCodegenIdempotent(t *testing.T) {
	contracts := []*evm.Contract{token(), {Name: "Other"}}
	first, err := Codegen(contracts)
	require.NoError(t, err)
	second, err := Codegen(contracts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, GenerateArtifactHeaders(contracts), GenerateArtifactHeaders(contracts))
}

func TestCodegenUnrenderable(t *testing.T) {
	c := token()
	c.AddFunction(&evm.Function{Name: "broken", Inputs: []evm.Param{{Name: "v", Type: evm.Void{}}}})

	out, err := Codegen([]*evm.Contract{c})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.ErrorIs(t, err, ErrUnrenderableType)
	assert.Contains(t, err.Error(), "contract Token")
	assert.Contains(t, err.Error(), "function broken")

	ctor := &evm.Contract{Name: "Ctor", Constructor: &evm.Function{Inputs: []evm.Param{{Type: nil}}}}
	_, err = Codegen([]*evm.Contract{ctor})
	assert.ErrorIs(t, err, ErrUnrenderableType)
	assert.Contains(t, err.Error(), "constructor")
}

func TestGenerateArtifactHeaders(t *testing.T) {
	out := GenerateArtifactHeaders([]*evm.Contract{token(), {Name: "Migrations"}})
	assert.Equal(t, `/// <reference types="truffle-typings" />

import * as TruffleContracts from ".";

declare global {
  namespace Truffle {
    interface Artifacts {
      require(name: "Token"): TruffleContracts.TokenContract;
      require(name: "Migrations"): TruffleContracts.MigrationsContract;
    }
  }
}
`, out)

	empty := GenerateArtifactHeaders(nil)
	assert.Contains(t, empty, "interface Artifacts {\n    }")
}
