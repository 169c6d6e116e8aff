package evm

// Tag names the kind of an EVM type, the way the declaration renderer sees it.
type Tag string

const (
	TagInteger      Tag = "integer"
	TagUInteger     Tag = "uinteger"
	TagAddress      Tag = "address"
	TagBytes        Tag = "bytes"
	TagDynamicBytes Tag = "dynamic-bytes"
	TagArray        Tag = "array"
	TagBoolean      Tag = "boolean"
	TagString       Tag = "string"
	TagTuple        Tag = "tuple"
	TagVoid         Tag = "void"
)

// Type is a closed sum of the EVM types a contract interface can mention.
// The unexported marker keeps the set of variants inside this package.
type Type interface {
	Tag() Tag
	evmType()
}

// Signed integer, intN
type Integer struct {
	Bits int
}

// Unsigned integer, uintN
type UInteger struct {
	Bits int
}

type Address struct{}

// Fixed size byte array, bytesN
type Bytes struct {
	Size int
}

// Dynamically sized byte array, bytes
type DynamicBytes struct{}

// Array of Item. Size is the length of a fixed array, 0 for a dynamic one.
type Array struct {
	Item Type
	Size int
}

type Boolean struct{}

type String struct{}

// Tuple is a struct type. Components keep their declaration order.
type Tuple struct {
	Components []Component
}

// Component is a named member of a tuple
type Component struct {
	Name string
	Type Type
}

// Void is the type of "no value" and only appears in output position.
type Void struct{}

func (Integer) Tag() Tag      { return TagInteger }
func (UInteger) Tag() Tag     { return TagUInteger }
func (Address) Tag() Tag      { return TagAddress }
func (Bytes) Tag() Tag        { return TagBytes }
func (DynamicBytes) Tag() Tag { return TagDynamicBytes }
func (Array) Tag() Tag        { return TagArray }
func (Boolean) Tag() Tag      { return TagBoolean }
func (String) Tag() Tag       { return TagString }
func (Tuple) Tag() Tag        { return TagTuple }
func (Void) Tag() Tag         { return TagVoid }

func (Integer) evmType()      {}
func (UInteger) evmType()     {}
func (Address) evmType()      {}
func (Bytes) evmType()        {}
func (DynamicBytes) evmType() {}
func (Array) evmType()        {}
func (Boolean) evmType()      {}
func (String) evmType()       {}
func (Tuple) evmType()        {}
func (Void) evmType()         {}
