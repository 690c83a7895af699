package interpreter

import (
	"fmt"

	"github.com/kievzenit/l25/internal/ast"
)

type Kind int

const (
	KindInteger Kind = iota
	KindString
	KindArray
	KindStructInstance
	KindUninitialized
	KindFunction
	KindStructDefinition
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindStructInstance:
		return "struct"
	case KindUninitialized:
		return "uninitialized"
	case KindFunction:
		return "function"
	case KindStructDefinition:
		return "struct definition"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is any runtime value bound in a scope.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// ArrayValue has a fixed length and is shared by reference.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// StructDefinition is the blueprint bound under the struct's name.
type StructDefinition struct {
	Name   string
	Fields []string
}

func (v *StructDefinition) Kind() Kind { return KindStructDefinition }

// StructInstance is shared by reference. Fields assigned outside the
// blueprint are appended to order.
type StructInstance struct {
	Definition *StructDefinition
	Fields     map[string]Value

	order []string
}

func newStructInstance(def *StructDefinition) *StructInstance {
	return &StructInstance{
		Definition: def,
		Fields:     make(map[string]Value, len(def.Fields)),
		order:      make([]string, 0, len(def.Fields)),
	}
}

func (v *StructInstance) Kind() Kind { return KindStructInstance }

func (v *StructInstance) Get(name string) (Value, bool) {
	value, ok := v.Fields[name]
	return value, ok
}

func (v *StructInstance) Set(name string, value Value) {
	if _, ok := v.Fields[name]; !ok {
		v.order = append(v.order, name)
	}
	v.Fields[name] = value
}

// FieldNames lists the instance fields in declaration order.
func (v *StructInstance) FieldNames() []string {
	return v.order
}

type FunctionValue struct {
	Def *ast.FuncDef
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Name() string { return v.Def.Name.Value }

// UninitializedValue is bound by `let x;` until x is assigned.
type UninitializedValue struct{}

func (UninitializedValue) Kind() Kind { return KindUninitialized }
