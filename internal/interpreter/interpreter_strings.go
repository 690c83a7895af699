package interpreter

import (
	"strconv"
	"strings"
)

// Stringify renders a value the way `output` prints it. Strings are raw at
// the top level and quoted inside arrays and structs.
func Stringify(value Value) string {
	var b strings.Builder
	writeValue(&b, value, false, make(map[any]bool))
	return b.String()
}

func writeValue(b *strings.Builder, value Value, nested bool, seen map[any]bool) {
	switch v := value.(type) {
	case IntegerValue:
		b.WriteString(strconv.FormatInt(v.Val, 10))
	case StringValue:
		if nested {
			b.WriteString(`"` + v.Val + `"`)
			return
		}
		b.WriteString(v.Val)
	case *ArrayValue:
		if seen[v] {
			b.WriteString("[...]")
			return
		}
		seen[v] = true
		defer delete(seen, v)

		b.WriteByte('[')
		for j, element := range v.Elements {
			if j > 0 {
				b.WriteString(", ")
			}
			writeValue(b, element, true, seen)
		}
		b.WriteByte(']')
	case *StructInstance:
		if seen[v] {
			b.WriteString(v.Definition.Name + "{...}")
			return
		}
		seen[v] = true
		defer delete(seen, v)

		b.WriteString(v.Definition.Name)
		b.WriteByte('{')
		for j, name := range v.FieldNames() {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteString(": ")
			writeValue(b, v.Fields[name], true, seen)
		}
		b.WriteByte('}')
	case *FunctionValue:
		b.WriteString("<function " + v.Name() + ">")
	case *StructDefinition:
		b.WriteString("<struct " + v.Name + ">")
	case UninitializedValue:
		b.WriteString("uninitialized")
	default:
		b.WriteString("<unknown>")
	}
}
