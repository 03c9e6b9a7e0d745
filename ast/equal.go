package ast

// Equal reports whether two nodes are the same variant with equal fields.
// Sequences compare their statement nodes only; line numbers and
// instruction-pointer state are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *BooleanLit:
		y, ok := b.(*BooleanLit)
		return ok && x.Value == y.Value
	case *NumberLit:
		y, ok := b.(*NumberLit)
		return ok && x.Value == y.Value
	case *StringLit:
		y, ok := b.(*StringLit)
		return ok && x.Value == y.Value
	case *Sequence:
		y, ok := b.(*Sequence)
		if !ok || len(x.statements) != len(y.statements) {
			return false
		}
		for i := range x.statements {
			if !Equal(x.statements[i].Node, y.statements[i].Node) {
				return false
			}
		}
		return true
	case *Label:
		y, ok := b.(*Label)
		return ok && x.Name == y.Name
	case *Resume:
		_, ok := b.(*Resume)
		return ok
	case *Goto:
		y, ok := b.(*Goto)
		return ok && Equal(x.Target, y.Target)
	case *If:
		y, ok := b.(*If)
		return ok && Equal(x.Test, y.Test) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *Call:
		y, ok := b.(*Call)
		return ok && Equal(x.Fn, y.Fn) && equalNodes(x.Args, y.Args)
	case *Function:
		y, ok := b.(*Function)
		return ok && x.Name == y.Name && equalStrings(x.Params, y.Params) && Equal(x.Body, y.Body)
	case *Exit:
		_, ok := b.(*Exit)
		return ok
	case *Return:
		y, ok := b.(*Return)
		return ok && Equal(x.Value, y.Value)
	case *CreateList:
		y, ok := b.(*CreateList)
		return ok && equalNodes(x.Elements, y.Elements)
	case *Assignment:
		y, ok := b.(*Assignment)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case *FieldAssignment:
		y, ok := b.(*FieldAssignment)
		return ok && x.Path == y.Path && Equal(x.Value, y.Value)
	case *EntityDefinition:
		y, ok := b.(*EntityDefinition)
		if !ok || x.Name != y.Name || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !Equal(x.Fields[i].Default, y.Fields[i].Default) {
				return false
			}
		}
		return true
	case *CreateEntity:
		y, ok := b.(*CreateEntity)
		if !ok || !Equal(x.Template, y.Template) || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !Equal(x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
