package ast

import (
	"strconv"
	"strings"
)

func (n *Identifier) String() string { return n.Name }

func (n *BooleanLit) String() string { return "Boolean(" + strconv.FormatBool(n.Value) + ")" }

func (n *NumberLit) String() string { return "Number(" + strconv.FormatUint(n.Value, 10) + ")" }

func (n *StringLit) String() string { return "String(" + strconv.Quote(n.Value) + ")" }

func (n *Label) String() string { return "LABEL " + n.Name }

func (*Resume) String() string { return "RESUME" }

func (n *Goto) String() string { return "GOTO " + n.Target.String() }

func (n *If) String() string {
	s := "IF " + n.Test.String() + " THEN " + n.Then.String()
	if n.HasElse() {
		s += " ELSE " + n.Else.String()
	}
	return s
}

func (n *Call) String() string {
	return n.Fn.String() + "(" + joinNodes(n.Args) + ")"
}

func (n *Function) String() string {
	return "DEF " + n.Name + "(" + strings.Join(n.Params, ", ") + ") {\n" + n.Body.String() + "\n}"
}

func (*Exit) String() string { return "EXIT" }

func (n *Return) String() string {
	if n.Value == nil {
		return "RETURN"
	}
	return "RETURN " + n.Value.String()
}

func (n *CreateList) String() string { return "[" + joinNodes(n.Elements) + "]" }

func (n *Assignment) String() string { return n.Name + " := " + n.Value.String() }

func (n *FieldAssignment) String() string { return n.Path + " := " + n.Value.String() }

func (d *EntityDefinition) String() string {
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		if f.Default == nil {
			parts[i] = f.Name
		} else {
			parts[i] = f.Name + " = " + f.Default.String()
		}
	}
	return "ENTITY " + d.Name + " {" + strings.Join(parts, ", ") + "}"
}

func (n *CreateEntity) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.Name + " := " + f.Value.String()
	}
	return "NEW " + n.Template.String() + " {" + strings.Join(parts, ", ") + "}"
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
