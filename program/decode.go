package program

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"wright/ast"
)

// forms maps the key that selects a node form to its decoder, together
// with the other keys the form allows
var forms map[string]form

type form struct {
	extra  []string
	decode func(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error)
}

func init() {
	forms = map[string]form{
		"ident":    {nil, decodeIdent},
		"label":    {nil, decodeLabel},
		"goto":     {nil, decodeGoto},
		"resume":   {nil, func(*yaml.Node, map[string]*yaml.Node) (ast.Node, error) { return ast.NewResume(), nil }},
		"exit":     {nil, func(*yaml.Node, map[string]*yaml.Node) (ast.Node, error) { return ast.NewExit(), nil }},
		"return":   {nil, decodeReturn},
		"list":     {nil, decodeList},
		"call":     {[]string{"args"}, decodeCall},
		"if":       {[]string{"then", "else"}, decodeIf},
		"seq":      {nil, decodeSeq},
		"def":      {[]string{"params", "body"}, decodeDef},
		"set":      {[]string{"value"}, decodeSet},
		"setfield": {[]string{"value"}, decodeSetField},
		"entity":   {[]string{"fields"}, decodeEntity},
		"new":      {[]string{"fields"}, decodeNew},
	}
}

// decodeSequence decodes a list of statements. Duplicate lines are rejected
// here; ast.Sequence itself still lets a later duplicate win the line index.
func decodeSequence(n *yaml.Node) (*ast.Sequence, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "statements must be a list")
	}
	seq := ast.NewSequence()
	lines := make(map[int]bool, len(n.Content))
	for i, item := range n.Content {
		line := i + 1
		if item.Kind == yaml.MappingNode {
			explicit, ok, err := statementLine(item)
			if err != nil {
				return nil, err
			}
			if ok {
				line = explicit
			}
		}
		if lines[line] {
			return nil, errorf(item, "duplicate statement line %d", line)
		}
		lines[line] = true
		node, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		seq.Add(node, line)
	}
	return seq, nil
}

// statementLine reads the optional line key of a statement
func statementLine(n *yaml.Node) (int, bool, error) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "line" {
			continue
		}
		v := n.Content[i+1]
		line, err := strconv.Atoi(v.Value)
		if err != nil || v.ShortTag() != "!!int" || line < 1 {
			return 0, false, errorf(v, "line must be a positive integer, got %q", v.Value)
		}
		return line, true, nil
	}
	return 0, false, nil
}

// decodeNode decodes a single expression or statement
func decodeNode(n *yaml.Node) (ast.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.SequenceNode:
		return nil, errorf(n, "bare lists are not nodes; write {list: [...]}")
	default:
		return nil, errorf(n, "unexpected YAML node")
	}
}

func decodeScalar(n *yaml.Node) (ast.Node, error) {
	switch n.ShortTag() {
	case "!!int":
		v, err := strconv.ParseUint(n.Value, 0, 64)
		if err != nil {
			return nil, errorf(n, "%s is not a valid number (numbers are never negative)", n.Value)
		}
		return ast.NewNumber(v), nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, errorf(n, "%v", err)
		}
		return ast.NewBoolean(v), nil
	case "!!str":
		return ast.NewString(n.Value), nil
	case "!!null":
		return nil, errorf(n, "null is not a value")
	default:
		return nil, errorf(n, "unsupported scalar %s", n.Value)
	}
}

func decodeMapping(n *yaml.Node) (ast.Node, error) {
	fields, err := mappingFields(n)
	if err != nil {
		return nil, err
	}
	delete(fields, "line")

	var selected []string
	for key := range fields {
		if _, ok := forms[key]; ok {
			selected = append(selected, key)
		}
	}
	if len(selected) != 1 {
		sort.Strings(selected)
		return nil, errorf(n, "expected exactly one node form, got [%s]", strings.Join(selected, ", "))
	}

	key := selected[0]
	f := forms[key]
	for name := range fields {
		if name != key && !contains(f.extra, name) {
			return nil, errorf(fields[name], "unexpected key %q in %s", name, key)
		}
	}
	return f.decode(fields[key], fields)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// name decodes a scalar that must be a non-empty name
func name(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" || n.Value == "" {
		return "", errorf(n, "expected a name")
	}
	return n.Value, nil
}

// nameOrNode decodes a callee or template: a plain string names an
// identifier, anything else is a node
func nameOrNode(n *yaml.Node) (ast.Node, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		return ast.NewIdentifier(n.Value), nil
	}
	return decodeNode(n)
}

func nodeList(n *yaml.Node) ([]ast.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a list")
	}
	nodes := make([]ast.Node, 0, len(n.Content))
	for _, item := range n.Content {
		node, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func required(key *yaml.Node, fields map[string]*yaml.Node, field string) (*yaml.Node, error) {
	n, ok := fields[field]
	if !ok {
		return nil, errorf(key, "missing %q", field)
	}
	return n, nil
}

func decodeIdent(key *yaml.Node, _ map[string]*yaml.Node) (ast.Node, error) {
	id, err := name(key)
	if err != nil {
		return nil, err
	}
	return ast.NewIdentifier(id), nil
}

func decodeLabel(key *yaml.Node, _ map[string]*yaml.Node) (ast.Node, error) {
	label, err := name(key)
	if err != nil {
		return nil, err
	}
	return ast.NewLabel(label), nil
}

func decodeGoto(key *yaml.Node, _ map[string]*yaml.Node) (ast.Node, error) {
	target, err := name(key)
	if err != nil {
		return nil, err
	}
	return ast.NewGoto(target), nil
}

func decodeReturn(key *yaml.Node, _ map[string]*yaml.Node) (ast.Node, error) {
	if key.ShortTag() == "!!null" {
		return ast.NewReturn(nil), nil
	}
	value, err := decodeNode(key)
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(value), nil
}

func decodeList(key *yaml.Node, _ map[string]*yaml.Node) (ast.Node, error) {
	elements, err := nodeList(key)
	if err != nil {
		return nil, err
	}
	return ast.NewList(elements...), nil
}

func decodeCall(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error) {
	fn, err := nameOrNode(key)
	if err != nil {
		return nil, err
	}
	var args []ast.Node
	if a, ok := fields["args"]; ok {
		if args, err = nodeList(a); err != nil {
			return nil, err
		}
	}
	return ast.NewCall(fn, args...), nil
}

func decodeIf(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error) {
	test, err := decodeNode(key)
	if err != nil {
		return nil, err
	}
	thenNode, err := required(key, fields, "then")
	if err != nil {
		return nil, err
	}
	then, err := decodeNode(thenNode)
	if err != nil {
		return nil, err
	}
	var els ast.Node
	if e, ok := fields["else"]; ok {
		if els, err = decodeNode(e); err != nil {
			return nil, err
		}
	}
	return ast.NewIf(test, then, els), nil
}

func decodeSeq(key *yaml.Node, _ map[string]*yaml.Node) (ast.Node, error) {
	return decodeSequence(key)
}

func decodeDef(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error) {
	fn, err := name(key)
	if err != nil {
		return nil, err
	}

	var params []string
	if p, ok := fields["params"]; ok {
		if p.Kind != yaml.SequenceNode {
			return nil, errorf(p, "params must be a list of names")
		}
		seen := make(map[string]bool, len(p.Content))
		for _, item := range p.Content {
			param, err := name(item)
			if err != nil {
				return nil, err
			}
			if seen[param] {
				return nil, errorf(item, "duplicate parameter %q", param)
			}
			seen[param] = true
			params = append(params, param)
		}
	}

	bodyNode, err := required(key, fields, "body")
	if err != nil {
		return nil, err
	}
	body, err := decodeSequence(bodyNode)
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(fn, params, body), nil
}

func decodeSet(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error) {
	target, err := name(key)
	if err != nil {
		return nil, err
	}
	if strings.Contains(target, ".") {
		return nil, errorf(key, "use setfield to assign %q", target)
	}
	valueNode, err := required(key, fields, "value")
	if err != nil {
		return nil, err
	}
	value, err := decodeNode(valueNode)
	if err != nil {
		return nil, err
	}
	return ast.NewAssignment(target, value), nil
}

func decodeSetField(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error) {
	path, err := name(key)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(path, ".") {
		return nil, errorf(key, "%q is not a field path", path)
	}
	valueNode, err := required(key, fields, "value")
	if err != nil {
		return nil, err
	}
	value, err := decodeNode(valueNode)
	if err != nil {
		return nil, err
	}
	return ast.NewFieldAssignment(path, value), nil
}

func decodeEntity(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error) {
	template, err := name(key)
	if err != nil {
		return nil, err
	}

	var decls []ast.FieldDecl
	if f, ok := fields["fields"]; ok {
		if f.Kind != yaml.SequenceNode {
			return nil, errorf(f, "fields must be a list")
		}
		seen := make(map[string]bool, len(f.Content))
		for _, item := range f.Content {
			decl, err := decodeFieldDecl(item)
			if err != nil {
				return nil, err
			}
			if seen[decl.Name] {
				return nil, errorf(item, "duplicate field %q", decl.Name)
			}
			seen[decl.Name] = true
			decls = append(decls, decl)
		}
	}
	return ast.NewEntityDefinition(template, decls...), nil
}

// decodeFieldDecl reads {name: n, default: node} or a bare field name
func decodeFieldDecl(n *yaml.Node) (ast.FieldDecl, error) {
	if n.Kind == yaml.ScalarNode {
		field, err := name(n)
		return ast.FieldDecl{Name: field}, err
	}
	if n.Kind != yaml.MappingNode {
		return ast.FieldDecl{}, errorf(n, "expected a field declaration")
	}
	fields, err := mappingFields(n)
	if err != nil {
		return ast.FieldDecl{}, err
	}
	nameNode, err := required(n, fields, "name")
	if err != nil {
		return ast.FieldDecl{}, err
	}
	decl := ast.FieldDecl{}
	if decl.Name, err = name(nameNode); err != nil {
		return ast.FieldDecl{}, err
	}
	if d, ok := fields["default"]; ok {
		if decl.Default, err = decodeNode(d); err != nil {
			return ast.FieldDecl{}, err
		}
	}
	return decl, nil
}

func decodeNew(key *yaml.Node, fields map[string]*yaml.Node) (ast.Node, error) {
	template, err := nameOrNode(key)
	if err != nil {
		return nil, err
	}

	var inits []ast.FieldInit
	if f, ok := fields["fields"]; ok {
		if f.Kind != yaml.MappingNode {
			return nil, errorf(f, "fields must be a mapping of field to value")
		}
		assigned, err := mappingFields(f)
		if err != nil {
			return nil, err
		}
		// Source order
		for i := 0; i+1 < len(f.Content); i += 2 {
			field := f.Content[i].Value
			value, err := decodeNode(assigned[field])
			if err != nil {
				return nil, err
			}
			inits = append(inits, ast.FieldInit{Name: field, Value: value})
		}
	}
	return ast.NewCreateEntity(template, inits...), nil
}
