// Package program reads Wright programs written as YAML and performs the
// binding pass that prepares an environment for them.
//
// A program is a document
//
//	name: objection
//	statements:
//	  - {goto: main}
//	  - {label: pre}
//	  - {call: textbox, args: ["A"]}
//	  - {resume: true}
//	  - {label: main, line: 10}
//
// Plain scalars are literals: integers are Numbers, true/false Booleans and
// everything else Strings. Names are written {ident: name}. A statement may
// carry an explicit line; it defaults to its 1-based position.
package program

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wright/ast"
)

// Program is a decoded top-level sequence
type Program struct {
	Name string
	Main *ast.Sequence
}

// Load reads and decodes a program file
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode parses a YAML program document
func Decode(data []byte) (*Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty program")
	}
	return DecodeNode(doc.Content[0])
}

// DecodeNode decodes a program from an already parsed mapping node, for
// programs embedded in larger documents
func DecodeNode(n *yaml.Node) (*Program, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorf(n, "program must be a mapping")
	}
	fields, err := mappingFields(n)
	if err != nil {
		return nil, err
	}

	p := &Program{}
	if name, ok := fields["name"]; ok {
		if err := name.Decode(&p.Name); err != nil {
			return nil, errorf(name, "name: %v", err)
		}
	}
	stmts, ok := fields["statements"]
	if !ok {
		return nil, errorf(n, "program has no statements")
	}
	if p.Main, err = decodeSequence(stmts); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeStatements decodes a bare statement list node into a sequence
func DecodeStatements(n *yaml.Node) (*ast.Sequence, error) {
	return decodeSequence(n)
}

// errorf reports a decode problem at the YAML line of n
func errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("yaml line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

// mappingFields indexes a mapping node by key, rejecting duplicates
func mappingFields(n *yaml.Node) (map[string]*yaml.Node, error) {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, errorf(key, "mapping keys must be scalars")
		}
		if _, dup := fields[key.Value]; dup {
			return nil, errorf(key, "duplicate key %q", key.Value)
		}
		fields[key.Value] = n.Content[i+1]
	}
	return fields, nil
}
