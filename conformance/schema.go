package conformance

import "gopkg.in/yaml.v3"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Setup       yaml.Node  `yaml:"setup,omitempty"` // statements run before every test
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string
	MaxDepth    int         `yaml:"max_depth,omitempty"`
	Statements  yaml.Node   `yaml:"statements"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Value    interface{} `yaml:"value,omitempty"`    // exact match
	Type     string      `yaml:"type,omitempty"`     // Number, String, Entity, ...
	Error    string      `yaml:"error,omitempty"`    // E_UNBOUND, E_ARGS, ...
	Contains string      `yaml:"contains,omitempty"` // substring of the error message
	Line     int         `yaml:"line,omitempty"`     // line the error was raised at
	Output   *[]string   `yaml:"output,omitempty"`   // textbox lines, in order
	Exited   bool        `yaml:"exited,omitempty"`
}

// IsEmpty reports whether the expectation checks nothing
func (e Expectation) IsEmpty() bool {
	return e.Value == nil && e.Type == "" && e.Error == "" && e.Output == nil && !e.Exited
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
