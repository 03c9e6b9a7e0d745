package conformance

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// TestPath is the conformance suite directory, relative to this package
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite *TestSuite
	Test  TestCase
}

// LoadAllTests loads every suite under TestPath
func LoadAllTests() ([]LoadedTest, error) {
	return LoadDir(TestPath)
}

// LoadDir walks dir and loads every .yaml suite in it, ordered by path
func LoadDir(dir string) ([]LoadedTest, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("could not find conformance test directory: %w", err)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var loaded []LoadedTest
	for _, path := range files {
		tests, err := loadTestFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		// Relative path for cleaner test names
		relPath, _ := filepath.Rel(dir, path)
		for i := range tests {
			tests[i].File = filepath.ToSlash(relPath)
		}
		loaded = append(loaded, tests...)
	}
	return loaded, nil
}

// loadTestFile parses a single YAML file and returns all test cases
func loadTestFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	suite := &TestSuite{}
	if err := yaml.Unmarshal(data, suite); err != nil {
		return nil, err
	}

	tests := make([]LoadedTest, 0, len(suite.Tests))
	for _, test := range suite.Tests {
		tests = append(tests, LoadedTest{
			Suite: suite,
			Test:  test,
		})
	}
	return tests, nil
}
