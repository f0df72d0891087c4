package runner

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllTestCases is the selection token that runs the whole catalog.
const AllTestCases = "allTestCases"

// Catalog is an ordered set of test cases keyed by name. Registration order
// is the execution order.
type Catalog struct {
	cases []TestCase
	index map[string]int
}

// NewCatalog creates a catalog holding cases in the given order.
func NewCatalog(cases ...TestCase) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(cases))}
	for _, tc := range cases {
		if err := c.Register(tc); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register appends tc to the catalog.
func (c *Catalog) Register(tc TestCase) error {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if err := validateCase(tc); err != nil {
		return err
	}
	if _, exists := c.index[tc.Name]; exists {
		return fmt.Errorf("test case %q is already registered", tc.Name)
	}
	c.index[tc.Name] = len(c.cases)
	c.cases = append(c.cases, tc)
	return nil
}

func validateCase(tc TestCase) error {
	if strings.TrimSpace(tc.Name) == "" {
		return fmt.Errorf("test case name must not be empty")
	}
	if tc.Name == AllTestCases {
		return fmt.Errorf("test case name %q is reserved", AllTestCases)
	}
	if strings.TrimSpace(tc.Fixture) == "" {
		return fmt.Errorf("test case %q has no fixture", tc.Name)
	}
	if tc.Weight <= 0 {
		return fmt.Errorf("test case %q must have a positive weight, got %d", tc.Name, tc.Weight)
	}
	return nil
}

// Len returns the number of registered cases.
func (c *Catalog) Len() int {
	return len(c.cases)
}

// Cases returns a copy of all cases in registration order.
func (c *Catalog) Cases() []TestCase {
	out := make([]TestCase, len(c.cases))
	copy(out, c.cases)
	return out
}

// Names returns the case names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.cases))
	for _, tc := range c.cases {
		names = append(names, tc.Name)
	}
	return names
}

// Lookup returns the case registered under name.
func (c *Catalog) Lookup(name string) (TestCase, bool) {
	i, ok := c.index[name]
	if !ok {
		return TestCase{}, false
	}
	return c.cases[i], true
}

// MaxScore returns the sum of all registered weights.
func (c *Catalog) MaxScore() int {
	total := 0
	for _, tc := range c.cases {
		total += tc.Weight
	}
	return total
}

// Resolve maps a selection token onto the cases to run. It returns an error
// wrapping ErrUnknownCase when the token is neither AllTestCases nor a
// registered name.
func (c *Catalog) Resolve(selection string) ([]TestCase, error) {
	if selection == AllTestCases {
		return c.Cases(), nil
	}
	if tc, ok := c.Lookup(selection); ok {
		return []TestCase{tc}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCase, selection)
}

// DefaultCatalog returns the built-in regression suite: eight queue
// operation cases followed by the server and client cases, ten points each.
func DefaultCatalog() *Catalog {
	names := make([]string, 0, 10)
	for i := 1; i <= 8; i++ {
		names = append(names, fmt.Sprintf("testcase-%02d-q-ops", i))
	}
	names = append(names, "testcase-09-server", "testcase-10-client")

	c := &Catalog{index: make(map[string]int, len(names))}
	for _, name := range names {
		c.index[name] = len(c.cases)
		c.cases = append(c.cases, TestCase{Name: name, Fixture: name + ".cmd", Weight: 10})
	}
	return c
}

// catalogFile is the on-disk YAML layout of a catalog.
type catalogFile struct {
	Cases []TestCase `yaml:"cases"`
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("catalog contains no cases")
	}
	return NewCatalog(file.Cases...)
}
