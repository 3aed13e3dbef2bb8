package cmd

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/etnz/nec"
	"gopkg.in/yaml.v3"
)

// Config is the run file: which year to compute, where the reference data
// and the statements are, and where to write the results.
type Config struct {
	Year       int `yaml:"year"`
	References struct {
		Vanguard []Vanguard `yaml:"vanguard"`
		FlatRate []string   `yaml:"flatrate"`
		IShares  []string   `yaml:"ishares"`
	} `yaml:"references"`
	Dividends []Input       `yaml:"dividends"`
	Gains     []Input       `yaml:"gains"`
	Elections nec.Elections `yaml:"elections"`
	Output    struct {
		Dividends string `yaml:"dividends"`
		Gains     string `yaml:"gains"`
	} `yaml:"output"`
}

// Vanguard locates a Vanguard NRA layout and its dividend histories.
type Vanguard struct {
	Path    string `yaml:"path"`
	History string `yaml:"history"`
}

// Input is one statement to reduce.
type Input struct {
	Broker  string `yaml:"broker"`
	Path    string `yaml:"path"`
	Account string `yaml:"account"`
}

// account returns the inventory account of in, defaulting to its broker.
func (in Input) account() string {
	if in.Account != "" {
		return in.Account
	}
	if r, ok := gainReducers[in.Broker]; ok {
		return r.account
	}
	return in.Broker
}

// defaults fills what the run file may omit.
func (c *Config) defaults() {
	if c.Output.Dividends == "" {
		c.Output.Dividends = fmt.Sprintf("line1_%d.csv", c.Year)
	}
	if c.Output.Gains == "" {
		c.Output.Gains = fmt.Sprintf("line16_%d.csv", c.Year)
	}
	if c.Elections == nil {
		c.Elections = nec.Elections{}
	}
	for i, v := range c.References.Vanguard {
		if v.History == "" {
			c.References.Vanguard[i].History = "."
		}
	}
}

// Validate checks that the run file can be executed.
func (c *Config) Validate() error {
	var errs []error
	if c.Year < 1900 || c.Year > 2999 {
		errs = append(errs, fmt.Errorf("invalid year %d", c.Year))
	}
	for _, v := range c.References.Vanguard {
		if v.Path == "" {
			errs = append(errs, errors.New("references.vanguard: path cannot be empty"))
		}
	}
	for i, in := range c.Dividends {
		if _, ok := dividendReducers[in.Broker]; !ok {
			errs = append(errs, fmt.Errorf("dividends[%d]: unknown broker %q, must be one of %v", i, in.Broker, brokers(dividendReducers)))
		}
		if in.Path == "" {
			errs = append(errs, fmt.Errorf("dividends[%d]: path cannot be empty", i))
		}
	}
	for i, in := range c.Gains {
		if _, ok := gainReducers[in.Broker]; !ok {
			errs = append(errs, fmt.Errorf("gains[%d]: unknown broker %q, must be one of %v", i, in.Broker, brokers(gainReducers)))
		}
		if in.Path == "" {
			errs = append(errs, fmt.Errorf("gains[%d]: path cannot be empty", i))
		}
		if in.Broker == "transfer" && in.Account == "" {
			errs = append(errs, fmt.Errorf("gains[%d]: a transfer history needs the account it feeds", i))
		}
	}
	return errors.Join(errs...)
}

// ParseConfig decodes and validates a run file.
func ParseConfig(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("invalid run file: %w", err)
	}
	c.defaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfig reads the run file at path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func brokers[T any](m map[string]T) []string { return slices.Sorted(maps.Keys(m)) }
