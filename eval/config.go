package eval

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gnolang/qeval/internal/quant"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the configuration file used when none is given.
const DefaultConfigPath = ".qeval.yaml"

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the evaluation configuration stored in .qeval.yaml.
type Config struct {
	Name          string `yaml:"name"`
	Start         int64  `yaml:"start"`
	End           int64  `yaml:"end"`
	Predicate     string `yaml:"predicate"`
	MaxDomainSize uint64 `yaml:"max_domain_size"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Name:          "qeval",
		Start:         1,
		End:           10,
		Predicate:     quant.PredicateEven,
		MaxDomainSize: quant.DefaultMaxDomainSize,
	}
}

// Validate checks that the configuration can be evaluated.
// An inverted range is valid: it evaluates over the empty domain.
func (c Config) Validate() error {
	if _, err := quant.LookupPredicate(c.Predicate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MaxDomainSize == 0 {
		return fmt.Errorf("%w: max_domain_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads the configuration file at path. Keys missing from the
// file keep their default values, and a missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// WriteConfig writes config to path, replacing any existing file.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
