// Package config loads flatroutes.yaml and FLATROUTES_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/flatroutes/pkg/generator"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched in the working directory.
const FileName = "flatroutes.yaml"

// EnvPrefix prefixes environment overrides, e.g. FLATROUTES_APP_DIR.
const EnvPrefix = "FLATROUTES"

// Config is the resolved project configuration.
type Config struct {
	AppDir     string      `mapstructure:"app_dir" json:"app_dir" yaml:"app_dir"`
	Convention string      `mapstructure:"convention" json:"convention" yaml:"convention"`
	Prefix     string      `mapstructure:"prefix" json:"prefix" yaml:"prefix,omitempty"`
	Suffix     string      `mapstructure:"suffix" json:"suffix" yaml:"suffix,omitempty"`
	IndexNames []string    `mapstructure:"index_names" json:"index_names" yaml:"index_names,omitempty"`
	Extensions []string    `mapstructure:"extensions" json:"extensions" yaml:"extensions,omitempty"`
	Patterns   []string    `mapstructure:"patterns" json:"patterns" yaml:"patterns,omitempty"`
	Output     string      `mapstructure:"output" json:"output" yaml:"output"`
	Format     string      `mapstructure:"format" json:"format" yaml:"format"`
	Package    string      `mapstructure:"package" json:"package" yaml:"package"`
	Serve      ServeConfig `mapstructure:"serve" json:"serve" yaml:"serve"`

	// File is the config file that was read, empty when defaults apply.
	File string `mapstructure:"-" json:"file,omitempty" yaml:"-"`
}

// ServeConfig configures the inspection server.
type ServeConfig struct {
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		AppDir:     "app",
		Convention: string(scanner.ConventionFlat),
		Output:     filepath.Join(".flatroutes", "manifest.json"),
		Format:     string(generator.FormatJSON),
		Package:    "routes",
		Serve:      ServeConfig{Addr: ":4321"},
	}
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("app_dir", d.AppDir)
	v.SetDefault("convention", d.Convention)
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("suffix", d.Suffix)
	v.SetDefault("index_names", []string{})
	v.SetDefault("extensions", []string{})
	v.SetDefault("patterns", []string{})
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("package", d.Package)
	v.SetDefault("serve.addr", d.Serve.Addr)
	return v
}

// Load reads the config file at path, or flatroutes.yaml in the working
// directory when path is empty. A missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadWith(New(), path)
}

// LoadWith is Load using a caller-prepared viper instance, so command
// flags bound to v take precedence over the file.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown conventions and formats.
func (c *Config) Validate() error {
	if c.AppDir == "" {
		return fmt.Errorf("app_dir must not be empty")
	}
	if !scanner.Convention(c.Convention).IsValid() {
		return fmt.Errorf("unknown convention %q (use flat or extensions)", c.Convention)
	}
	if _, err := generator.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// ScannerOptions converts the config into scanner options.
func (c *Config) ScannerOptions() scanner.Options {
	return scanner.Options{
		Convention: scanner.Convention(c.Convention),
		Patterns:   c.Patterns,
		Extensions: c.Extensions,
		Prefix:     c.Prefix,
		Suffix:     c.Suffix,
		IndexNames: c.IndexNames,
	}
}

// GeneratorConfig converts the config into generator settings.
func (c *Config) GeneratorConfig() (generator.Config, error) {
	format, err := generator.ParseFormat(c.Format)
	if err != nil {
		return generator.Config{}, err
	}
	return generator.Config{
		Format:  format,
		Package: c.Package,
		Source:  filepath.ToSlash(c.AppDir),
	}, nil
}

// Write saves cfg as YAML to path.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
