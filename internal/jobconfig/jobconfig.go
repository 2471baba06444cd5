// Package jobconfig loads the job-level configuration a CLI invocation
// merges with its own flags before handing settings.JobAttributes off to
// the core: a `.asciidorkrc.yaml` searched for upward from the working
// directory, the way the teacher's internal/config locates spectr.yaml.
package jobconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/connerohnesorge/asciidork/internal/asciidoc"
	"github.com/connerohnesorge/asciidork/internal/asciidocerrs"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the asciidork job configuration file.
const ConfigFileName = ".asciidorkrc.yaml"

// Config holds job-level AsciiDoc parse settings, loaded once per CLI
// invocation and overridable by command-line flags.
type Config struct {
	// Attributes seeds Settings.JobAttributes (document attributes set
	// at the job/CLI level, highest precedence per the attribute layer).
	Attributes map[string]string `yaml:"attributes"`
	// Doctype names the default doctype ("article", "book", "manpage",
	// "inline") when a command doesn't override it with --doctype.
	Doctype string `yaml:"doctype"`
	// SafeMode names the default include safe-mode ("unsafe", "safe",
	// "server", "secure").
	SafeMode string `yaml:"safe_mode"`
	// Theme names the terminal color theme for diagnostics/inspect.
	Theme string `yaml:"theme"`
	// ProjectRoot is the directory the config file was found in (or the
	// starting directory, if none was found); not read from YAML.
	ProjectRoot string `yaml:"-"`
}

// Load searches for ConfigFileName starting from the current working
// directory, walking up the directory tree.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return LoadFromPath(cwd)
}

// LoadFromPath searches for ConfigFileName starting from startPath,
// walking up the directory tree. If not found, returns default
// configuration with startPath as ProjectRoot.
func LoadFromPath(startPath string) (*Config, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %q: %w", startPath, err)
	}

	currentPath := absPath
	for {
		configPath := filepath.Join(currentPath, ConfigFileName)
		if _, statErr := os.Stat(configPath); statErr == nil {
			cfg, parseErr := parseConfigFile(configPath)
			if parseErr != nil {
				return nil, parseErr
			}
			cfg.ProjectRoot = currentPath

			if validateErr := cfg.validate(); validateErr != nil {
				return nil, &asciidocerrs.ConfigError{Path: configPath, Err: validateErr}
			}

			return cfg, nil
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}

	return &Config{
		Doctype:     "article",
		SafeMode:    "safe",
		Theme:       "default",
		ProjectRoot: absPath,
	}, nil
}

func parseConfigFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &asciidocerrs.ConfigError{Path: configPath, Err: fmt.Errorf("read: %w", err)}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var yamlErr *yaml.TypeError
		if errors.As(err, &yamlErr) {
			return nil, &asciidocerrs.ConfigError{Path: configPath, Err: fmt.Errorf("invalid yaml: %v", yamlErr.Errors)}
		}

		return nil, &asciidocerrs.ConfigError{Path: configPath, Err: fmt.Errorf("parse yaml: %w", err)}
	}

	if cfg.Doctype == "" {
		cfg.Doctype = "article"
	}
	if cfg.SafeMode == "" {
		cfg.SafeMode = "safe"
	}
	if cfg.Theme == "" {
		cfg.Theme = "default"
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, ok := asciidoc.ParseDoctype(c.Doctype); !ok {
		return fmt.Errorf("unknown doctype %q", c.Doctype)
	}
	if _, ok := parseSafeMode(c.SafeMode); !ok {
		return fmt.Errorf("unknown safe_mode %q", c.SafeMode)
	}

	return nil
}

// ResolvedDoctype resolves the configured doctype, defaulting to article for an
// unrecognised value (validate already rejected those at Load time).
func (c *Config) ResolvedDoctype() asciidoc.Doctype {
	dt, _ := asciidoc.ParseDoctype(c.Doctype)

	return dt
}

// ResolvedSafeMode resolves the configured safe mode.
func (c *Config) ResolvedSafeMode() asciidoc.SafeMode {
	sm, _ := parseSafeMode(c.SafeMode)

	return sm
}

func parseSafeMode(s string) (asciidoc.SafeMode, bool) {
	return asciidoc.ParseSafeMode(s)
}
