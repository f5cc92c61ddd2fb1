package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Collision strategies for an existing output file.
const (
	CollisionRename    = "rename"
	CollisionOverwrite = "overwrite"
	CollisionSkip      = "skip"
)

// Config represents the application configuration structure.
// It controls which files count as text, which directories are pruned,
// how the output is formatted, and where it goes.
type Config struct {
	Include struct {
		Extensions     []string `yaml:"extensions"`       // text extension allowlist
		SniffContent   bool     `yaml:"sniff_content"`    // classify unknown extensions by content
		GitTrackedOnly bool     `yaml:"git_tracked_only"` // only include git-tracked files
	} `yaml:"include"`
	Ignore struct {
		Directories []string `yaml:"directories"` // directory name globs pruned during walks
	} `yaml:"ignore"`
	Output struct {
		DefaultPath string `yaml:"default_path"` // preselected output file
		Collision   string `yaml:"collision"`    // rename, overwrite, or skip
		Clipboard   bool   `yaml:"clipboard"`    // copy to clipboard instead of writing a file
	} `yaml:"output"`
	Format struct {
		FileHeaders bool `yaml:"file_headers"` // "=== name ===" header before each file
		FileTree    bool `yaml:"file_tree"`    // rendered tree of included files as a preamble
	} `yaml:"format"`
	Run struct {
		SkipUnreadable bool `yaml:"skip_unreadable"` // skip files that fail to read instead of aborting
	} `yaml:"run"`
	Log struct {
		Level string `yaml:"level"` // debug, info, warn, error
	} `yaml:"log"`
}

// LoadConfig loads configuration from the default location
// (~/.config/concatd/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "concatd", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal over the defaulted struct so keys the file omits keep
	// their defaults, booleans included.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration. The extension list and
// ignored directories match what most code trees need out of the box.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Include.Extensions = []string{
		".txt", ".md", ".py", ".js", ".java", ".cpp", ".c", ".cs", ".html", ".css",
		".json", ".xml", ".rb", ".go", ".ts", ".swift", ".php", ".sh", ".bat", ".pl",
		".yaml", ".yml",
	}
	cfg.Include.SniffContent = true
	cfg.Include.GitTrackedOnly = false

	cfg.Ignore.Directories = []string{
		"node_modules", "venv", ".git", "__pycache__", "dist", "build", "env",
		".idea", ".vscode",
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg.Output.DefaultPath = filepath.Join(home, "concatenated_output.txt")
	cfg.Output.Collision = CollisionRename
	cfg.Output.Clipboard = false

	cfg.Format.FileHeaders = true
	cfg.Format.FileTree = true
	cfg.Run.SkipUnreadable = false
	cfg.Log.Level = "info"

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the configuration back to the default location.
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return SaveConfig(c, filepath.Join(home, ".config", "concatd", "config.yaml"))
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	validCollisions := map[string]bool{
		CollisionRename:    true,
		CollisionOverwrite: true,
		CollisionSkip:      true,
	}
	if !validCollisions[c.Output.Collision] {
		return fmt.Errorf("invalid collision setting: %s", c.Output.Collision)
	}

	if len(c.Include.Extensions) == 0 {
		return fmt.Errorf("at least one include extension is required")
	}
	for i, ext := range c.Include.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %d (%q) must start with a dot", i, ext)
		}
	}

	for i, dir := range c.Ignore.Directories {
		if dir == "" {
			return fmt.Errorf("ignore directory %d: pattern cannot be empty", i)
		}
	}

	return nil
}

// ExtensionSet returns the allowlist as a lowercase set for fast lookup.
func (c *Config) ExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.Include.Extensions))
	for _, ext := range c.Include.Extensions {
		set[strings.ToLower(ext)] = true
	}
	return set
}

// AddExtension appends a custom extension to the allowlist. It rejects
// values without a leading dot and duplicates.
func (c *Config) AddExtension(ext string) error {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("file extension should start with a dot (e.g., .ini)")
	}
	for _, existing := range c.Include.Extensions {
		if strings.EqualFold(existing, ext) {
			return fmt.Errorf("the extension %s is already in the list", ext)
		}
	}
	c.Include.Extensions = append(c.Include.Extensions, ext)
	return nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Include.SniffContent = false
	cfg.Format.FileHeaders = false
	cfg.Format.FileTree = false
	cfg.Output.Collision = CollisionOverwrite
	cfg.Log.Level = "error"
	return cfg
}
