package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfind.json"

	// DefaultPagesDir is the default pages root.
	DefaultPagesDir = "pages"

	// DefaultInspectPort is the default route inspector port.
	DefaultInspectPort = 7410

	// DefaultInspectHost is the default route inspector host.
	DefaultInspectHost = "localhost"

	// DefaultManifestKey is the default object key for published
	// manifests.
	DefaultManifestKey = "wayfind/routes.json"
)

// Config represents the complete wayfind.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Pages contains pages-tree configuration.
	Pages PagesConfig `json:"pages,omitempty"`

	// Router contains matching configuration.
	Router RouterConfig `json:"router,omitempty"`

	// Inspect contains route inspector configuration.
	Inspect InspectConfig `json:"inspect,omitempty"`

	// Publish contains manifest publishing configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PagesConfig locates the pages tree.
type PagesConfig struct {
	// Dir is the pages root directory, relative to the project root.
	Dir string `json:"dir,omitempty"`
}

// RouterConfig controls matching behavior.
type RouterConfig struct {
	// CaseInsensitive folds ASCII case when comparing static segments.
	CaseInsensitive bool `json:"caseInsensitive,omitempty"`
}

// InspectConfig configures the route-table inspector server.
type InspectConfig struct {
	// Host is the inspector bind host.
	Host string `json:"host,omitempty"`

	// Port is the inspector bind port.
	Port int `json:"port,omitempty"`
}

// PublishConfig configures manifest publishing.
type PublishConfig struct {
	// Bucket is the destination S3 bucket.
	Bucket string `json:"bucket,omitempty"`

	// Region is the bucket's AWS region.
	Region string `json:"region,omitempty"`

	// Key is the object key the manifest is written under.
	Key string `json:"key,omitempty"`
}

// New creates a configuration with defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from dir/wayfind.json.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("CF001").
				WithDetail("No wayfind.json found in " + filepath.Dir(path)).
				WithSuggestion("Create wayfind.json at the project root, or pass --pages to skip configuration")
		}
		return nil, errors.New("CF002").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("CF002").
			WithDetail("Failed to parse wayfind.json: " + err.Error()).
			WithSuggestion("Check that wayfind.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("CF002").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("CF002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Pages.Dir == "" {
		c.Pages.Dir = DefaultPagesDir
	}
	if c.Inspect.Host == "" {
		c.Inspect.Host = DefaultInspectHost
	}
	if c.Inspect.Port == 0 {
		c.Inspect.Port = DefaultInspectPort
	}
	if c.Publish.Key == "" {
		c.Publish.Key = DefaultManifestKey
	}
}

// Validate checks settings for out-of-range values.
func (c *Config) Validate() error {
	if c.Inspect.Port < 0 || c.Inspect.Port > 65535 {
		return errors.New("CF003").
			WithDetail("Inspector port must be between 0 and 65535")
	}
	if filepath.IsAbs(c.Pages.Dir) {
		return errors.New("CF003").
			WithDetail("pages.dir must be relative to the project root")
	}
	return nil
}

// PagesPath returns the path to the pages root, anchored at the project
// directory when the config was loaded from disk.
func (c *Config) PagesPath() string {
	if c.Dir() == "" {
		return c.Pages.Dir
	}
	return filepath.Join(c.Dir(), c.Pages.Dir)
}

// InspectAddress returns the bind address for the inspector.
func (c *Config) InspectAddress() string {
	return c.Inspect.Host + ":" + itoa(c.Inspect.Port)
}

// HasPublish reports whether a publish destination is configured.
func (c *Config) HasPublish() bool {
	return c.Publish.Bucket != ""
}

// Exists checks whether dir contains a wayfind.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing wayfind.json, or an error if not
// found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("CF001").
				WithDetail("No wayfind.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory, walking upward to the project root.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// itoa converts int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
