// Package configmanager loads s3edit options from defaults, an optional YAML config file,
// S3EDIT_* environment variables and command-line flags, in increasing order of precedence.
package configmanager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/s3edit/pkg/apis/edit/v1alpha1"
	"github.com/devantler-tech/s3edit/pkg/utils/envvar"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of every environment variable read by s3edit.
	EnvPrefix = "S3EDIT"
	// LocalConfigFile is looked up in the working directory.
	LocalConfigFile = ".s3edit.yaml"
)

// ErrConfigFileNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigFileNotFound = errors.New("config file not found")

// FlagKeys maps command-line flag names to config keys. The editor is resolved separately
// so the flag, the config value and the shell environment can be told apart.
//
//nolint:gochecknoglobals // static lookup table
var FlagKeys = map[string]string{
	"s3-url":       "url",
	"region":       "region",
	"endpoint-url": "endpoint_url",
	"path-style":   "path_style",
	"profile":      "profile",
	"nested-keys":  "nested_keys",
	"gunzip":       "gunzip",
	"validate":     "validate",
	"diff-tool":    "diff_tool",
	"keep-temp":    "keep_temp",
	"log-level":    "log_level",
}

// ConfigManager reads one set of options. It is not safe for concurrent use.
type ConfigManager struct {
	Viper *viper.Viper
	// ConfigFile is an explicit config path; when empty SearchPaths are tried in order.
	ConfigFile string
	// SearchPaths are candidate config files, first existing one wins.
	SearchPaths []string
}

// InitializeViper returns a viper instance with the s3edit env prefix and defaults.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viperInstance.AutomaticEnv()
	viperInstance.SetConfigType("yaml")

	defaults := v1alpha1.NewOptions()
	viperInstance.SetDefault("url", "")
	viperInstance.SetDefault("editor", "")
	viperInstance.SetDefault("region", "")
	viperInstance.SetDefault("profile", "")
	viperInstance.SetDefault("endpoint_url", "")
	viperInstance.SetDefault("path_style", false)
	viperInstance.SetDefault("access_key_id", "")
	viperInstance.SetDefault("secret_access_key", "")
	viperInstance.SetDefault("nested_keys", false)
	viperInstance.SetDefault("gunzip", false)
	viperInstance.SetDefault("validate", defaults.ValidateContent)
	viperInstance.SetDefault("diff_tool", string(defaults.DiffTool))
	viperInstance.SetDefault("keep_temp", false)
	viperInstance.SetDefault("log_level", defaults.LogLevel)

	return viperInstance
}

// NewConfigManager creates a manager reading configFile, or the default search paths when empty.
func NewConfigManager(configFile string) *ConfigManager {
	return &ConfigManager{
		Viper:       InitializeViper(),
		ConfigFile:  configFile,
		SearchPaths: DefaultSearchPaths(),
	}
}

// DefaultSearchPaths returns ./.s3edit.yaml, $XDG_CONFIG_HOME/s3edit/config.yaml and
// $HOME/.s3edit.yaml, skipping entries whose base directory is unknown.
func DefaultSearchPaths() []string {
	paths := []string{LocalConfigFile}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "s3edit", "config.yaml"))
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, LocalConfigFile))
	}

	return paths
}

// BindFlags binds every known flag present in flags to its config key.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}

	return nil
}

// Load reads the config file, if any, and decodes the merged settings into options.
// ${NAME} placeholders in string values are expanded. The returned options are not validated.
func (m *ConfigManager) Load() (*v1alpha1.Options, error) {
	path, err := m.configPath()
	if err != nil {
		return nil, err
	}

	if path != "" {
		m.Viper.SetConfigFile(path)

		err = m.Viper.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	opts := v1alpha1.NewOptions()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           opts,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}

	err = decoder.Decode(m.Viper.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	envvar.ExpandAll(os.Getenv,
		&opts.Editor, &opts.Region, &opts.Profile, &opts.EndpointURL,
		&opts.AccessKeyID, &opts.SecretAccessKey,
	)

	return opts, nil
}

// ConfigFileUsed returns the path of the config file that was read, or "".
func (m *ConfigManager) ConfigFileUsed() string {
	return m.Viper.ConfigFileUsed()
}

func (m *ConfigManager) configPath() (string, error) {
	if m.ConfigFile != "" {
		_, err := os.Stat(m.ConfigFile)
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, m.ConfigFile)
		}

		if err != nil {
			return "", fmt.Errorf("stat config file: %w", err)
		}

		return m.ConfigFile, nil
	}

	for _, candidate := range m.SearchPaths {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", nil
}
