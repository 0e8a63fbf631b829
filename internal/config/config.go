// Package config loads LuxOS settings. Sources, lowest priority first:
// built-in defaults, the user config directory .env, the working directory
// .env, the luxos.yaml config file, LUXOS_* environment variables and
// finally command-line flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"luxos/internal/apps"
	"luxos/internal/loader"
	"luxos/internal/screen"
)

// EnvPrefix prefixes every environment variable LuxOS reads.
const EnvPrefix = "LUXOS"

// Configuration keys.
const (
	KeyScreenLines       = "screen.lines"
	KeyInstallDelay      = "install.delay"
	KeyDriveDir          = "drive.dir"
	KeyAllowedExtensions = "module.allowed_extensions"
	KeyMaxSteps          = "module.max_steps"
	KeySSHAddr           = "ssh.addr"
	KeySSHHostKey        = "ssh.host_key"
	KeyLogLevel          = "log.level"
	KeyLogFile           = "log.file"
	KeyTestMode          = "test_mode"
)

// Keys lists every configuration key.
var Keys = []string{
	KeyScreenLines, KeyInstallDelay, KeyDriveDir, KeyAllowedExtensions, KeyMaxSteps,
	KeySSHAddr, KeySSHHostKey, KeyLogLevel, KeyLogFile, KeyTestMode,
}

// Config is the resolved configuration.
type Config struct {
	ScreenLines       int
	InstallDelay      time.Duration
	DriveDir          string
	AllowedExtensions []string
	MaxSteps          uint64
	SSHAddr           string
	SSHHostKey        string
	LogLevel          string
	LogFile           string
	TestMode          bool
}

// Paths locates configuration files. Empty fields select defaults.
type Paths struct {
	// ConfigFile is an explicit config file; it must exist.
	ConfigFile string
	// WorkDir holds the local luxos.yaml and .env. Defaults to ".".
	WorkDir string
	// ConfigDir holds the user luxos.yaml and .env. Defaults to
	// $HOME/.config/luxos.
	ConfigDir string
}

// EnvName returns the environment variable for key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyScreenLines, screen.DefaultLines)
	v.SetDefault(KeyInstallDelay, apps.DefaultDelay.String())
	v.SetDefault(KeyDriveDir, "")
	v.SetDefault(KeyAllowedExtensions, loader.DefaultAllowedExtensions)
	v.SetDefault(KeyMaxSteps, loader.DefaultMaxSteps)
	v.SetDefault(KeySSHAddr, "localhost:2323")
	v.SetDefault(KeySSHHostKey, ".ssh/luxos_ed25519")
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads every file source into v and resolves the result.
func Load(v *viper.Viper, paths Paths) (*Config, error) {
	if paths.WorkDir == "" {
		paths.WorkDir = "."
	}
	if paths.ConfigDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			paths.ConfigDir = filepath.Join(home, ".config", "luxos")
		}
	}

	for _, dir := range []string{paths.ConfigDir, paths.WorkDir} {
		if dir == "" {
			continue
		}
		if err := loadDotEnv(v, filepath.Join(dir, ".env")); err != nil {
			return nil, err
		}
	}

	if err := readConfigFile(v, paths); err != nil {
		return nil, err
	}
	return FromViper(v)
}

func readConfigFile(v *viper.Viper, paths Paths) error {
	if paths.ConfigFile != "" {
		v.SetConfigFile(paths.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", paths.ConfigFile, err)
		}
		return nil
	}

	v.SetConfigName("luxos")
	v.SetConfigType("yaml")
	v.AddConfigPath(paths.WorkDir)
	if paths.ConfigDir != "" {
		v.AddConfigPath(paths.ConfigDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// loadDotEnv applies LUXOS_* entries of a .env file above the built-in
// defaults. A missing file is not an error.
func loadDotEnv(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	for _, key := range Keys {
		if value, ok := envMap[EnvName(key)]; ok {
			v.SetDefault(key, value)
		}
	}
	return nil
}

// FromViper resolves and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ScreenLines:       v.GetInt(KeyScreenLines),
		InstallDelay:      v.GetDuration(KeyInstallDelay),
		DriveDir:          v.GetString(KeyDriveDir),
		AllowedExtensions: splitList(v.GetStringSlice(KeyAllowedExtensions)),
		MaxSteps:          v.GetUint64(KeyMaxSteps),
		SSHAddr:           v.GetString(KeySSHAddr),
		SSHHostKey:        v.GetString(KeySSHHostKey),
		LogLevel:          v.GetString(KeyLogLevel),
		LogFile:           v.GetString(KeyLogFile),
		TestMode:          v.GetBool(KeyTestMode),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.ScreenLines <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyScreenLines, c.ScreenLines)
	}
	if c.InstallDelay <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyInstallDelay, c.InstallDelay)
	}
	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("%s must not be empty", KeyAllowedExtensions)
	}
	for _, ext := range c.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%s: extension %q must start with a dot", KeyAllowedExtensions, ext)
		}
	}
	return nil
}

// splitList also accepts comma separated entries, as written in the
// environment.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
