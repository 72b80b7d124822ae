package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the watcher configuration, loaded from an optional TOML
// file and overlaid with environment variables. The environment always wins.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Graph       GraphConfig       `toml:"graph"`
	Poll        PollConfig        `toml:"poll"`
}

// CredentialsConfig contains the app registration used for the
// client-credential exchange.
type CredentialsConfig struct {
	TenantID     string `toml:"tenant_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
}

// GraphConfig contains the Graph API target.
type GraphConfig struct {
	MeetingID string `toml:"meeting_id"`
	BaseURL   string `toml:"base_url"`
}

// PollConfig contains poll loop settings.
type PollConfig struct {
	IntervalMS int  `toml:"interval_ms"`
	Verbose    bool `toml:"verbose"`
}

const (
	defaultBaseURL    = "https://graph.microsoft.com/beta"
	defaultIntervalMS = 2000
)

// LoadConfig reads an optional TOML configuration file, applies environment
// variable overrides, and fills defaults. A missing file is not an error; a
// present but unparsable file is.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
			}
		case os.IsNotExist(err):
			// No config file; environment must carry the required values.
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config.applyEnv()
	config.applyDefaults()
	return config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Credentials.TenantID, "TENANT_ID")
	setString(&c.Credentials.ClientID, "CLIENT_ID")
	setString(&c.Credentials.ClientSecret, "CLIENT_SECRET")
	setString(&c.Credentials.TokenURL, "TOKEN_URL")
	setString(&c.Graph.MeetingID, "MEETING_ID")
	setString(&c.Graph.BaseURL, "GRAPH_BASE_URL")

	if v, ok := os.LookupEnv("POLL_INTERVAL_MS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Poll.IntervalMS = n
		}
	}
	if v, ok := os.LookupEnv("VERBOSE"); ok {
		c.Poll.Verbose = parseBool(v)
	}
}

func (c *Config) applyDefaults() {
	if c.Graph.BaseURL == "" {
		c.Graph.BaseURL = defaultBaseURL
	}
	if c.Poll.IntervalMS <= 0 {
		c.Poll.IntervalMS = defaultIntervalMS
	}
	if c.Credentials.TokenURL == "" && c.Credentials.TenantID != "" {
		c.Credentials.TokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", c.Credentials.TenantID)
	}
}

// Validate checks that every required value is present. The returned error
// wraps [ErrMissingConfig] and names each absent key.
func (c *Config) Validate() error {
	var missing []string
	if c.Credentials.TenantID == "" {
		missing = append(missing, "TENANT_ID")
	}
	if c.Credentials.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if c.Credentials.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}
	if c.Graph.MeetingID == "" {
		missing = append(missing, "MEETING_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
