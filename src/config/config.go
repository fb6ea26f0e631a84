package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/mosaicnetworks/webauth/src/common"
	"github.com/mosaicnetworks/webauth/src/txn"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing the server's
	// secret seed.
	DefaultKeyfile = "priv_key"

	// DefaultPubKeyfile is the default name of the file containing the
	// server's account address.
	DefaultPubKeyfile = "key.pub"

	// DefaultConfigName is the base name of the optional configuration file
	// in the data directory.
	DefaultConfigName = "webauth"
)

// Default configuration values.
const (
	DefaultLogLevel         = "debug"
	DefaultNetwork          = txn.TestNetworkPassphrase
	DefaultHomeDomain       = "localhost"
	DefaultWebAuthDomain    = "localhost"
	DefaultChallengeTimeout = 5 * time.Minute
)

// Config contains all the configuration properties of a web-auth server.
type Config struct {
	// DataDir is the top-level directory containing the configuration file
	// and the server's key.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// Network is the passphrase of the network that challenges are signed
	// for. Signatures made for one network do not verify on another.
	Network string `mapstructure:"network"`

	// HomeDomains are the domains the server issues challenges for. The first
	// one is used when building challenges, any of them is accepted when
	// reading.
	HomeDomains []string `mapstructure:"home-domains"`

	// WebAuthDomain is the domain of the authentication endpoint.
	WebAuthDomain string `mapstructure:"web-auth-domain"`

	// ChallengeTimeout is how long a challenge is valid for.
	ChallengeTimeout time.Duration `mapstructure:"timeout"`

	// ClientDomain is the domain of the client's wallet. It is used by
	// clients asking for a challenge on behalf of a wallet.
	ClientDomain string `mapstructure:"client-domain"`

	// ClientDomainKey is the account that signs on behalf of ClientDomain.
	ClientDomainKey string `mapstructure:"client-domain-key"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:          DefaultDataDir(),
		LogLevel:         DefaultLogLevel,
		Network:          DefaultNetwork,
		HomeDomains:      []string{DefaultHomeDomain},
		WebAuthDomain:    DefaultWebAuthDomain,
		ChallengeTimeout: DefaultChallengeTimeout,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetDataDir sets the top-level directory.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
}

// Keyfile returns the full path of the file containing the secret seed.
func (c *Config) Keyfile() string {
	return filepath.Join(c.DataDir, DefaultKeyfile)
}

// PubKeyfile returns the full path of the file containing the account
// address.
func (c *Config) PubKeyfile() string {
	return filepath.Join(c.DataDir, DefaultPubKeyfile)
}

// HomeDomain returns the domain used when building challenges.
func (c *Config) HomeDomain() string {
	if len(c.HomeDomains) == 0 {
		return ""
	}
	return c.HomeDomains[0]
}

// Validate checks that the options needed to issue and verify challenges are
// set.
func (c *Config) Validate() error {
	if c.Network == "" {
		return errors.New("no network passphrase")
	}
	if len(c.HomeDomains) == 0 {
		return errors.New("no home domain")
	}
	for _, d := range c.HomeDomains {
		if d == "" {
			return errors.New("empty home domain")
		}
	}
	if c.WebAuthDomain == "" {
		return errors.New("no web auth domain")
	}
	if c.ChallengeTimeout <= 0 {
		return errors.Errorf("challenge timeout must be positive, got %s", c.ChallengeTimeout)
	}
	if (c.ClientDomain == "") != (c.ClientDomainKey == "") {
		return errors.New("client domain and client domain key must be set together")
	}
	return nil
}

// Logger returns a formatted logrus Entry, with prefix set to "webauth".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "webauth")
}

// DefaultDataDir return the default directory name for top-level webauth
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".WebAuth")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "WebAuth")
		} else {
			return filepath.Join(home, ".webauth")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
