package commands

import (
	"github.com/mosaicnetworks/webauth/src/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//CLIConfig contains configuration for the challenge commands
type CLIConfig struct {
	WebAuth config.Config `mapstructure:",squash"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		WebAuth: *config.NewDefaultConfig(),
	}
}

//AddConfigFlags adds the flags of the web-auth configuration to cmd
func AddConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("network", _config.WebAuth.Network, "Network passphrase")
	cmd.Flags().StringSlice("home-domains", _config.WebAuth.HomeDomains, "Home domains; the first one is used to build challenges")
	cmd.Flags().String("web-auth-domain", _config.WebAuth.WebAuthDomain, "Domain of the authentication endpoint")
	cmd.Flags().DurationP("timeout", "t", _config.WebAuth.ChallengeTimeout, "Validity of a challenge")
	cmd.Flags().String("client-domain", _config.WebAuth.ClientDomain, "Domain of the client's wallet")
	cmd.Flags().String("client-domain-key", _config.WebAuth.ClientDomainKey, "Account signing for the client domain")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	_config.WebAuth.SetDataDir(_config.WebAuth.DataDir)

	_config.WebAuth.Logger().WithFields(logrus.Fields{
		"webauth.DataDir":          _config.WebAuth.DataDir,
		"webauth.LogLevel":         _config.WebAuth.LogLevel,
		"webauth.Network":          _config.WebAuth.Network,
		"webauth.HomeDomains":      _config.WebAuth.HomeDomains,
		"webauth.WebAuthDomain":    _config.WebAuth.WebAuthDomain,
		"webauth.ChallengeTimeout": _config.WebAuth.ChallengeTimeout,
		"webauth.ClientDomain":     _config.WebAuth.ClientDomain,
	}).Debug("Config")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/webauth.toml (.json, .yaml also work)
	viper.SetConfigName(config.DefaultConfigName) // name of config file (without extension)
	viper.AddConfigPath(_config.WebAuth.DataDir)  // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.WebAuth.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.WebAuth.Logger().Debugf("No config file found in: %s", _config.WebAuth.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
