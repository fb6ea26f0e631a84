package commands

import (
	"github.com/spf13/cobra"
)

var (
	_config = NewDefaultCLIConfig()
)

//RootCmd is the root command for webauth
var RootCmd = &cobra.Command{
	Use:              "webauth",
	Short:            "challenge-response authentication of ledger accounts",
	TraverseChildren: true,
}

func init() {
	RootCmd.PersistentFlags().String("datadir", _config.WebAuth.DataDir, "Top-level directory for configuration and keys")
	RootCmd.PersistentFlags().String("log", _config.WebAuth.LogLevel, "trace, debug, info, warn, error, fatal, panic")
}
