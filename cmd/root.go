package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "ov-cmdb-sync",
	Short: "Sync Opsview monitoring configuration from a ServiceNow CMDB",
	Long: `ov-cmdb-sync reconciles hosts, host groups, hashtags, and variables in an
Opsview instance against the asset inventory of a ServiceNow CMDB.

Each invocation is a single stateless pass: assets tagged for monitoring in
ServiceNow become Opsview hosts, and hosts that have vanished from ServiceNow
are removed again, together with the auxiliary objects they orphan.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ovsync.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ovsync")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}

	ui.SetDebug(debug)
}
