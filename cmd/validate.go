package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and connectivity to both systems",
	Long: `Check that the configuration file has every required field and that both
the Opsview and ServiceNow endpoints answer over HTTPS. No credentials are
verified and nothing is changed.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithOverrides()
	if err != nil {
		return err
	}

	failures := 0
	failures += validateSystem("opsview", cfg.Opsview.URL, cfg.Opsview.Username, cfg.Opsview.Password)
	failures += validateSystem("servicenow", cfg.ServiceNow.URL, cfg.ServiceNow.Username, cfg.ServiceNow.Password)

	if failures > 0 {
		return fmt.Errorf("%d validation failure(s)", failures)
	}

	ui.Success("Configuration is valid.")
	return nil
}

func validateSystem(name, rawURL, username, password string) int {
	failures := 0

	if rawURL == "" {
		ui.ValidationErr(name+".url", "missing", "set it in ovsync.yml or run 'ov-cmdb-sync init'")
		failures++
	} else if err := util.TestConnection(rawURL); err != nil {
		ui.ValidationErr(name+".url", err.Error(), "check the URL and your network connectivity")
		failures++
	} else {
		ui.ValidationOK(name+".url", util.WithHTTPS(rawURL))
	}

	if username == "" {
		ui.ValidationErr(name+".username", "missing", "")
		failures++
	} else {
		ui.ValidationOK(name+".username", username)
	}

	if password == "" {
		ui.ValidationErr(name+".password", "missing", "set it in ovsync.yml or via OVSYNC_"+envName(name)+"_PASSWORD")
		failures++
	} else {
		ui.ValidationOK(name+".password", "set")
	}

	return failures
}

func envName(system string) string {
	if system == "servicenow" {
		return "SERVICENOW"
	}
	return "OPSVIEW"
}
