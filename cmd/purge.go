package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/opsview"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

var (
	purgeInstance string
	purgeForce    bool
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove everything a ServiceNow instance put into Opsview",
	Long: `Delete all Opsview hosts that came from the given ServiceNow instance,
together with the host groups, hashtags, and variables that are left
orphaned by their removal. The ServiceNow instance itself is not touched.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringVarP(&purgeInstance, "instance", "i", "", "ServiceNow instance to purge (hostname, e.g. dev12345.service-now.com)")
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "skip confirmation and ignore pending changes")
	_ = purgeCmd.MarkFlagRequired("instance")
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithOverrides()
	if err != nil {
		return err
	}
	if err := requireOpsview(cfg); err != nil {
		return err
	}

	if err := util.TestConnection(cfg.Opsview.URL); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Opsview is unreachable", err.Error(), ""))
		return err
	}

	ov, err := opsview.NewClient(cfg.Opsview.URL, cfg.Opsview.Username, cfg.Opsview.Password)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to connect to Opsview", err.Error(), ""))
		return err
	}
	defer func() { _ = ov.Close() }()
	ui.Info("Connected to the Opsview instance at %s", cfg.Opsview.URL)

	if err := opsview.GatePendingChanges(ov, purgeForce); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Cannot purge", err.Error(), "apply or discard the pending changes, or rerun with --force"))
		return err
	}

	if err := opsview.PurgeInstance(ov, purgeInstance, purgeForce, confirmPrompt); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Purge failed", err.Error(), ""))
		return err
	}

	if err := ov.ApplyChanges(); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to apply changes", err.Error(), ""))
		return err
	}

	ui.Success(fmt.Sprintf("Purged instance '%s' from Opsview.", purgeInstance))
	return nil
}
