package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/config"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/opsview"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/servicenow"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/sync"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

var (
	dryRun       bool
	force        bool
	ovURL        string
	ovUsername   string
	ovPassword   string
	snowURL      string
	snowUsername string
	snowPassword string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass against Opsview",
	Long: `Fetch all monitorable assets from ServiceNow, diff them against the hosts
Opsview currently knows for that instance, and create or delete hosts so the
two match. Prerequisite host groups and variables are created automatically;
orphaned hashtags are pruned afterwards.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "compute and print the plan without changing anything")
	syncCmd.Flags().BoolVarP(&force, "force", "f", false, "don't stop if there are pending changes in Opsview")
	syncCmd.Flags().StringVar(&ovURL, "ov-url", "", "Opsview URL")
	syncCmd.Flags().StringVar(&ovUsername, "ov-username", "", "Opsview username")
	syncCmd.Flags().StringVar(&ovPassword, "ov-password", "", "Opsview password")
	syncCmd.Flags().StringVar(&snowURL, "snow-url", "", "ServiceNow URL")
	syncCmd.Flags().StringVar(&snowUsername, "snow-username", "", "ServiceNow username")
	syncCmd.Flags().StringVar(&snowPassword, "snow-password", "", "ServiceNow password")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithOverrides()
	if err != nil {
		return err
	}

	if err := requireOpsview(cfg); err != nil {
		return err
	}
	if err := requireServiceNow(cfg); err != nil {
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

	if err := util.TestConnection(cfg.ServiceNow.URL); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("ServiceNow is unreachable", err.Error(), ""))
		return err
	}

	snow := servicenow.NewClient(cfg.ServiceNow.URL, cfg.ServiceNow.Username, cfg.ServiceNow.Password)
	ui.Info("Connected to the ServiceNow instance at %s", cfg.ServiceNow.URL)

	planner := &sync.Planner{
		OV:      ov,
		Snow:    snow,
		DryRun:  dryRun || cfg.Sync.DryRun,
		Force:   force || cfg.Sync.Force,
		Confirm: confirmPrompt,
	}

	if err := planner.Run(); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Sync failed", err.Error(), ""))
		return err
	}

	if planner.DryRun {
		ui.Info("Not applying changes.")
		return nil
	}

	if err := ov.ApplyChanges(); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to apply changes", err.Error(), ""))
		return err
	}

	ui.Success("Sync complete.")
	return nil
}

func loadConfigWithOverrides() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'ov-cmdb-sync init' to create a config file"))
		return nil, err
	}

	if ovURL != "" {
		cfg.Opsview.URL = ovURL
	}
	if ovUsername != "" {
		cfg.Opsview.Username = ovUsername
	}
	if ovPassword != "" {
		cfg.Opsview.Password = ovPassword
	}
	if snowURL != "" {
		cfg.ServiceNow.URL = snowURL
	}
	if snowUsername != "" {
		cfg.ServiceNow.Username = snowUsername
	}
	if snowPassword != "" {
		cfg.ServiceNow.Password = snowPassword
	}

	return cfg, nil
}

func requireOpsview(cfg *config.Config) error {
	if cfg.Opsview.URL == "" || cfg.Opsview.Username == "" || cfg.Opsview.Password == "" {
		err := fmt.Errorf("opsview url, username, and password are required")
		fmt.Fprint(os.Stderr, ui.FormatError("Incomplete Opsview configuration", err.Error(),
			"set opsview.url/username/password in ovsync.yml or pass --ov-url/--ov-username/--ov-password"))
		return err
	}
	return nil
}

func requireServiceNow(cfg *config.Config) error {
	if cfg.ServiceNow.URL == "" || cfg.ServiceNow.Username == "" || cfg.ServiceNow.Password == "" {
		err := fmt.Errorf("servicenow url, username, and password are required")
		fmt.Fprint(os.Stderr, ui.FormatError("Incomplete ServiceNow configuration", err.Error(),
			"set servicenow.url/username/password in ovsync.yml or pass --snow-url/--snow-username/--snow-password"))
		return err
	}
	return nil
}

// confirmPrompt asks the operator to approve a destructive branch.
func confirmPrompt(prompt string) bool {
	var ok bool
	if err := huh.NewConfirm().Title(prompt).Value(&ok).Run(); err != nil {
		return false
	}
	return ok
}
