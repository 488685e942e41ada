package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/wizard"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an ovsync.yml config file interactively",
	Long: `Ask for the Opsview and ServiceNow connection settings through an
interactive wizard and write them to a config file.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "ovsync.yml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	detection := wizard.Detect(nil, configPath)
	if detection.ConfigExists {
		if !confirmPrompt(fmt.Sprintf("%s already exists. Overwrite?", configPath)) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ui.Success(fmt.Sprintf("Created %s", configPath))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("ov-cmdb-sync validate"))
	fmt.Printf("           %s\n", ui.Hint("then 'ov-cmdb-sync sync --dry-run' to preview the first pass"))

	return nil
}
