package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

// Answers holds all user responses from the wizard.
type Answers struct {
	OpsviewURL         string
	OpsviewUsername    string
	OpsviewPassword    string
	ServiceNowURL      string
	ServiceNowUsername string
	ServiceNowPassword string
	DryRun             bool
}

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*Answers, error) {
	answers := &Answers{
		OpsviewUsername:    "admin",
		ServiceNowUsername: "admin",
	}

	var hints []string
	if detection.OpsviewPasswordEnv {
		hints = append(hints, "OVSYNC_OPSVIEW_PASSWORD is set; leave the Opsview password empty to keep using it")
	}
	if detection.ServiceNowPasswordEnv {
		hints = append(hints, "OVSYNC_SERVICENOW_PASSWORD is set; leave the ServiceNow password empty to keep using it")
	}

	opsviewDesc := "The Opsview instance that receives the monitoring configuration."
	snowDesc := "The ServiceNow instance whose CMDB is the source of truth."
	if len(hints) > 0 {
		opsviewDesc += "\n\nDetected:\n  " + strings.Join(hints, "\n  ")
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Opsview URL").
				Description(opsviewDesc).
				Placeholder("https://opsview.example.com").
				Validate(validateURL).
				Value(&answers.OpsviewURL),
			huh.NewInput().
				Title("Opsview username").
				Value(&answers.OpsviewUsername),
			huh.NewInput().
				Title("Opsview password").
				Description("Stored in the config file. Leave empty to use OVSYNC_OPSVIEW_PASSWORD.").
				EchoMode(huh.EchoModePassword).
				Value(&answers.OpsviewPassword),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("ServiceNow URL").
				Description(snowDesc).
				Placeholder("https://dev12345.service-now.com").
				Validate(validateURL).
				Value(&answers.ServiceNowURL),
			huh.NewInput().
				Title("ServiceNow username").
				Value(&answers.ServiceNowUsername),
			huh.NewInput().
				Title("ServiceNow password").
				Description("Stored in the config file. Leave empty to use OVSYNC_SERVICENOW_PASSWORD.").
				EchoMode(huh.EchoModePassword).
				Value(&answers.ServiceNowPassword),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Default to dry-run mode?").
				Description("Dry-run computes and prints the plan without changing Opsview.").
				Value(&answers.DryRun),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	return answers, nil
}

func validateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("URL is required")
	}
	if util.InstanceFromURL(s) == "" {
		return fmt.Errorf("not a valid URL")
	}
	return nil
}
