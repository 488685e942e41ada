package wizard

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

const configHeader = `# ov-cmdb-sync configuration
# Passwords can be left out and provided via OVSYNC_OPSVIEW_PASSWORD
# and OVSYNC_SERVICENOW_PASSWORD instead.

`

type configFile struct {
	Opsview    systemSection `yaml:"opsview"`
	ServiceNow systemSection `yaml:"servicenow"`
	Sync       syncSection   `yaml:"sync"`
}

type systemSection struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
}

type syncSection struct {
	DryRun bool `yaml:"dry_run"`
	Force  bool `yaml:"force"`
}

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers Answers) (string, error) {
	cfg := configFile{
		Opsview: systemSection{
			URL:      util.WithHTTPS(answers.OpsviewURL),
			Username: answers.OpsviewUsername,
			Password: answers.OpsviewPassword,
		},
		ServiceNow: systemSection{
			URL:      util.WithHTTPS(answers.ServiceNowURL),
			Username: answers.ServiceNowUsername,
			Password: answers.ServiceNowPassword,
		},
		Sync: syncSection{
			DryRun: answers.DryRun,
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	return configHeader + string(data), nil
}
