package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateConfig(t *testing.T) {
	answers := Answers{
		OpsviewURL:         "opsview.example.com",
		OpsviewUsername:    "admin",
		OpsviewPassword:    "hunter2",
		ServiceNowURL:      "https://dev85142.service-now.com",
		ServiceNowUsername: "sync",
		DryRun:             true,
	}

	content, err := GenerateConfig(answers)
	require.NoError(t, err)

	var cfg configFile
	require.NoError(t, yaml.Unmarshal([]byte(content), &cfg))

	assert.Equal(t, "https://opsview.example.com", cfg.Opsview.URL)
	assert.Equal(t, "admin", cfg.Opsview.Username)
	assert.Equal(t, "hunter2", cfg.Opsview.Password)
	assert.Equal(t, "https://dev85142.service-now.com", cfg.ServiceNow.URL)
	assert.Equal(t, "sync", cfg.ServiceNow.Username)
	assert.True(t, cfg.Sync.DryRun)
	assert.False(t, cfg.Sync.Force)
}

func TestGenerateConfigOmitsEmptyPassword(t *testing.T) {
	content, err := GenerateConfig(Answers{
		OpsviewURL:         "opsview.example.com",
		OpsviewUsername:    "admin",
		ServiceNowURL:      "dev85142.service-now.com",
		ServiceNowUsername: "sync",
	})
	require.NoError(t, err)

	assert.NotContains(t, content, "password")
}
