package wizard

import "os"

// DetectionResult holds what was auto-detected in the environment.
type DetectionResult struct {
	ConfigExists          bool
	OpsviewPasswordEnv    bool
	ServiceNowPasswordEnv bool
}

// Detector abstracts environment lookups for testing.
type Detector interface {
	Getenv(key string) string
	Stat(path string) (os.FileInfo, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) Getenv(key string) string              { return os.Getenv(key) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

// Detect checks for an existing config file and credentials already
// present in the environment.
func Detect(d Detector, configPath string) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if _, err := d.Stat(configPath); err == nil {
		result.ConfigExists = true
	}
	if d.Getenv("OVSYNC_OPSVIEW_PASSWORD") != "" {
		result.OpsviewPasswordEnv = true
	}
	if d.Getenv("OVSYNC_SERVICENOW_PASSWORD") != "" {
		result.ServiceNowPasswordEnv = true
	}

	return result
}
