package opsview

import (
	"errors"
	"strconv"
)

// ServiceCheck is an Opsview service check. Only the fields this tool
// reads or writes are modeled; defaults follow the API's.
type ServiceCheck struct {
	Name                string
	Description         string
	Args                string
	Plugin              *Plugin
	ServiceGroup        *ServiceGroup
	CheckAttempts       int
	CheckInterval       int
	RetryCheckInterval  int
	NotificationOptions string
	AlertFromFailure    bool
	CheckFreshness      bool
	FlapDetection       bool
	StaleState          int
	StaleText           string
	StaleThresholdSecs  int
	ID                  string
	Ref                 string
}

func NewServiceCheck(name string) (*ServiceCheck, error) {
	if name == "" {
		return nil, errors.New("servicecheck name is missing or empty")
	}

	return &ServiceCheck{
		Name:                name,
		CheckAttempts:       3,
		CheckInterval:       300,
		RetryCheckInterval:  60,
		NotificationOptions: "w,c,r,u,f",
		AlertFromFailure:    true,
		CheckFreshness:      true,
		FlapDetection:       true,
		StaleState:          3,
		StaleText:           "UNKNOWN: Service results are stale",
		StaleThresholdSecs:  1800,
	}, nil
}

func (sc *ServiceCheck) Key() string        { return sc.Name }
func (sc *ServiceCheck) ObjectName() string { return sc.Name }
func (sc *ServiceCheck) Kind() Kind         { return KindServiceCheck }

func (sc *ServiceCheck) JSON(shallow bool) map[string]any {
	m := map[string]any{
		"name":                    sc.Name,
		"description":             sc.Description,
		"args":                    sc.Args,
		"check_attempts":          strconv.Itoa(sc.CheckAttempts),
		"check_interval":          strconv.Itoa(sc.CheckInterval),
		"retry_check_interval":    strconv.Itoa(sc.RetryCheckInterval),
		"notification_options":    sc.NotificationOptions,
		"alert_from_failure":      flag(sc.AlertFromFailure),
		"check_freshness":         flag(sc.CheckFreshness),
		"flap_detection_enabled":  flag(sc.FlapDetection),
		"stale_state":             strconv.Itoa(sc.StaleState),
		"stale_text":              sc.StaleText,
		"stale_threshold_seconds": strconv.Itoa(sc.StaleThresholdSecs),
		"id":                      sc.ID,
		"ref":                     sc.Ref,
	}
	if sc.Plugin != nil {
		m["plugin"] = sc.Plugin.JSON(true)
	} else {
		m["plugin"] = nil
	}
	if sc.ServiceGroup != nil {
		m["servicegroup"] = sc.ServiceGroup.JSON(true)
	} else {
		m["servicegroup"] = nil
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}
