package opsview

import "errors"

// DefaultCheckCommand is the host check assigned when none is given.
const DefaultCheckCommand = "ping"

// Plugin is a monitoring plugin binary known to Opsview.
type Plugin struct {
	Name    string
	Envvars string
}

func NewPlugin(name string) (*Plugin, error) {
	if name == "" {
		return nil, errors.New("plugin name is missing or empty")
	}
	return &Plugin{Name: name}, nil
}

func (p *Plugin) Key() string        { return p.Name }
func (p *Plugin) ObjectName() string { return p.Name }
func (p *Plugin) Kind() Kind         { return KindPlugin }

func (p *Plugin) JSON(shallow bool) map[string]any {
	m := map[string]any{
		"name":    p.Name,
		"envvars": p.Envvars,
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}

// HostCheckCommand determines how a host's reachability is checked.
type HostCheckCommand struct {
	Name     string
	Args     string
	Plugin   *Plugin
	Priority string
	ID       string
	Ref      string
}

func NewHostCheckCommand(name string) (*HostCheckCommand, error) {
	if name == "" {
		return nil, errors.New("hostcheckcommand name is missing or empty")
	}
	return &HostCheckCommand{Name: name}, nil
}

func (hc *HostCheckCommand) Key() string        { return hc.Name }
func (hc *HostCheckCommand) ObjectName() string { return hc.Name }
func (hc *HostCheckCommand) Kind() Kind         { return KindHostCheckCommand }

func (hc *HostCheckCommand) JSON(shallow bool) map[string]any {
	m := map[string]any{
		"name":     hc.Name,
		"args":     hc.Args,
		"priority": hc.Priority,
		"id":       hc.ID,
		"ref":      hc.Ref,
	}
	if hc.Plugin != nil {
		m["plugin"] = hc.Plugin.JSON(true)
	} else {
		m["plugin"] = nil
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}
