package opsview

import (
	"errors"
	"fmt"
)

// Host is an Opsview monitored host.
type Host struct {
	Name             string
	IP               string
	HostGroup        *HostGroup
	Attributes       []*Variable
	CollectorCluster string
	Hashtags         []*Hashtag
	Templates        []*HostTemplate
	CheckCommand     *HostCheckCommand
	ID               string
	Ref              string
}

// NewHost builds a host. Hosts without templates get the default
// template and all hosts check reachability with the default command.
func NewHost(name, ip string, group *HostGroup, attrs []*Variable, collectorCluster string) (*Host, error) {
	if name == "" {
		return nil, errors.New("host name is missing or empty")
	}
	if ip == "" {
		return nil, fmt.Errorf("host %s has no IP address or FQDN", name)
	}
	if group == nil {
		return nil, fmt.Errorf("host %s has no hostgroup", name)
	}
	if collectorCluster == "" {
		return nil, fmt.Errorf("host %s has no collector cluster", name)
	}

	check, err := NewHostCheckCommand(DefaultCheckCommand)
	if err != nil {
		return nil, err
	}
	tmpl, err := NewHostTemplate(DefaultHostTemplate)
	if err != nil {
		return nil, err
	}

	return &Host{
		Name:             name,
		IP:               ip,
		HostGroup:        group,
		Attributes:       attrs,
		CollectorCluster: collectorCluster,
		Templates:        []*HostTemplate{tmpl},
		CheckCommand:     check,
	}, nil
}

func (h *Host) Key() string        { return h.Name }
func (h *Host) ObjectName() string { return h.Name }
func (h *Host) Kind() Kind         { return KindHost }

// Attribute returns the value of a host attribute by name.
func (h *Host) Attribute(name string) (string, bool) {
	for _, attr := range h.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

func (h *Host) JSON(shallow bool) map[string]any {
	templates := make([]map[string]any, 0, len(h.Templates))
	for _, t := range h.Templates {
		templates = append(templates, t.JSON(true))
	}
	attrs := make([]map[string]any, 0, len(h.Attributes))
	for _, a := range h.Attributes {
		attrs = append(attrs, a.JSON(true))
	}
	keywords := make([]map[string]any, 0, len(h.Hashtags))
	for _, tag := range h.Hashtags {
		keywords = append(keywords, tag.JSON(true))
	}

	m := map[string]any{
		"name":           h.Name,
		"id":             h.ID,
		"ip":             h.IP,
		"hostgroup":      map[string]any{"matpath": h.HostGroup.Matpath},
		"hosttemplates":  templates,
		"hostattributes": attrs,
		"monitored_by":   nameRef(h.CollectorCluster),
		"keywords":       keywords,
	}
	if h.CheckCommand != nil {
		m["check_command"] = h.CheckCommand.JSON(true)
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}

// hostFromRecord rebuilds a Host from the API's list representation.
// Only the fields the planner and purge workflow rely on are mapped.
func hostFromRecord(rec map[string]any) (*Host, error) {
	name, _ := rec["name"].(string)
	ip, _ := rec["ip"].(string)

	groupName := ""
	if hg, ok := rec["hostgroup"].(map[string]any); ok {
		groupName, _ = hg["name"].(string)
	}
	group, err := NewHostGroup(groupName, nil)
	if err != nil {
		return nil, fmt.Errorf("host %q: %w", name, err)
	}

	var attrs []*Variable
	if raw, ok := rec["hostattributes"].([]any); ok {
		for _, entry := range raw {
			attr, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			attrName, _ := attr["name"].(string)
			attrValue, _ := attr["value"].(string)
			v, err := NewVariable(attrName, attrValue)
			if err != nil {
				return nil, fmt.Errorf("host %q: %w", name, err)
			}
			attrs = append(attrs, v)
		}
	}

	cluster := ""
	if mb, ok := rec["monitored_by"].(map[string]any); ok {
		cluster, _ = mb["name"].(string)
	}

	host, err := NewHost(name, ip, group, attrs, cluster)
	if err != nil {
		return nil, err
	}
	host.ID = fmt.Sprint(rec["id"])

	return host, nil
}

// recordHasAttribute reports whether a raw host record carries a host
// attribute with the given name (and value, when value is non-empty).
func recordHasAttribute(rec map[string]any, name, value string) bool {
	raw, ok := rec["hostattributes"].([]any)
	if !ok {
		return false
	}
	for _, entry := range raw {
		attr, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if attr["name"] != name {
			continue
		}
		if value == "" || attr["value"] == value {
			return true
		}
	}
	return false
}
