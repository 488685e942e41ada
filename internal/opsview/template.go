package opsview

import "errors"

// DefaultHostTemplate is assigned to hosts that request no templates.
const DefaultHostTemplate = "Network - Base"

// HostTemplate is an Opsview host template.
type HostTemplate struct {
	Name        string
	Description string
	ID          string
	Ref         string
}

func NewHostTemplate(name string) (*HostTemplate, error) {
	if name == "" {
		return nil, errors.New("hosttemplate name is missing or empty")
	}
	return &HostTemplate{Name: name}, nil
}

func (ht *HostTemplate) Key() string        { return ht.Name }
func (ht *HostTemplate) ObjectName() string { return ht.Name }
func (ht *HostTemplate) Kind() Kind         { return KindHostTemplate }

func (ht *HostTemplate) JSON(shallow bool) map[string]any {
	m := map[string]any{
		"name":        ht.Name,
		"description": ht.Description,
		"id":          ht.ID,
		"ref":         ht.Ref,
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}

// ServiceGroup groups service checks.
type ServiceGroup struct {
	Name string
	ID   string
	Ref  string
}

func NewServiceGroup(name string) (*ServiceGroup, error) {
	if name == "" {
		return nil, errors.New("servicegroup name is missing or empty")
	}
	return &ServiceGroup{Name: name}, nil
}

func (sg *ServiceGroup) Key() string        { return sg.Name }
func (sg *ServiceGroup) ObjectName() string { return sg.Name }
func (sg *ServiceGroup) Kind() Kind         { return KindServiceGroup }

func (sg *ServiceGroup) JSON(shallow bool) map[string]any {
	m := map[string]any{
		"name": sg.Name,
		"id":   sg.ID,
		"ref":  sg.Ref,
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}
