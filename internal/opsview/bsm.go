package opsview

import (
	"errors"
	"fmt"
	"math"
)

// BSMComponent is a business service model component: a set of hosts
// with a quorum percentage deciding when the component counts as up.
type BSMComponent struct {
	Name         string
	HostTemplate *HostTemplate
	HostNames    []string
	QuorumPct    string
	ID           string
	Ref          string
}

// NewBSMComponent validates that the quorum percentage is achievable
// by an integer vote count over the given hosts. A negative quorumPct
// leaves the field unset.
func NewBSMComponent(name string, template *HostTemplate, hostNames []string, quorumPct float64) (*BSMComponent, error) {
	if name == "" {
		return nil, errors.New("bsmcomponent name is missing or empty")
	}

	bc := &BSMComponent{
		Name:         name,
		HostTemplate: template,
		HostNames:    hostNames,
	}

	if quorumPct >= 0 {
		if !ValidQuorumPct(quorumPct, len(hostNames)) {
			return nil, fmt.Errorf("quorum_pct %.2f is not achievable with %d hosts",
				quorumPct, len(hostNames))
		}
		bc.QuorumPct = fmt.Sprintf("%.2f", quorumPct)
	}

	return bc, nil
}

// ValidQuorumPct reports whether pct is within 0.01 of (k/n)*100 for
// some integer k in [0, n]. Anything else is a threshold no vote count
// can ever reach.
func ValidQuorumPct(pct float64, numberOfHosts int) bool {
	if pct < 0 || pct > 100 || numberOfHosts <= 0 {
		return false
	}

	for k := 0; k <= numberOfHosts; k++ {
		ratio := float64(k) / float64(numberOfHosts) * 100
		if math.Abs(pct-ratio) < 0.01 {
			return true
		}
	}

	return false
}

func (bc *BSMComponent) Key() string        { return bc.Name }
func (bc *BSMComponent) ObjectName() string { return bc.Name }
func (bc *BSMComponent) Kind() Kind         { return KindBSMComponent }

func (bc *BSMComponent) JSON(shallow bool) map[string]any {
	hosts := make([]map[string]any, 0, len(bc.HostNames))
	for _, name := range bc.HostNames {
		hosts = append(hosts, nameRef(name))
	}

	m := map[string]any{
		"name":       bc.Name,
		"hosts":      hosts,
		"quorum_pct": bc.QuorumPct,
		"id":         bc.ID,
		"ref":        bc.Ref,
	}
	if bc.HostTemplate != nil {
		m["host_template"] = bc.HostTemplate.JSON(true)
	} else {
		m["host_template"] = nil
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}

// BSMService is a business service built from components.
type BSMService struct {
	Name       string
	Components []*BSMComponent
	ID         string
	Ref        string
}

func NewBSMService(name string, components ...*BSMComponent) (*BSMService, error) {
	if name == "" {
		return nil, errors.New("bsmservice name is missing or empty")
	}
	return &BSMService{Name: name, Components: components}, nil
}

func (bs *BSMService) Key() string        { return bs.Name }
func (bs *BSMService) ObjectName() string { return bs.Name }
func (bs *BSMService) Kind() Kind         { return KindBSMService }

func (bs *BSMService) JSON(shallow bool) map[string]any {
	components := make([]map[string]any, 0, len(bs.Components))
	for _, c := range bs.Components {
		components = append(components, nameRef(c.Name))
	}

	m := map[string]any{
		"name":       bs.Name,
		"components": components,
		"id":         bs.ID,
		"ref":        bs.Ref,
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}
