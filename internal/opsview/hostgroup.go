package opsview

import (
	"errors"
	"strings"
)

// RootGroupName is the name of the host group hierarchy root. Its ref
// is fixed on a stock install.
const (
	RootGroupName = "Opsview"
	rootGroupRef  = "/rest/config/hostgroup/1"
)

// HostGroup is a node in the host group tree. Identity is the
// materialized path, not the name: two independently constructed groups
// with equal matpaths are the same node.
type HostGroup struct {
	Name    string
	Parent  *HostGroup
	Matpath string
	ID      string
	Ref     string
}

// NewHostGroup builds a host group under the given parent. A nil
// parent attaches the group to the root unless the group is the root
// itself (the default-parent policy).
func NewHostGroup(name string, parent *HostGroup) (*HostGroup, error) {
	if name == "" {
		return nil, errors.New("hostgroup name is missing or empty")
	}

	if parent == nil && name != RootGroupName {
		parent = &HostGroup{
			Name:    RootGroupName,
			Matpath: RootGroupName + ",",
			Ref:     rootGroupRef,
		}
	}

	hg := &HostGroup{Name: name, Parent: parent}
	if parent != nil {
		hg.Matpath = parent.Matpath + name + ","
	} else {
		hg.Matpath = name + ","
	}

	return hg, nil
}

func (hg *HostGroup) Key() string        { return hg.Matpath }
func (hg *HostGroup) ObjectName() string { return hg.Name }
func (hg *HostGroup) Kind() Kind         { return KindHostGroup }

// Depth is the number of path segments, the root having depth 1.
func (hg *HostGroup) Depth() int {
	return strings.Count(hg.Matpath, ",")
}

func (hg *HostGroup) JSON(shallow bool) map[string]any {
	var parent map[string]any
	if hg.Parent != nil {
		parent = map[string]any{
			"name":    hg.Parent.Name,
			"matpath": hg.Parent.Matpath,
		}
		if hg.Parent.Ref != "" {
			parent["ref"] = hg.Parent.Ref
		}
	}

	m := map[string]any{
		"name":    hg.Name,
		"matpath": hg.Matpath,
		"id":      hg.ID,
		"ref":     hg.Ref,
		"parent":  parent,
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}
