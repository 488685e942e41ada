package opsview

import (
	"sort"
	"strings"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
)

// HostList is an ordered collection of hosts.
type HostList struct {
	List[*Host]
}

func NewHostList(hosts ...*Host) *HostList {
	return &HostList{List: *NewList(hosts...)}
}

// Prerequisites derives the collections that must exist before the
// hosts themselves: the referenced host groups and, for every host
// attribute, a global variable definition.
func (hl *HostList) Prerequisites() []Creator {
	groups := NewHostGroupList()
	vars := NewVariableList()

	for _, h := range hl.Items() {
		groups.Append(h.HostGroup)
		for _, attr := range h.Attributes {
			// Global definitions carry no value; values live on the host.
			vars.Append(&Variable{Name: attr.Name})
		}
	}

	return []Creator{groups, vars}
}

// Process resolves hostgroup refs, de-duplicates, and filters out
// hosts that already exist. Returns false when nothing is left to do.
func (hl *HostList) Process(c *Client) (bool, error) {
	for _, h := range hl.Items() {
		if err := h.HostGroup.resolveRef(c); err != nil {
			return false, err
		}
	}

	hl.WithoutDuplicates()
	if err := hl.WithoutExisting(c); err != nil {
		return false, err
	}

	return hl.Len() > 0, nil
}

// Create submits the hosts in one bulk call, creating prerequisite
// host groups and variables first.
func (hl *HostList) Create(c *Client) error {
	ok, err := hl.Process(c)
	if err != nil {
		return err
	}
	if !ok {
		ui.Info("No hosts to create after processing.")
		return nil
	}

	for _, prereq := range hl.Prerequisites() {
		if err := prereq.Create(c); err != nil {
			return err
		}
	}

	return createObjects(c, KindHost, &hl.List, "host")
}

// Delete removes all hosts in one call by identifier list; the API has
// no name-based bulk delete for hosts.
func (hl *HostList) Delete(c *Client) error {
	if hl.Len() == 0 {
		return nil
	}

	ids := make([]string, 0, hl.Len())
	for _, h := range hl.Items() {
		ui.Action("delete", "host '"+h.Name+"'")
		ids = append(ids, "id="+h.ID)
	}

	if err := c.Delete(KindHost.Endpoint() + "?" + strings.Join(ids, "&")); err != nil {
		return err
	}

	c.Invalidate(KindHost)
	return nil
}

// HostGroupList is an ordered collection of host group nodes.
type HostGroupList struct {
	List[*HostGroup]
}

func NewHostGroupList(groups ...*HostGroup) *HostGroupList {
	return &HostGroupList{List: *NewList(groups...)}
}

// AddFromMatpaths materializes every node implied by the given
// matpaths: for each path prefix a group is built whose parent is the
// node of the next-shorter prefix. Nodes already present (by matpath)
// are not added twice.
func (gl *HostGroupList) AddFromMatpaths(matpaths ...string) error {
	seen := make(map[string]struct{}, gl.Len())
	for _, hg := range gl.Items() {
		seen[hg.Matpath] = struct{}{}
	}

	for _, matpath := range matpaths {
		names := strings.Split(strings.TrimSuffix(matpath, ","), ",")

		var parent *HostGroup
		for _, name := range names {
			hg, err := NewHostGroup(name, parent)
			if err != nil {
				return err
			}
			parent = hg

			if _, dup := seen[hg.Matpath]; dup {
				continue
			}
			seen[hg.Matpath] = struct{}{}
			gl.Append(hg)
		}
	}

	return nil
}

// SortByDepth stable-sorts shallowest first, so that creating the list
// in order always creates ancestors before descendants.
func (gl *HostGroupList) SortByDepth() {
	items := gl.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Depth() < items[j].Depth()
	})
}

// Process materializes ancestors, orders parents before children,
// resolves remote refs, de-duplicates, and filters existing nodes.
func (gl *HostGroupList) Process(c *Client) (bool, error) {
	matpaths := make([]string, 0, gl.Len())
	for _, hg := range gl.Items() {
		matpaths = append(matpaths, hg.Matpath)
	}
	if err := gl.AddFromMatpaths(matpaths...); err != nil {
		return false, err
	}

	gl.SortByDepth()

	for _, hg := range gl.Items() {
		if err := hg.resolveRef(c); err != nil {
			return false, err
		}
	}

	gl.WithoutDuplicates()
	if err := gl.WithoutExisting(c); err != nil {
		return false, err
	}

	return gl.Len() > 0, nil
}

func (gl *HostGroupList) Prerequisites() []Creator { return nil }

func (gl *HostGroupList) Create(c *Client) error {
	ok, err := gl.Process(c)
	if err != nil {
		return err
	}
	if !ok {
		ui.Info("No hostgroups to create after processing.")
		return nil
	}

	return createObjects(c, KindHostGroup, &gl.List, "hostgroup")
}

// VariableList is an ordered collection of variables.
type VariableList struct {
	List[*Variable]
}

func NewVariableList(vars ...*Variable) *VariableList {
	return &VariableList{List: *NewList(vars...)}
}

func (vl *VariableList) Prerequisites() []Creator { return nil }

func (vl *VariableList) Create(c *Client) error {
	vl.WithoutDuplicates()
	if err := vl.WithoutExisting(c); err != nil {
		return err
	}
	if vl.Len() == 0 {
		ui.Info("No variables to create after processing.")
		return nil
	}

	return createObjects(c, KindVariable, &vl.List, "variable")
}

// HashtagList is an ordered collection of hashtags.
type HashtagList struct {
	List[*Hashtag]
}

func NewHashtagList(tags ...*Hashtag) *HashtagList {
	return &HashtagList{List: *NewList(tags...)}
}

func (tl *HashtagList) Prerequisites() []Creator { return nil }

func (tl *HashtagList) Create(c *Client) error {
	tl.WithoutDuplicates()
	if err := tl.WithoutExisting(c); err != nil {
		return err
	}
	if tl.Len() == 0 {
		ui.Info("No hashtags to create after processing.")
		return nil
	}

	return createObjects(c, KindHashtag, &tl.List, "hashtag")
}

// resolveRef backfills the group's remote ref from the inventory cache
// when the node already exists in Opsview.
func (hg *HostGroup) resolveRef(c *Client) error {
	inv, err := c.Known(KindHostGroup)
	if err != nil {
		return err
	}

	if rec, ok := inv.Lookup(hg.Matpath); ok {
		hg.Ref, _ = rec["ref"].(string)
	}
	return nil
}
