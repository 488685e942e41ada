package opsview

import (
	"fmt"
	"strings"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
)

// ServiceNowGroupName is the branch under the root that holds every
// synced instance's group tree.
const ServiceNowGroupName = "ServiceNow"

func serviceNowBranch() string {
	return RootGroupName + "," + ServiceNowGroupName + ","
}

// HostsFromInstance returns every Opsview host whose provenance
// attribute names the given ServiceNow instance.
func HostsFromInstance(c *Client, instance string) (*HostList, error) {
	if instance == "" {
		return nil, fmt.Errorf("instance is missing or empty")
	}

	inv, err := c.Known(KindHost)
	if err != nil {
		return nil, err
	}

	hosts := NewHostList()
	for _, rec := range inv.Records {
		if !recordHasAttribute(rec, AttrInstance, instance) {
			continue
		}
		host, err := hostFromRecord(rec)
		if err != nil {
			return nil, err
		}
		hosts.Append(host)
	}

	ui.Debug("found %d hosts from instance '%s' in Opsview", hosts.Len(), instance)
	return hosts, nil
}

// PruneOrphanHashtags deletes hashtags that this tool created and that
// no longer reference any host or service check.
func PruneOrphanHashtags(c *Client) error {
	inv, err := c.Known(KindHashtag)
	if err != nil {
		return err
	}

	var orphans []map[string]any
	for _, rec := range inv.Records {
		description, _ := rec["description"].(string)
		if !strings.HasPrefix(description, ProvenanceDescription) {
			continue
		}
		hosts, _ := rec["hosts"].([]any)
		checks, _ := rec["servicechecks"].([]any)
		if len(hosts) == 0 && len(checks) == 0 {
			orphans = append(orphans, rec)
		}
	}

	ui.Info("Number of hashtags to delete in Opsview: %d", len(orphans))
	if len(orphans) == 0 {
		return nil
	}

	for _, rec := range orphans {
		name, _ := rec["name"].(string)
		ui.Action("delete", "hashtag '"+name+"'")
		if err := c.DeleteByID(KindHashtag, fmt.Sprint(rec["id"])); err != nil {
			return err
		}
	}

	c.Invalidate(KindHashtag)
	return nil
}

// PurgeInstance removes every object in Opsview originating from a
// ServiceNow instance: its hosts, then orphaned hashtags, then its
// host group branch, and finally, when nothing ServiceNow-related is
// left anywhere, the shared root group and global variables. The confirm callback
// gates the whole operation unless force is set.
func PurgeInstance(c *Client, instance string, force bool, confirm func(string) bool) error {
	if !force {
		prompt := fmt.Sprintf("Delete ALL objects from the ServiceNow instance '%s'?", instance)
		if confirm == nil || !confirm(prompt) {
			ui.Info("Aborting.")
			return nil
		}
	}

	hosts, err := HostsFromInstance(c, instance)
	if err != nil {
		return err
	}

	ui.Info("Number of hosts to delete in Opsview: %d", hosts.Len())
	if err := hosts.Delete(c); err != nil {
		return err
	}

	if err := PruneOrphanHashtags(c); err != nil {
		return err
	}

	if err := purgeInstanceGroups(c, instance); err != nil {
		return err
	}

	if err := purgeServiceNowRootGroup(c); err != nil {
		return err
	}

	return purgeServiceNowVariables(c)
}

// purgeInstanceGroups deletes every group rooted under the instance's
// branch. The API has no bulk delete for host groups.
func purgeInstanceGroups(c *Client, instance string) error {
	inv, err := c.Known(KindHostGroup)
	if err != nil {
		return err
	}

	prefix := serviceNowBranch() + instance + ","
	var doomed []map[string]any
	for _, rec := range inv.Records {
		matpath, _ := rec["matpath"].(string)
		if strings.HasPrefix(matpath, prefix) {
			doomed = append(doomed, rec)
		}
	}

	ui.Info("Number of hostgroups to delete in Opsview: %d", len(doomed))
	if len(doomed) == 0 {
		return nil
	}

	for _, rec := range doomed {
		name, _ := rec["name"].(string)
		ui.Action("delete", "hostgroup '"+name+"'")
		if err := c.DeleteByID(KindHostGroup, fmt.Sprint(rec["id"])); err != nil {
			return err
		}
	}

	c.Invalidate(KindHostGroup)
	return nil
}

// purgeServiceNowRootGroup deletes the shared ServiceNow group once it
// is the sole remaining node on its branch. Other instances' trees
// keep it alive.
func purgeServiceNowRootGroup(c *Client) error {
	// Always refresh: this runs right after groups were deleted.
	inv, err := c.Repopulate(KindHostGroup)
	if err != nil {
		return err
	}

	var remaining []map[string]any
	for _, rec := range inv.Records {
		matpath, _ := rec["matpath"].(string)
		if strings.HasPrefix(matpath, serviceNowBranch()) {
			remaining = append(remaining, rec)
		}
	}

	if len(remaining) == 0 {
		ui.Debug("no ServiceNow hostgroups left in Opsview")
		return nil
	}
	if len(remaining) > 1 {
		ui.Debug("more than one ServiceNow hostgroup left in Opsview, keeping the branch root")
		return nil
	}

	if name, _ := remaining[0]["name"].(string); name != ServiceNowGroupName {
		return nil
	}

	ui.Action("delete", "hostgroup '"+ServiceNowGroupName+"'")
	if err := c.DeleteByID(KindHostGroup, fmt.Sprint(remaining[0]["id"])); err != nil {
		return err
	}

	c.Invalidate(KindHostGroup)
	return nil
}

// purgeServiceNowVariables deletes the global SERVICENOW_* variables,
// except the reserved settings variable, once no host anywhere still
// carries a ServiceNow provenance attribute.
func purgeServiceNowVariables(c *Client) error {
	hostInv, err := c.Repopulate(KindHost)
	if err != nil {
		return err
	}

	for _, rec := range hostInv.Records {
		if recordHasAttribute(rec, AttrInstance, "") || recordHasAttribute(rec, AttrSysID, "") {
			ui.Info("Not purging ServiceNow variables: other instances still have hosts in Opsview")
			return nil
		}
	}

	varInv, err := c.Known(KindVariable)
	if err != nil {
		return err
	}

	var doomed []map[string]any
	for _, rec := range varInv.Records {
		name, _ := rec["name"].(string)
		if strings.HasPrefix(name, VariablePrefix) && name != VariableSettings {
			doomed = append(doomed, rec)
		}
	}

	ui.Info("Number of variables to delete in Opsview: %d", len(doomed))
	if len(doomed) == 0 {
		return nil
	}

	for _, rec := range doomed {
		name, _ := rec["name"].(string)
		ui.Action("delete", "variable '"+name+"'")
		if err := c.DeleteByID(KindVariable, fmt.Sprint(rec["id"])); err != nil {
			return err
		}
	}

	c.Invalidate(KindVariable)
	return nil
}
