package sync

import (
	"fmt"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/opsview"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/servicenow"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
)

// Planner runs one reconciliation pass: desired state from ServiceNow
// against actual state in Opsview, for a single instance.
type Planner struct {
	OV     *opsview.Client
	Snow   *servicenow.Client
	DryRun bool
	Force  bool
	// Confirm gates destructive branches when force is off. A nil
	// callback declines.
	Confirm func(prompt string) bool
}

// Run executes the pass: pending-changes gate, fetch desired, fetch
// actual, diff, apply (or print, in dry-run mode).
func (p *Planner) Run() error {
	if err := opsview.GatePendingChanges(p.OV, p.Force); err != nil {
		return err
	}

	desired, err := servicenow.OpsviewHosts(p.Snow)
	if err != nil {
		return err
	}

	instance := p.Snow.Instance()
	ui.Info("Valid Opsview hosts found in ServiceNow instance '%s': %d", instance, desired.Len())

	// ServiceNow reporting nothing to monitor means everything from
	// this instance should go away, not that the diff is empty.
	if desired.Len() == 0 {
		if p.DryRun {
			ui.DryRun(fmt.Sprintf("would remove ALL Opsview hosts from the instance '%s'", instance))
			return nil
		}
		return opsview.PurgeInstance(p.OV, instance, p.Force, p.Confirm)
	}

	actual, err := opsview.HostsFromInstance(p.OV, instance)
	if err != nil {
		return err
	}
	ui.Info("Number of hosts from instance '%s' found in Opsview: %d", instance, actual.Len())

	toDelete, toCreate := diff(desired, actual)

	if toDelete.Len() == 0 && toCreate.Len() == 0 {
		ui.Info("No hosts to delete or create")
	}

	if p.DryRun {
		for _, host := range toDelete.Items() {
			ui.DryRun("would delete host '" + host.Name + "'")
		}
		for _, host := range toCreate.Items() {
			ui.DryRun("would create host '" + host.Name + "'")
		}
		return nil
	}

	// Deletes first, then creates, both in the same pass.
	if toDelete.Len() > 0 {
		ui.Info("Number of hosts to delete in Opsview: %d", toDelete.Len())
		if err := toDelete.Delete(p.OV); err != nil {
			return err
		}
	}
	if toCreate.Len() > 0 {
		ui.Info("Number of hosts to create in Opsview: %d", toCreate.Len())
		if err := toCreate.Create(p.OV); err != nil {
			return err
		}
	}

	return opsview.PruneOrphanHashtags(p.OV)
}

// diff computes both sides of the plan by name: hosts present in
// Opsview but gone from ServiceNow are deleted, hosts in ServiceNow
// but absent from Opsview are created.
func diff(desired, actual *opsview.HostList) (toDelete, toCreate *opsview.HostList) {
	desiredNames := make(map[string]struct{}, desired.Len())
	for _, host := range desired.Items() {
		desiredNames[host.Name] = struct{}{}
	}
	actualNames := make(map[string]struct{}, actual.Len())
	for _, host := range actual.Items() {
		actualNames[host.Name] = struct{}{}
	}

	toDelete = opsview.NewHostList()
	for _, host := range actual.Items() {
		if _, keep := desiredNames[host.Name]; !keep {
			toDelete.Append(host)
		}
	}

	toCreate = opsview.NewHostList()
	for _, host := range desired.Items() {
		if _, present := actualNames[host.Name]; !present {
			toCreate.Append(host)
		}
	}

	return toDelete, toCreate
}
