package servicenow

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/opsview"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

// Attribute keys honored in a CMDB record's attributes string.
const (
	attrCollectorCluster = "OpsviewCollectorCluster"
	attrHashtags         = "OpsviewHashtags"
	attrHostTemplates    = "OpsviewHostTemplates"
)

// attributePairs matches key=value pairs in the semi-structured
// attributes string; values may be comma-separated lists with optional
// quoting.
var attributePairs = regexp.MustCompile(`([^;=]+)=([^;=]+(?:,[^;=]+)*)`)

// Link is a reference field in a table record.
type Link struct {
	Link  string `json:"link"`
	Value string `json:"value"`
}

// Asset is a CMDB configuration item as returned by the table API.
type Asset struct {
	Name         string `json:"name"`
	IPAddress    string `json:"ip_address"`
	FQDN         string `json:"fqdn"`
	SysID        string `json:"sys_id"`
	SysClassName string `json:"sys_class_name"`
	AssetTag     string `json:"asset_tag"`
	Attributes   string `json:"attributes"`
	AssetRef     *Link  `json:"asset"`
	SysDomain    *Link  `json:"sys_domain"`
}

// ParseAttributes splits the attributes string into a key to values
// map. Multi-values are comma-separated; surrounding quotes on values
// are stripped.
func ParseAttributes(s string) map[string][]string {
	out := make(map[string][]string)

	for _, match := range attributePairs.FindAllStringSubmatch(s, -1) {
		key := match[1]
		var values []string
		for _, v := range strings.Split(match[2], ",") {
			values = append(values, strings.Trim(v, `'"`))
		}
		out[key] = values
	}

	return out
}

// Instance derives the originating instance identifier from the
// asset's link fields: the host component of the asset link, falling
// back to the sys_domain link.
func (a Asset) Instance() (string, error) {
	for _, ref := range []*Link{a.AssetRef, a.SysDomain} {
		if ref == nil || ref.Link == "" {
			continue
		}
		u, err := url.Parse(ref.Link)
		if err != nil || u.Host == "" {
			continue
		}
		return u.Host, nil
	}

	return "", fmt.Errorf("could not determine the instance for asset %q", a.Name)
}

// Address returns the asset's IP address, falling back to its FQDN.
func (a Asset) Address() string {
	if a.IPAddress != "" {
		return a.IPAddress
	}
	return a.FQDN
}

// ToHost maps the asset into an Opsview host: name (spaces replaced),
// group chain Opsview,ServiceNow,<instance>,<class>, provenance
// attributes, collector cluster, hashtags, and templates.
func (a Asset) ToHost() (*opsview.Host, error) {
	if a.Name == "" || a.SysID == "" || a.SysClassName == "" {
		return nil, fmt.Errorf("asset %q is missing name, sys_id, or sys_class_name", a.Name)
	}

	instance, err := a.Instance()
	if err != nil {
		return nil, err
	}

	attrs := ParseAttributes(a.Attributes)

	clusters := attrs[attrCollectorCluster]
	if len(clusters) == 0 || clusters[0] == "" {
		return nil, fmt.Errorf("asset %q has no %s attribute", a.Name, attrCollectorCluster)
	}
	if len(clusters) > 1 {
		ui.Warn(fmt.Sprintf("asset %q has more than one %s, using the first", a.Name, attrCollectorCluster))
	}

	group, err := a.hostGroup(instance)
	if err != nil {
		return nil, err
	}

	variables, err := a.provenanceVariables(instance)
	if err != nil {
		return nil, err
	}

	host, err := opsview.NewHost(
		strings.ReplaceAll(a.Name, " ", "_"),
		a.Address(),
		group,
		variables,
		clusters[0],
	)
	if err != nil {
		return nil, err
	}

	hashtags, err := a.hashtags(attrs, instance)
	if err != nil {
		return nil, err
	}
	host.Hashtags = hashtags

	if names := attrs[attrHostTemplates]; len(names) > 0 {
		var templates []*opsview.HostTemplate
		for _, name := range names {
			tmpl, err := opsview.NewHostTemplate(name)
			if err != nil {
				return nil, err
			}
			templates = append(templates, tmpl)
		}
		host.Templates = templates
	}

	return host, nil
}

// hostGroup builds the ancestor chain for the asset's class under its
// instance's branch.
func (a Asset) hostGroup(instance string) (*opsview.HostGroup, error) {
	root, err := opsview.NewHostGroup(opsview.RootGroupName, nil)
	if err != nil {
		return nil, err
	}
	branch, err := opsview.NewHostGroup(opsview.ServiceNowGroupName, root)
	if err != nil {
		return nil, err
	}
	instanceGroup, err := opsview.NewHostGroup(instance, branch)
	if err != nil {
		return nil, err
	}
	return opsview.NewHostGroup(a.SysClassName, instanceGroup)
}

// provenanceVariables are the host attributes that tie a created host
// back to its source record.
func (a Asset) provenanceVariables(instance string) ([]*opsview.Variable, error) {
	sysID, err := opsview.NewVariable(opsview.AttrSysID, a.SysID)
	if err != nil {
		return nil, err
	}
	variables := []*opsview.Variable{sysID}

	if a.AssetTag != "" {
		tag, err := opsview.NewVariable(opsview.AttrAssetTag, a.AssetTag)
		if err != nil {
			return nil, err
		}
		variables = append(variables, tag)
	}

	inst, err := opsview.NewVariable(opsview.AttrInstance, instance)
	if err != nil {
		return nil, err
	}
	return append(variables, inst), nil
}

// hashtags combines the asset's requested hashtags with one derived
// from the instance identifier.
func (a Asset) hashtags(attrs map[string][]string, instance string) ([]*opsview.Hashtag, error) {
	var tags []*opsview.Hashtag

	names := append([]string{}, attrs[attrHashtags]...)

	cleaned := util.SanitizeHashtag(instance)
	if cleaned == "" || strings.Trim(cleaned, "_") == "" {
		return nil, fmt.Errorf("instance name %q is empty after sanitizing", instance)
	}
	names = append(names, cleaned)

	for _, name := range names {
		tag, err := opsview.NewHashtag(name)
		if err != nil {
			return nil, err
		}
		tag.AllServiceChecks = true
		tags = append(tags, tag)
	}

	return tags, nil
}

// OpsviewHosts fetches all monitorable assets and maps them to Opsview
// hosts. Assets with neither an IP address nor an FQDN are skipped
// with a warning; any other mapping failure is fatal.
func OpsviewHosts(c *Client) (*opsview.HostList, error) {
	assets, err := c.Assets()
	if err != nil {
		return nil, err
	}

	hosts := opsview.NewHostList()
	for _, asset := range assets {
		if asset.Address() == "" {
			ui.Warn(fmt.Sprintf("Skipped host '%s' as it has no IP address or FQDN.", asset.Name))
			continue
		}

		host, err := asset.ToHost()
		if err != nil {
			return nil, err
		}
		hosts.Append(host)
	}

	return hosts, nil
}
