package opsview

// Kind identifies an entity type by its REST endpoint segment. The
// Opsview API calls hashtags "keyword" and variables "attribute".
type Kind string

const (
	KindHost             Kind = "host"
	KindHostGroup        Kind = "hostgroup"
	KindHashtag          Kind = "keyword"
	KindVariable         Kind = "attribute"
	KindHostTemplate     Kind = "hosttemplate"
	KindHostCheckCommand Kind = "hostcheckcommand"
	KindPlugin           Kind = "plugin"
	KindServiceCheck     Kind = "servicecheck"
	KindServiceGroup     Kind = "servicegroup"
	KindTimePeriod       Kind = "timeperiod"
	KindBSMComponent     Kind = "bsmcomponent"
	KindBSMService       Kind = "bsmservice"
)

// Endpoint returns the config REST path for this kind.
func (k Kind) Endpoint() string {
	return "/rest/config/" + string(k)
}

// keyField is the record field carrying a kind's identity. Host groups
// are identified by their materialized path, everything else by name.
func (k Kind) keyField() string {
	if k == KindHostGroup {
		return "matpath"
	}
	return "name"
}

// Object is the capability set shared by every Opsview config entity.
type Object interface {
	// Key is the identity of the object within its kind: the name for
	// most kinds, the matpath for host groups.
	Key() string
	ObjectName() string
	Kind() Kind
	// JSON returns the external representation. Shallow mode elides
	// default/falsy fields and reduces nested objects to minimal
	// projections; it is the form accepted by the bulk-create endpoint.
	JSON(shallow bool) map[string]any
}

// flag renders a boolean the way the Opsview API expects it.
func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// nameRef is the minimal projection of a nested object.
func nameRef(name string) map[string]any {
	return map[string]any{"name": name}
}

// pruneShallow removes falsy values from a representation: empty
// strings, "0" flags, nils, and empty lists. The bulk-create endpoint
// handles default-valued fields poorly, so shallow payloads omit them.
func pruneShallow(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val == "" || val == "0" {
				continue
			}
		case []any:
			if len(val) == 0 {
				continue
			}
		case []map[string]any:
			if len(val) == 0 {
				continue
			}
		case map[string]any:
			if len(val) == 0 {
				continue
			}
		}
		out[k] = v
	}
	return out
}
