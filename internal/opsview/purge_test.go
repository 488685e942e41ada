package opsview

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveKindMutable registers a single-page listing that shrinks as
// objects are deleted, so repopulated inventories see deletions.
func (f *fakeOpsview) serveKindMutable(kind Kind, records []map[string]any) {
	remove := func(ids map[string]struct{}) {
		remaining := records[:0]
		for _, rec := range records {
			id, _ := rec["id"].(string)
			if _, doomed := ids[id]; doomed {
				f.deleted = append(f.deleted, string(kind)+"/"+id)
				continue
			}
			remaining = append(remaining, rec)
		}
		records = remaining
	}

	f.mux.HandleFunc("GET "+kind.Endpoint(), func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"list":    records,
			"summary": map[string]any{"page": 1, "totalpages": 1},
		})
	})
	f.mux.HandleFunc("DELETE "+kind.Endpoint(), func(w http.ResponseWriter, r *http.Request) {
		ids := make(map[string]struct{})
		for _, id := range r.URL.Query()["id"] {
			ids[id] = struct{}{}
		}
		remove(ids)
		writeJSON(w, map[string]any{})
	})
	f.mux.HandleFunc("DELETE "+kind.Endpoint()+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		remove(map[string]struct{}{r.PathValue("id"): {}})
		writeJSON(w, map[string]any{})
	})
}

func hostRecord(id, name, instance string) map[string]any {
	return map[string]any{
		"id":           id,
		"name":         name,
		"ip":           "10.0.0.1",
		"hostgroup":    map[string]any{"name": "cmdb_ci_linux_server"},
		"monitored_by": map[string]any{"name": "Collectors"},
		"hostattributes": []any{
			map[string]any{"name": AttrInstance, "value": instance},
			map[string]any{"name": AttrSysID, "value": "sys-" + id},
		},
	}
}

func TestHostsFromInstance(t *testing.T) {
	f := newFakeOpsview()
	f.serveKindMutable(KindHost, []map[string]any{
		hostRecord("1", "web01", "dev85142.service-now.com"),
		hostRecord("2", "web02", "other.service-now.com"),
		hostRecord("3", "web03", "dev85142.service-now.com"),
	})
	c := newTestClient(t, f)

	hosts, err := HostsFromInstance(c, "dev85142.service-now.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"web01", "web03"}, hosts.Keys())

	_, err = HostsFromInstance(c, "")
	assert.Error(t, err)
}

func TestPruneOrphanHashtags(t *testing.T) {
	f := newFakeOpsview()
	f.serveKindMutable(KindHashtag, []map[string]any{
		{
			"id": "1", "name": "orphaned",
			"description": ProvenanceDescription,
			"hosts":       []any{}, "servicechecks": []any{},
		},
		{
			"id": "2", "name": "still-used",
			"description": ProvenanceDescription,
			"hosts":       []any{map[string]any{"name": "web01"}},
		},
		{
			"id": "3", "name": "hand-made",
			"description": "curated by an operator",
			"hosts":       []any{}, "servicechecks": []any{},
		},
	})
	c := newTestClient(t, f)

	require.NoError(t, PruneOrphanHashtags(c))

	// Only the tool-created, unreferenced hashtag goes away.
	assert.Equal(t, []string{"keyword/1"}, f.deleted)
}

func TestPurgeInstanceDeclined(t *testing.T) {
	f := newFakeOpsview()
	c := newTestClient(t, f)

	declined := func(string) bool { return false }
	require.NoError(t, PurgeInstance(c, "dev85142.service-now.com", false, declined))
	assert.Empty(t, f.deleted)

	// A nil callback declines too.
	require.NoError(t, PurgeInstance(c, "dev85142.service-now.com", false, nil))
	assert.Empty(t, f.deleted)
}

func TestPurgeInstanceForced(t *testing.T) {
	instance := "dev85142.service-now.com"
	branch := "Opsview,ServiceNow,"

	f := newFakeOpsview()
	f.serveKindMutable(KindHost, []map[string]any{
		hostRecord("1", "web01", instance),
		hostRecord("2", "web02", instance),
	})
	f.serveKindMutable(KindHashtag, []map[string]any{
		{
			"id": "9", "name": "dev85142_service-now_com",
			"description": ProvenanceDescription,
			"hosts":       []any{}, "servicechecks": []any{},
		},
	})
	f.serveKindMutable(KindHostGroup, []map[string]any{
		{"id": "10", "name": "Opsview", "matpath": "Opsview,"},
		{"id": "11", "name": "ServiceNow", "matpath": branch},
		{"id": "12", "name": instance, "matpath": branch + instance + ","},
		{"id": "13", "name": "cmdb_ci_linux_server", "matpath": branch + instance + ",cmdb_ci_linux_server,"},
	})
	f.serveKindMutable(KindVariable, []map[string]any{
		{"id": "20", "name": AttrInstance},
		{"id": "21", "name": AttrSysID},
		{"id": "22", "name": VariableSettings},
		{"id": "23", "name": "UNRELATED"},
	})
	c := newTestClient(t, f)

	require.NoError(t, PurgeInstance(c, instance, true, nil))

	// Hosts and the orphaned hashtag first, then the instance's group
	// branch bottom-up discovery order, then the shared ServiceNow
	// group (nothing else left on the branch), then the global
	// variables except the reserved settings one.
	assert.Equal(t, []string{
		"host/1", "host/2",
		"keyword/9",
		"hostgroup/12", "hostgroup/13",
		"hostgroup/11",
		"attribute/20", "attribute/21",
	}, f.deleted)
}

func TestPurgeKeepsSharedObjects(t *testing.T) {
	instance := "dev85142.service-now.com"
	other := "other.service-now.com"
	branch := "Opsview,ServiceNow,"

	f := newFakeOpsview()
	f.serveKindMutable(KindHost, []map[string]any{
		hostRecord("1", "web01", instance),
		hostRecord("2", "web02", other),
	})
	f.serveKindMutable(KindHashtag, nil)
	f.serveKindMutable(KindHostGroup, []map[string]any{
		{"id": "11", "name": "ServiceNow", "matpath": branch},
		{"id": "12", "name": instance, "matpath": branch + instance + ","},
		{"id": "14", "name": other, "matpath": branch + other + ","},
	})
	f.serveKindMutable(KindVariable, []map[string]any{
		{"id": "20", "name": AttrInstance},
	})
	c := newTestClient(t, f)

	require.NoError(t, PurgeInstance(c, instance, true, nil))

	// The other instance keeps the shared branch root and the global
	// variables alive.
	assert.Equal(t, []string{"host/1", "hostgroup/12"}, f.deleted)
}
