package opsview

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordCreates captures the bulk-create payloads POSTed for a kind.
func (f *fakeOpsview) recordCreates(kind Kind, into *[]map[string]any) {
	f.mux.HandleFunc("POST "+kind.Endpoint(), func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			List []map[string]any `json:"list"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		*into = append(*into, payload.List...)
		writeJSON(w, map[string]any{})
	})
}

func TestHostListCreate(t *testing.T) {
	f := newFakeOpsview()
	f.serveKind(KindHost)
	f.serveKind(KindHostGroup, []map[string]any{
		{"name": "Opsview", "matpath": "Opsview,", "ref": "/rest/config/hostgroup/1"},
	})
	f.serveKind(KindVariable, []map[string]any{
		{"name": AttrSysID},
	})

	var createdHosts, createdGroups, createdVars []map[string]any
	f.recordCreates(KindHost, &createdHosts)
	f.recordCreates(KindHostGroup, &createdGroups)
	f.recordCreates(KindVariable, &createdVars)

	c := newTestClient(t, f)

	hl := NewHostList(testHost(t, "web01"), testHost(t, "web01"), testHost(t, "web02"))
	require.NoError(t, hl.Create(c))

	// Duplicate host collapsed, both survivors created.
	require.Len(t, createdHosts, 2)
	assert.Equal(t, "web01", createdHosts[0]["name"])
	assert.Equal(t, "web02", createdHosts[1]["name"])

	// The shared group chain is created once, parents first, with the
	// already-existing root filtered out.
	require.Len(t, createdGroups, 1)
	assert.Equal(t, "Opsview,cmdb_ci_linux_server,", createdGroups[0]["matpath"])

	// Variable definitions are created for attributes that do not
	// exist yet; SERVICENOW_SYS_ID already does.
	require.Len(t, createdVars, 1)
	assert.Equal(t, AttrInstance, createdVars[0]["name"])
}

func TestHostListCreateNothingToDo(t *testing.T) {
	f := newFakeOpsview()
	f.serveKind(KindHost, []map[string]any{{"name": "web01"}})
	f.serveKind(KindHostGroup)

	var createdHosts []map[string]any
	f.recordCreates(KindHost, &createdHosts)

	c := newTestClient(t, f)

	hl := NewHostList(testHost(t, "web01"))
	require.NoError(t, hl.Create(c))

	assert.Empty(t, createdHosts)
}

func TestHostGroupListCreateResolvesRefs(t *testing.T) {
	f := newFakeOpsview()
	f.serveKind(KindHostGroup, []map[string]any{
		{"name": "Opsview", "matpath": "Opsview,", "ref": "/rest/config/hostgroup/1"},
		{"name": "ServiceNow", "matpath": "Opsview,ServiceNow,", "ref": "/rest/config/hostgroup/5"},
	})

	var created []map[string]any
	f.recordCreates(KindHostGroup, &created)

	c := newTestClient(t, f)

	gl := NewHostGroupList()
	require.NoError(t, gl.AddFromMatpaths("Opsview,ServiceNow,dev85142.service-now.com,"))
	require.NoError(t, gl.Create(c))

	// Only the new leaf is created; its parent projection carries the
	// ref looked up from the existing inventory.
	require.Len(t, created, 1)
	assert.Equal(t, "Opsview,ServiceNow,dev85142.service-now.com,", created[0]["matpath"])
	parent, ok := created[0]["parent"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/rest/config/hostgroup/5", parent["ref"])
}

func TestHostListDelete(t *testing.T) {
	f := newFakeOpsview()

	var deletedIDs []string
	f.mux.HandleFunc("DELETE "+KindHost.Endpoint(), func(w http.ResponseWriter, r *http.Request) {
		deletedIDs = append(deletedIDs, r.URL.Query()["id"]...)
		writeJSON(w, map[string]any{})
	})

	c := newTestClient(t, f)

	web01 := testHost(t, "web01")
	web01.ID = "17"
	web02 := testHost(t, "web02")
	web02.ID = "23"

	require.NoError(t, NewHostList(web01, web02).Delete(c))

	// One bulk call carrying every id.
	assert.Equal(t, []string{"17", "23"}, deletedIDs)
}

func TestHashtagListCreate(t *testing.T) {
	f := newFakeOpsview()
	f.serveKind(KindHashtag, []map[string]any{{"name": "linux"}})

	var created []map[string]any
	f.recordCreates(KindHashtag, &created)

	c := newTestClient(t, f)

	tl := NewHashtagList(hashtags(t, "linux", "production", "production")...)
	require.NoError(t, tl.Create(c))

	require.Len(t, created, 1)
	assert.Equal(t, "production", created[0]["name"])
}
