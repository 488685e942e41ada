package opsview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashtags(t *testing.T, names ...string) []*Hashtag {
	t.Helper()
	tags := make([]*Hashtag, 0, len(names))
	for _, name := range names {
		tag, err := NewHashtag(name)
		require.NoError(t, err)
		tags = append(tags, tag)
	}
	return tags
}

func TestListMergeDisjoint(t *testing.T) {
	a := NewList(hashtags(t, "one", "two")...)
	b := NewList(hashtags(t, "three", "four")...)

	a.Merge(b)

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []string{"three", "four", "one", "two"}, a.Keys())
}

func TestListMergeIncomingWins(t *testing.T) {
	old, err := NewHashtag("shared")
	require.NoError(t, err)
	old.Public = true

	incoming, err := NewHashtag("shared")
	require.NoError(t, err)

	a := NewList(old)
	a.Merge(NewList(incoming))

	require.Equal(t, 1, a.Len())
	assert.False(t, a.Items()[0].Public)
}

func TestListMergeSelf(t *testing.T) {
	a := NewList(hashtags(t, "one", "two")...)

	a.Merge(a)

	assert.Equal(t, []string{"one", "two"}, a.Keys())
}

func TestListWithoutDuplicates(t *testing.T) {
	l := NewList(hashtags(t, "one", "two", "one", "three", "two")...)

	l.WithoutDuplicates()
	assert.Equal(t, []string{"one", "two", "three"}, l.Keys())

	// Idempotent.
	l.WithoutDuplicates()
	assert.Equal(t, []string{"one", "two", "three"}, l.Keys())
}

func TestListJSON(t *testing.T) {
	l := NewList(hashtags(t, "one")...)

	got := l.JSON(true)

	objects, ok := got["list"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, objects, 1)
	assert.Equal(t, "one", objects[0]["name"])
}

func TestHostGroupListAddFromMatpaths(t *testing.T) {
	gl := NewHostGroupList()

	err := gl.AddFromMatpaths(
		"Opsview,ServiceNow,dev85142.service-now.com,cmdb_ci_linux_server,",
		"Opsview,ServiceNow,dev85142.service-now.com,cmdb_ci_win_server,",
	)
	require.NoError(t, err)

	// Shared ancestors appear once.
	assert.Equal(t, []string{
		"Opsview,",
		"Opsview,ServiceNow,",
		"Opsview,ServiceNow,dev85142.service-now.com,",
		"Opsview,ServiceNow,dev85142.service-now.com,cmdb_ci_linux_server,",
		"Opsview,ServiceNow,dev85142.service-now.com,cmdb_ci_win_server,",
	}, gl.Keys())
}

func TestHostGroupListSortByDepth(t *testing.T) {
	deep, err := NewHostGroup("deep", nil)
	require.NoError(t, err)
	deeper, err := NewHostGroup("deeper", deep)
	require.NoError(t, err)
	root, err := NewHostGroup(RootGroupName, nil)
	require.NoError(t, err)

	gl := NewHostGroupList(deeper, deep, root)
	gl.SortByDepth()

	assert.Equal(t, []string{
		"Opsview,",
		"Opsview,deep,",
		"Opsview,deep,deeper,",
	}, gl.Keys())
}

func TestHostListPrerequisites(t *testing.T) {
	host := testHost(t, "web01")
	hl := NewHostList(host)

	prereqs := hl.Prerequisites()
	require.Len(t, prereqs, 2)

	groups, ok := prereqs[0].(*HostGroupList)
	require.True(t, ok)
	assert.Equal(t, []string{host.HostGroup.Matpath}, groups.Keys())

	vars, ok := prereqs[1].(*VariableList)
	require.True(t, ok)
	assert.Equal(t, []string{AttrSysID, AttrInstance}, vars.Keys())
	for _, v := range vars.Items() {
		assert.Empty(t, v.Value, "global definitions carry no value")
	}
}
