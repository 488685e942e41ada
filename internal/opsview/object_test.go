package opsview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindEndpoint(t *testing.T) {
	assert.Equal(t, "/rest/config/host", KindHost.Endpoint())
	assert.Equal(t, "/rest/config/keyword", KindHashtag.Endpoint())
	assert.Equal(t, "/rest/config/attribute", KindVariable.Endpoint())
}

func TestKindKeyField(t *testing.T) {
	assert.Equal(t, "matpath", KindHostGroup.keyField())
	assert.Equal(t, "name", KindHost.keyField())
}

func TestPruneShallow(t *testing.T) {
	got := pruneShallow(map[string]any{
		"name":    "web01",
		"empty":   "",
		"off":     "0",
		"on":      "1",
		"nothing": nil,
		"list":    []any{},
		"maps":    []map[string]any{},
		"nested":  map[string]any{},
		"kept":    map[string]any{"name": "x"},
	})

	assert.Equal(t, map[string]any{
		"name": "web01",
		"on":   "1",
		"kept": map[string]any{"name": "x"},
	}, got)
}
