package opsview

import (
	"errors"
	"fmt"
	"regexp"
)

// ProvenanceDescription marks hashtags created by this tool so that
// orphan pruning never touches hand-made ones.
const ProvenanceDescription = "Created by Opsview CMDB Sync"

var hashtagName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Hashtag is an Opsview keyword.
type Hashtag struct {
	Name             string
	Description      string
	Enabled          bool
	AllHosts         bool
	AllServiceChecks bool
	Public           bool
	ID               string
	Ref              string
}

// NewHashtag builds a hashtag with the tool's provenance description.
// Names must be ASCII alphanumerics, underscores, or hyphens.
func NewHashtag(name string) (*Hashtag, error) {
	if name == "" {
		return nil, errors.New("hashtag name is missing or empty")
	}
	if !hashtagName.MatchString(name) {
		return nil, fmt.Errorf(
			"hashtag name %q is invalid: only ASCII alphanumerics, underscores, and hyphens are allowed", name)
	}

	return &Hashtag{
		Name:        name,
		Description: ProvenanceDescription,
		Enabled:     true,
	}, nil
}

func (h *Hashtag) Key() string        { return h.Name }
func (h *Hashtag) ObjectName() string { return h.Name }
func (h *Hashtag) Kind() Kind         { return KindHashtag }

func (h *Hashtag) JSON(shallow bool) map[string]any {
	m := map[string]any{
		"name":              h.Name,
		"description":       h.Description,
		"enabled":           flag(h.Enabled),
		"all_hosts":         flag(h.AllHosts),
		"all_servicechecks": flag(h.AllServiceChecks),
		"public":            flag(h.Public),
		"id":                h.ID,
		"ref":               h.Ref,
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}
