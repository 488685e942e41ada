package opsview

import (
	"errors"
	"fmt"
)

// maxVariableValueLen is the API's limit on attribute values.
const maxVariableValueLen = 63

// Provenance attributes recorded on every synced host, and the
// reserved settings variable that purge never deletes.
const (
	AttrInstance     = "SERVICENOW_INSTANCE"
	AttrSysID        = "SERVICENOW_SYS_ID"
	AttrAssetTag     = "SERVICENOW_ASSET_TAG"
	VariablePrefix   = "SERVICENOW_"
	VariableSettings = "SERVICENOW_SETTINGS"
)

// Variable is an Opsview attribute, either a global definition or a
// host-level value.
type Variable struct {
	Name  string
	Value string
	ID    string
	Ref   string
}

func NewVariable(name, value string) (*Variable, error) {
	if name == "" {
		return nil, errors.New("variable name is missing or empty")
	}
	if len(value) > maxVariableValueLen {
		return nil, fmt.Errorf("variable %s value is %d characters long, maximum is %d",
			name, len(value), maxVariableValueLen)
	}

	return &Variable{Name: name, Value: value}, nil
}

func (v *Variable) Key() string        { return v.Name }
func (v *Variable) ObjectName() string { return v.Name }
func (v *Variable) Kind() Kind         { return KindVariable }

func (v *Variable) JSON(shallow bool) map[string]any {
	// Variables always serialize name and value; an empty value is a
	// meaningful global definition, not a default to elide.
	return map[string]any{
		"name":  v.Name,
		"value": v.Value,
	}
}
