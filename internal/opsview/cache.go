package opsview

import "github.com/ITRS-Group/ov-cmdb-sync/internal/ui"

// Inventory is the memoized listing of one entity kind in Opsview: the
// raw records in enumeration order plus an identity index. It is never
// invalidated automatically; callers that mutate a kind must
// Invalidate (or Repopulate) before relying on freshness again.
type Inventory struct {
	Records []map[string]any
	byKey   map[string]map[string]any
}

func newInventory(records []map[string]any, keyField string) *Inventory {
	inv := &Inventory{byKey: make(map[string]map[string]any, len(records))}

	for _, rec := range records {
		key, _ := rec[keyField].(string)
		if key == "" {
			continue
		}
		if _, dup := inv.byKey[key]; dup {
			continue
		}
		inv.byKey[key] = rec
		inv.Records = append(inv.Records, rec)
	}

	return inv
}

// Has reports whether an object with the given identity key exists.
func (inv *Inventory) Has(key string) bool {
	_, ok := inv.byKey[key]
	return ok
}

// Lookup returns the raw record for an identity key.
func (inv *Inventory) Lookup(key string) (map[string]any, bool) {
	rec, ok := inv.byKey[key]
	return rec, ok
}

func (inv *Inventory) Len() int {
	return len(inv.Records)
}

// Known returns the cached inventory for a kind, enumerating the
// remote collection on first access.
func (c *Client) Known(kind Kind) (*Inventory, error) {
	if inv, ok := c.inv[kind]; ok {
		return inv, nil
	}

	ui.Debug("populating %s inventory from Opsview", kind)
	records, err := c.GetAll(kind)
	if err != nil {
		return nil, err
	}

	inv := newInventory(records, kind.keyField())
	c.inv[kind] = inv
	return inv, nil
}

// Invalidate drops the cached inventory for a kind.
func (c *Client) Invalidate(kind Kind) {
	delete(c.inv, kind)
}

// Repopulate refreshes the inventory for a kind immediately.
func (c *Client) Repopulate(kind Kind) (*Inventory, error) {
	c.Invalidate(kind)
	return c.Known(kind)
}
