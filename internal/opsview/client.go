package opsview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

// Client is an authenticated session with an Opsview instance. It owns
// the per-session inventory cache and is used from a single goroutine.
type Client struct {
	baseURL  string
	username string
	token    string
	http     *http.Client
	inv      map[Kind]*Inventory
}

// NewClient logs in and returns a ready session. Callers must Close it
// on every exit path to invalidate the token.
func NewClient(rawURL, username, password string) (*Client, error) {
	c := &Client{
		baseURL:  strings.TrimSuffix(util.WithHTTPS(rawURL), "/"),
		username: username,
		http:     &http.Client{Timeout: 30 * time.Second},
		inv:      make(map[Kind]*Inventory),
	}

	body, err := c.do(http.MethodPost, "/rest/login", map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in to Opsview: %w", err)
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		return nil, fmt.Errorf("parsing Opsview login response: %w", err)
	}
	if login.Token == "" {
		return nil, fmt.Errorf("opsview login returned no token")
	}
	c.token = login.Token

	return c, nil
}

// Close logs out, invalidating the session token.
func (c *Client) Close() error {
	if c.token == "" {
		return nil
	}
	_, err := c.do(http.MethodPost, "/rest/logout", map[string]any{})
	c.token = ""
	return err
}

func (c *Client) do(method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("X-Opsview-Username", c.username)
		req.Header.Set("X-Opsview-Token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// GetJSON issues a GET and decodes the object response.
func (c *Client) GetJSON(path string) (map[string]any, error) {
	body, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return out, nil
}

// PostJSON issues a POST with a JSON payload and decodes the response.
func (c *Client) PostJSON(path string, payload any) (map[string]any, error) {
	body, err := c.do(http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return out, nil
}

// Delete issues a DELETE.
func (c *Client) Delete(path string) error {
	_, err := c.do(http.MethodDelete, path, nil)
	return err
}

// DeleteByID deletes a single object of a kind by identifier. Only
// hosts support bulk deletion; everything else goes through here one
// object at a time.
func (c *Client) DeleteByID(kind Kind, id string) error {
	return c.Delete(kind.Endpoint() + "/" + id)
}

// GetAll enumerates every object of a kind, walking the paginated list
// endpoint until page equals totalpages.
func (c *Client) GetAll(kind Kind) ([]map[string]any, error) {
	var all []map[string]any

	for page := 1; ; page++ {
		ui.Debug("fetching %s page %d from Opsview", kind, page)
		data, err := c.GetJSON(fmt.Sprintf("%s?page=%d", kind.Endpoint(), page))
		if err != nil {
			return nil, err
		}

		records, _ := data["list"].([]any)
		for _, rec := range records {
			if m, ok := rec.(map[string]any); ok {
				all = append(all, m)
			}
		}

		summary, _ := data["summary"].(map[string]any)
		if fmt.Sprint(summary["page"]) == fmt.Sprint(summary["totalpages"]) {
			break
		}
	}

	return all, nil
}

// Exists asks the existence-check endpoint whether a named object of a
// kind is present.
func (c *Client) Exists(kind Kind, name string) (bool, error) {
	data, err := c.GetJSON(kind.Endpoint() + "/exists?name=" + url.QueryEscape(name))
	if err != nil {
		return false, err
	}
	return fmt.Sprint(data["exists"]) == "1", nil
}

// LookupID fetches the remote identifier of a named object.
func (c *Client) LookupID(kind Kind, name string) (string, error) {
	data, err := c.GetJSON(kind.Endpoint() + "/" + url.PathEscape(name))
	if err != nil {
		return "", err
	}

	id := fmt.Sprint(data["id"])
	if id == "" || id == "<nil>" {
		return "", fmt.Errorf("%s %q has no id in Opsview", kind, name)
	}
	return id, nil
}

// PendingChanges reports whether Opsview has uncommitted configuration
// changes.
func (c *Client) PendingChanges() (bool, error) {
	data, err := c.GetJSON("/rest/reload")
	if err != nil {
		return false, err
	}

	switch status := fmt.Sprint(data["configuration_status"]); status {
	case "uptodate":
		return false, nil
	case "pending":
		return true, nil
	default:
		return false, fmt.Errorf("unexpected configuration status from Opsview: %q", status)
	}
}

// GatePendingChanges aborts when Opsview has uncommitted changes and
// force mode is off; with force it warns and proceeds.
func GatePendingChanges(c *Client, force bool) error {
	pending, err := c.PendingChanges()
	if err != nil {
		return err
	}
	if !pending {
		return nil
	}

	if !force {
		return &PendingChangesError{}
	}

	ui.Warn("There are pending changes in Opsview, but we are ignoring them because of the --force option.")
	ui.Warn("Pending changes will be included when applying changes.")
	return nil
}

// ApplyChanges commits pending configuration changes. A no-op when
// nothing is pending, so it is safe to call once at the end of a run.
func (c *Client) ApplyChanges() error {
	pending, err := c.PendingChanges()
	if err != nil {
		return err
	}
	if !pending {
		return nil
	}

	ui.Info("Applying changes in Opsview")
	_, err = c.PostJSON("/rest/reload", map[string]any{})
	return err
}
