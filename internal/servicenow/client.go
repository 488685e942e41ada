package servicenow

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
	"github.com/ITRS-Group/ov-cmdb-sync/internal/util"
)

// pageSize is the sysparm_limit used when walking table results.
const pageSize = 100

// collectorClusterAttr marks CMDB records that Opsview should monitor.
const collectorClusterAttr = "OpsviewCollectorCluster"

// Client queries a ServiceNow instance's table API with basic auth.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

func NewClient(rawURL, username, password string) *Client {
	return &Client{
		baseURL:  util.WithHTTPS(rawURL),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Instance returns the instance identifier this client talks to: the
// host component of its URL.
func (c *Client) Instance() string {
	return util.InstanceFromURL(c.baseURL)
}

// Assets enumerates every CMDB record tagged for Opsview monitoring,
// walking the table API in pages.
func (c *Client) Assets() ([]Asset, error) {
	var all []Asset

	for offset := 0; ; offset += pageSize {
		path := fmt.Sprintf(
			"/api/now/table/cmdb_ci?sysparm_query=attributesLIKE%s&sysparm_limit=%d&sysparm_offset=%d",
			collectorClusterAttr, pageSize, offset)
		ui.Debug("fetching ServiceNow assets at offset %d", offset)

		page, err := c.getAssets(path)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}

	ui.Debug("found %d assets in ServiceNow", len(all))
	return all, nil
}

func (c *Client) getAssets(path string) ([]Asset, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

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
		return nil, fmt.Errorf("servicenow API returned %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Result []Asset `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parsing servicenow response: %w", err)
	}

	return out.Result, nil
}
