package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LinuxLinusDE/MS-365/directory"
	"github.com/LinuxLinusDE/MS-365/types"
)

// Fields requested from the managedDevices endpoint. Keeping the
// $select explicit pins the record schema at the API boundary.
var selectFields = strings.Join([]string{
	"id",
	"deviceName",
	"operatingSystem",
	"osVersion",
	"manufacturer",
	"model",
	"managementAgent",
	"complianceState",
	"lastSyncDateTime",
}, ",")

// devicePage is one page of the managedDevices result set
type devicePage struct {
	Value    []graphDevice `json:"value"`
	NextLink string        `json:"@odata.nextLink"`
}

// graphDevice mirrors the wire shape of a managed device record
type graphDevice struct {
	ID               string     `json:"id"`
	DeviceName       string     `json:"deviceName"`
	OperatingSystem  string     `json:"operatingSystem"`
	OSVersion        string     `json:"osVersion"`
	Manufacturer     string     `json:"manufacturer"`
	Model            string     `json:"model"`
	ManagementAgent  string     `json:"managementAgent"`
	ComplianceState  string     `json:"complianceState"`
	LastSyncDateTime *time.Time `json:"lastSyncDateTime"`
}

func (g graphDevice) toDevice() types.Device {
	d := types.Device{
		ID:              g.ID,
		Name:            g.DeviceName,
		OperatingSystem: g.OperatingSystem,
		OSVersion:       g.OSVersion,
		Manufacturer:    g.Manufacturer,
		Model:           g.Model,
		ManagementAgent: g.ManagementAgent,
		ComplianceState: g.ComplianceState,
	}
	if g.LastSyncDateTime != nil {
		d.LastCheckIn = *g.LastSyncDateTime
	}
	return d
}

// FetchDevices returns every device of the session's tenant matching
// the filter, following @odata.nextLink until the result set is
// exhausted. Callers never see page boundaries. On error nothing is
// returned; a tenant with zero matching devices yields an empty slice
// and a nil error.
func (c *Client) FetchDevices(ctx context.Context, s directory.Session, filter types.DeviceFilter) ([]types.Device, error) {
	sess, ok := s.(*session)
	if !ok || sess == nil {
		return nil, fmt.Errorf("session does not belong to this source")
	}
	if sess.released {
		return nil, fmt.Errorf("session for %s is already released", sess.tenant)
	}

	query := url.Values{}
	query.Set("$select", selectFields)
	query.Set("$top", strconv.Itoa(c.pageSize))
	if expr := filter.Expression(); expr != "" {
		query.Set("$filter", expr)
	}
	next := c.baseURL + "/v1.0/deviceManagement/managedDevices?" + query.Encode()

	var devices []types.Device
	for next != "" {
		page, err := c.fetchPage(ctx, sess, next)
		if err != nil {
			return nil, fmt.Errorf("fetching devices for %s: %w", sess.tenant, err)
		}

		for _, record := range page.Value {
			device := record.toDevice()
			if !device.Valid() {
				c.logger.WithContext(ctx).Warn().
					Str("tenant", sess.tenant).
					Str("device_id", record.ID).
					Msg("rejecting device record with missing required fields")
				continue
			}
			devices = append(devices, device)
		}

		c.logger.LogFetchPage(ctx, sess.tenant, len(page.Value), len(devices))
		next = page.NextLink
	}

	return devices, nil
}

// fetchPage retrieves and decodes one page
func (c *Client) fetchPage(ctx context.Context, sess *session, pageURL string) (*devicePage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("client-request-id", uuid.NewString())

	resp, err := sess.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("managedDevices request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("managedDevices query returned %s: %s",
			resp.Status, strings.TrimSpace(string(body)))
	}

	var page devicePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding device page: %w", err)
	}
	return &page, nil
}
