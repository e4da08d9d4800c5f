// internal/app/backend/restclient/api.go
package restclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/system/metrics"
	"github.com/dalemusser/assetdesk/internal/app/system/normalize"
	"github.com/dalemusser/assetdesk/internal/domain/models"
)

func withQuery(key, value string) url.Values {
	if value == "" {
		return nil
	}
	return url.Values{key: []string{value}}
}

func notFound(op string) error {
	return &backend.Error{Op: op, Status: http.StatusNotFound, Err: backend.ErrNotFound}
}

// Ping issues a single, unretried category listing.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	req := request{Op: "GET /asset-categories", Method: http.MethodGet, Path: "/asset-categories"}
	_, err := c.once(ctx, req, nil)
	metrics.ObserveBackend("PING", start, err)
	return err
}

// ========================= ASSET ITEMS =========================

func (c *Client) ListAssetItems(ctx context.Context, categoryID string) ([]models.AssetItem, error) {
	v, err := c.do(ctx, request{
		Op: "GET /asset-items", Method: http.MethodGet, Path: "/asset-items",
		Query: withQuery("category_id", categoryID),
	})
	if err != nil {
		return nil, err
	}
	items := decodeList(v, normalize.AssetItem)
	if categoryID == "" {
		return items, nil
	}
	// Some backends ignore the filter.
	out := items[:0]
	for _, it := range items {
		if it.CategoryID == "" || it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *Client) GetAssetItem(ctx context.Context, id string) (models.AssetItem, error) {
	const op = "GET /asset-items/{id}"
	v, err := c.do(ctx, request{Op: op, Method: http.MethodGet, Path: "/asset-items/" + url.PathEscape(id)})
	if err != nil {
		return models.AssetItem{}, err
	}
	m := record(v)
	if m == nil {
		return models.AssetItem{}, notFound(op)
	}
	return normalize.AssetItem(m), nil
}

type employeeRef struct {
	EmployeeID string `json:"employee_id"`
}

func (c *Client) AssignAssetItem(ctx context.Context, id, employeeID string) error {
	_, err := c.do(ctx, request{
		Op: "POST /asset-items/{id}/assign", Method: http.MethodPost,
		Path: "/asset-items/" + url.PathEscape(id) + "/assign",
		Body: employeeRef{EmployeeID: employeeID},
	})
	return err
}

func (c *Client) UnassignAssetItem(ctx context.Context, id, employeeID string) error {
	_, err := c.do(ctx, request{
		Op: "POST /asset-items/{id}/unassign", Method: http.MethodPost,
		Path: "/asset-items/" + url.PathEscape(id) + "/unassign",
		Body: employeeRef{EmployeeID: employeeID},
	})
	return err
}

// ========================= ASSIGNMENTS =========================

func (c *Client) CreateAssignment(ctx context.Context, rec models.AssignmentRecord) (models.AssignmentRecord, error) {
	v, err := c.do(ctx, request{
		Op: "POST /assignment-history", Method: http.MethodPost, Path: "/assignment-history",
		Body: rec,
	})
	if err != nil {
		return models.AssignmentRecord{}, err
	}
	if m := record(v); m != nil {
		created := normalize.AssignmentRecord(m)
		if created.AssetID == "" {
			created.AssetID = rec.AssetID
		}
		if created.EmployeeID == "" {
			created.EmployeeID = rec.EmployeeID
		}
		return created, nil
	}
	return rec, nil
}

func (c *Client) UnassignAssignment(ctx context.Context, req models.UnassignRequest) error {
	_, err := c.do(ctx, request{
		Op: "POST /assignment-history/unassign", Method: http.MethodPost, Path: "/assignment-history/unassign",
		Body: req,
	})
	return err
}

func (c *Client) ListAssignments(ctx context.Context, assetID string) ([]models.AssignmentRecord, error) {
	v, err := c.do(ctx, request{
		Op: "GET /assignment-history", Method: http.MethodGet, Path: "/assignment-history",
		Query: withQuery("asset_id", assetID),
	})
	if err != nil {
		return nil, err
	}
	return decodeList(v, normalize.AssignmentRecord), nil
}

// ========================= EMPLOYEES =========================

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	v, err := c.do(ctx, request{Op: "GET /employees", Method: http.MethodGet, Path: "/employees"})
	if err != nil {
		return nil, err
	}
	return decodeList(v, normalize.Employee), nil
}

// GetEmployeeDetails accepts either a flat employee object carrying assets
// and assignments, or {employee, assets, assignments}.
func (c *Client) GetEmployeeDetails(ctx context.Context, id string) (models.EmployeeDetails, error) {
	const op = "GET /employees/{id}/details"
	v, err := c.do(ctx, request{Op: op, Method: http.MethodGet, Path: "/employees/" + url.PathEscape(id) + "/details"})
	if err != nil {
		return models.EmployeeDetails{}, err
	}
	m := snakeRecord(record(v))
	if m == nil {
		return models.EmployeeDetails{}, notFound(op)
	}
	emp := m
	if inner, ok := m["employee"].(map[string]any); ok {
		emp = inner
	}
	d := models.EmployeeDetails{Employee: normalize.Employee(emp)}
	for _, k := range []string{"assets", "asset_items", "current_assets"} {
		if xs, ok := m[k]; ok {
			d.Assets = decodeList(xs, normalize.AssetItem)
			break
		}
	}
	for _, k := range []string{"assignments", "assignment_history"} {
		if xs, ok := m[k]; ok {
			d.Assignments = decodeList(xs, normalize.AssignmentRecord)
			break
		}
	}
	if d.Employee.ID == "" {
		d.Employee.ID = id
	}
	return d, nil
}

// ========================= CATEGORIES =========================

func (c *Client) ListCategories(ctx context.Context) ([]models.AssetCategory, error) {
	v, err := c.do(ctx, request{Op: "GET /asset-categories", Method: http.MethodGet, Path: "/asset-categories"})
	if err != nil {
		return nil, err
	}
	return decodeList(v, normalize.Category), nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (models.AssetCategory, error) {
	const op = "GET /asset-categories/{id}"
	v, err := c.do(ctx, request{Op: op, Method: http.MethodGet, Path: "/asset-categories/" + url.PathEscape(id)})
	if err != nil {
		return models.AssetCategory{}, err
	}
	m := record(v)
	if m == nil {
		return models.AssetCategory{}, notFound(op)
	}
	return normalize.Category(m), nil
}

func (c *Client) CreateCategory(ctx context.Context, cat models.AssetCategory) (models.AssetCategory, error) {
	v, err := c.do(ctx, request{
		Op: "POST /asset-categories", Method: http.MethodPost, Path: "/asset-categories",
		Body: cat,
	})
	if err != nil {
		return models.AssetCategory{}, err
	}
	if m := record(v); m != nil {
		return normalize.Category(m), nil
	}
	return cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, cat models.AssetCategory) (models.AssetCategory, error) {
	v, err := c.do(ctx, request{
		Op: "PUT /asset-categories/{id}", Method: http.MethodPut, Path: "/asset-categories/" + url.PathEscape(cat.ID),
		Body: cat,
	})
	if err != nil {
		return models.AssetCategory{}, err
	}
	if m := record(v); m != nil {
		return normalize.Category(m), nil
	}
	return cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		Op: "DELETE /asset-categories/{id}", Method: http.MethodDelete, Path: "/asset-categories/" + url.PathEscape(id),
	})
	return err
}

// ========================= RECORDS =========================

func (c *Client) ListDocuments(ctx context.Context, assetID string) ([]models.Document, error) {
	v, err := c.do(ctx, request{
		Op: "GET /documents", Method: http.MethodGet, Path: "/documents",
		Query: withQuery("asset_id", assetID),
	})
	if err != nil {
		return nil, err
	}
	return decodeList(v, normalize.Document), nil
}

func (c *Client) ListMaintenanceHistory(ctx context.Context) ([]models.MaintenanceRecord, error) {
	v, err := c.do(ctx, request{Op: "GET /maintenance-history", Method: http.MethodGet, Path: "/maintenance-history"})
	if err != nil {
		return nil, err
	}
	return decodeList(v, normalize.MaintenanceRecord), nil
}
