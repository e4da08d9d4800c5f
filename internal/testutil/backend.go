package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/domain/models"
)

// FakeBackend is an in-memory backend.Backend for handler and workflow
// tests. Errors can be injected per method name via Fail.
type FakeBackend struct {
	mu sync.Mutex

	Categories  []models.AssetCategory
	Assets      []models.AssetItem
	Employees   []models.Employee
	Assignments []models.AssignmentRecord
	Documents   []models.Document
	Maintenance []models.MaintenanceRecord

	// Fail maps a method name (e.g. "CreateAssignment") to the error it returns.
	Fail map[string]error
	// FailPair fails CreateAssignment / UnassignAssignment for one asset/employee pair.
	FailPair func(assetID, employeeID string) error

	calls map[string]int
}

var _ backend.Backend = (*FakeBackend)(nil)

// NewFakeBackend returns a FakeBackend preloaded with a small catalog:
// one single-employee laptop category and one team-assignable licence category.
func NewFakeBackend() *FakeBackend {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return &FakeBackend{
		Fail: map[string]error{},
		Categories: []models.AssetCategory{
			{ID: "cat-laptops", Name: "Laptops", Type: "hardware", Policy: models.AssignmentPolicy{AssignableTo: models.AssignableToSingleEmployee}, CreatedAt: now},
			{ID: "cat-licences", Name: "Licences", Type: "software", AllowMultipleAssignments: true, Policy: models.AssignmentPolicy{AssignableTo: models.AssignableToTeam}, CreatedAt: now},
		},
		Assets: []models.AssetItem{
			{ID: "a1", Name: "MacBook Pro", Tag: "LT-001", CategoryID: "cat-laptops", Status: models.StatusAvailable, CreatedAt: now},
			{ID: "a2", Name: "ThinkPad X1", Tag: "LT-002", CategoryID: "cat-laptops", Status: models.StatusAvailable, CreatedAt: now},
			{ID: "a3", Name: "Dell XPS", Tag: "LT-003", CategoryID: "cat-laptops", Status: models.StatusAssigned, HasActiveAssignment: true, CurrentAssigneeID: "e2", CurrentAssignmentID: "h0", CreatedAt: now},
			{ID: "a4", Name: "Surface", Tag: "LT-004", CategoryID: "cat-laptops", Status: models.StatusUnderMaintenance, CreatedAt: now},
			{ID: "l1", Name: "IDE seat", Tag: "SW-001", CategoryID: "cat-licences", Status: models.StatusAvailable, CreatedAt: now},
		},
		Employees: []models.Employee{
			{ID: "e1", FirstName: "Ada", LastName: "Lovelace", Department: "Engineering", Team: "Core"},
			{ID: "e2", FirstName: "Alan", LastName: "Turing", Department: "Research", Team: "Crypto", AssignedAssetIDs: []string{"a3"}},
			{ID: "e3", FirstName: "Grace", LastName: "Hopper", Department: "Engineering", Team: "Compilers"},
		},
		Assignments: []models.AssignmentRecord{
			{ID: "h0", AssetID: "a3", EmployeeID: "e2", AssignmentType: models.AssignmentPermanent, AssignedDate: now, Status: models.AssignmentActive},
		},
		Documents: []models.Document{
			{ID: "d1", AssetID: "a1", Name: "Invoice", Type: "invoice", URL: "https://files.example.com/d1.pdf", UploadedAt: now},
		},
		Maintenance: []models.MaintenanceRecord{
			{ID: "m1", AssetID: "a4", Type: "repair", Status: models.MaintenanceInProgress, Description: "Screen replacement", Cost: 120},
		},
	}
}

// Calls returns how many times method was invoked.
func (f *FakeBackend) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FakeBackend) enter(method string) error {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[method]++
	return f.Fail[method]
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, backend.ErrNotFound)
}

func (f *FakeBackend) assetIndex(id string) int {
	return slices.IndexFunc(f.Assets, func(a models.AssetItem) bool { return a.ID == id })
}

func (f *FakeBackend) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enter("Ping")
}

func (f *FakeBackend) ListAssetItems(_ context.Context, categoryID string) ([]models.AssetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListAssetItems"); err != nil {
		return nil, err
	}
	var out []models.AssetItem
	for _, a := range f.Assets {
		if categoryID == "" || a.CategoryID == categoryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *FakeBackend) GetAssetItem(_ context.Context, id string) (models.AssetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetAssetItem"); err != nil {
		return models.AssetItem{}, err
	}
	if i := f.assetIndex(id); i >= 0 {
		return f.Assets[i], nil
	}
	return models.AssetItem{}, notFound("asset", id)
}

func (f *FakeBackend) AssignAssetItem(ctx context.Context, id, employeeID string) error {
	_, err := f.CreateAssignment(ctx, models.AssignmentRecord{AssetID: id, EmployeeID: employeeID})
	return err
}

func (f *FakeBackend) UnassignAssetItem(ctx context.Context, id, employeeID string) error {
	return f.UnassignAssignment(ctx, models.UnassignRequest{AssetID: id, EmployeeID: employeeID, ReturnDate: time.Now().UTC()})
}

func (f *FakeBackend) CreateAssignment(_ context.Context, rec models.AssignmentRecord) (models.AssignmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateAssignment"); err != nil {
		return models.AssignmentRecord{}, err
	}
	if f.FailPair != nil {
		if err := f.FailPair(rec.AssetID, rec.EmployeeID); err != nil {
			return models.AssignmentRecord{}, err
		}
	}
	i := f.assetIndex(rec.AssetID)
	if i < 0 {
		return models.AssignmentRecord{}, notFound("asset", rec.AssetID)
	}
	rec.ID = fmt.Sprintf("h%d", len(f.Assignments)+1)
	if rec.Status == "" {
		rec.Status = models.AssignmentActive
	}
	f.Assignments = append(f.Assignments, rec)
	a := &f.Assets[i]
	a.Status = models.StatusAssigned
	a.HasActiveAssignment = true
	a.CurrentAssigneeID = rec.EmployeeID
	a.CurrentAssignmentID = rec.ID
	return rec, nil
}

func (f *FakeBackend) UnassignAssignment(_ context.Context, req models.UnassignRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UnassignAssignment"); err != nil {
		return err
	}
	if f.FailPair != nil {
		if err := f.FailPair(req.AssetID, req.EmployeeID); err != nil {
			return err
		}
	}
	j := slices.IndexFunc(f.Assignments, func(r models.AssignmentRecord) bool {
		return r.AssetID == req.AssetID && r.EmployeeID == req.EmployeeID && r.IsActive()
	})
	if j < 0 {
		return notFound("active assignment", req.AssetID+"/"+req.EmployeeID)
	}
	rd := req.ReturnDate
	f.Assignments[j].Status = models.AssignmentReturned
	f.Assignments[j].ActualReturnDate = &rd
	if i := f.assetIndex(req.AssetID); i >= 0 {
		a := &f.Assets[i]
		a.Status = models.StatusAvailable
		a.HasActiveAssignment = false
		a.CurrentAssigneeID = ""
		a.CurrentAssignmentID = ""
	}
	return nil
}

func (f *FakeBackend) ListAssignments(_ context.Context, assetID string) ([]models.AssignmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListAssignments"); err != nil {
		return nil, err
	}
	var out []models.AssignmentRecord
	for _, r := range f.Assignments {
		if assetID == "" || r.AssetID == assetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *FakeBackend) ListEmployees(context.Context) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListEmployees"); err != nil {
		return nil, err
	}
	return slices.Clone(f.Employees), nil
}

func (f *FakeBackend) GetEmployeeDetails(_ context.Context, id string) (models.EmployeeDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetEmployeeDetails"); err != nil {
		return models.EmployeeDetails{}, err
	}
	i := slices.IndexFunc(f.Employees, func(e models.Employee) bool { return e.ID == id })
	if i < 0 {
		return models.EmployeeDetails{}, notFound("employee", id)
	}
	d := models.EmployeeDetails{Employee: f.Employees[i]}
	for _, a := range f.Assets {
		if a.CurrentAssigneeID == id {
			d.Assets = append(d.Assets, a)
		}
	}
	for _, r := range f.Assignments {
		if r.EmployeeID == id {
			d.Assignments = append(d.Assignments, r)
		}
	}
	return d, nil
}

func (f *FakeBackend) ListCategories(context.Context) ([]models.AssetCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListCategories"); err != nil {
		return nil, err
	}
	return slices.Clone(f.Categories), nil
}

func (f *FakeBackend) GetCategory(_ context.Context, id string) (models.AssetCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetCategory"); err != nil {
		return models.AssetCategory{}, err
	}
	for _, c := range f.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.AssetCategory{}, notFound("category", id)
}

func (f *FakeBackend) CreateCategory(_ context.Context, c models.AssetCategory) (models.AssetCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateCategory"); err != nil {
		return models.AssetCategory{}, err
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("cat-%d", len(f.Categories)+1)
	}
	f.Categories = append(f.Categories, c)
	return c, nil
}

func (f *FakeBackend) UpdateCategory(_ context.Context, c models.AssetCategory) (models.AssetCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateCategory"); err != nil {
		return models.AssetCategory{}, err
	}
	for i := range f.Categories {
		if f.Categories[i].ID == c.ID {
			f.Categories[i] = c
			return c, nil
		}
	}
	return models.AssetCategory{}, notFound("category", c.ID)
}

func (f *FakeBackend) DeleteCategory(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteCategory"); err != nil {
		return err
	}
	n := len(f.Categories)
	f.Categories = slices.DeleteFunc(f.Categories, func(c models.AssetCategory) bool { return c.ID == id })
	if len(f.Categories) == n {
		return notFound("category", id)
	}
	return nil
}

func (f *FakeBackend) ListDocuments(_ context.Context, assetID string) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListDocuments"); err != nil {
		return nil, err
	}
	var out []models.Document
	for _, d := range f.Documents {
		if assetID == "" || d.AssetID == assetID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *FakeBackend) ListMaintenanceHistory(context.Context) ([]models.MaintenanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListMaintenanceHistory"); err != nil {
		return nil, err
	}
	return slices.Clone(f.Maintenance), nil
}
