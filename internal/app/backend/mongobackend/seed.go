// internal/app/backend/mongobackend/seed.go
package mongobackend

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.uber.org/zap"
)

// SeedDemo fills an empty database with a small demo inventory. It does
// nothing when any category already exists.
func (b *Backend) SeedDemo(ctx context.Context) error {
	n, err := b.categories.Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		b.log.Debug("demo seed skipped; categories exist", zap.Int64("count", n))
		return nil
	}

	now := time.Now().UTC()
	day := func(d int) *time.Time { t := now.AddDate(0, 0, d); return &t }

	cats := []models.AssetCategory{
		{Name: "Laptops", Type: "hardware", Description: "Company laptops, one per employee.",
			Policy: models.AssignmentPolicy{AssignableTo: models.AssignableToSingleEmployee}},
		{Name: "Monitors", Type: "hardware", Description: "Desk monitors for engineering.",
			Policy: models.AssignmentPolicy{AssignableTo: models.AssignableToDepartment, Departments: []string{"Engineering"}}},
		{Name: "Software Licences", Type: "software", AllowMultipleAssignments: true,
			Policy: models.AssignmentPolicy{AssignableTo: models.AssignableToTeam, MaxAssignments: 5}},
		{Name: "Office Supplies", Type: "consumable", IsConsumable: true, IsAllotted: true, TotalQuantity: 500,
			Policy: models.AssignmentPolicy{AssignableTo: models.AssignableToEmployee}},
	}
	for i := range cats {
		created, err := b.categories.Create(ctx, cats[i])
		if err != nil {
			return fmt.Errorf("seed category %q: %w", cats[i].Name, err)
		}
		cats[i] = created
	}

	emps := []models.Employee{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: "Engineering", Team: "Platform", Position: "Staff Engineer"},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Department: "Engineering", Team: "Compilers", Position: "Principal Engineer"},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Department: "Research", Team: "Cryptography", Position: "Researcher"},
		{FirstName: "Katherine", LastName: "Johnson", Email: "katherine@example.com", Department: "Research", Team: "Orbital", Position: "Analyst"},
		{FirstName: "Margaret", LastName: "Hamilton", Email: "margaret@example.com", Department: "Operations", Team: "Platform", Position: "Director"},
	}
	for i := range emps {
		created, err := b.employees.Create(ctx, emps[i])
		if err != nil {
			return fmt.Errorf("seed employee %q: %w", emps[i].FullName(), err)
		}
		emps[i] = created
	}

	items := []models.AssetItem{
		{Name: "MacBook Pro 14", Tag: "LT-0001", SerialNumber: "C02XL0001", CategoryID: cats[0].ID, Location: "HQ", Condition: "good", PurchaseDate: day(-400), PurchaseCost: 2399},
		{Name: "MacBook Pro 16", Tag: "LT-0002", SerialNumber: "C02XL0002", CategoryID: cats[0].ID, Location: "HQ", Condition: "good", PurchaseDate: day(-200), PurchaseCost: 2999},
		{Name: "ThinkPad X1 Carbon", Tag: "LT-0003", SerialNumber: "PF2ABC03", CategoryID: cats[0].ID, Location: "Remote", Condition: "fair", PurchaseDate: day(-800), PurchaseCost: 1899},
		{Name: "Dell XPS 13", Tag: "LT-0004", SerialNumber: "DX13004", CategoryID: cats[0].ID, Location: "HQ", Condition: "poor", Status: models.StatusUnderMaintenance, PurchaseCost: 1499},
		{Name: "LG UltraFine 27", Tag: "MN-0001", CategoryID: cats[1].ID, Location: "HQ", Condition: "good", PurchaseCost: 699},
		{Name: "Dell U2723QE", Tag: "MN-0002", CategoryID: cats[1].ID, Location: "HQ", Condition: "good", PurchaseCost: 579},
		{Name: "IDE Licence Pack", Tag: "SW-0001", CategoryID: cats[2].ID, PurchaseCost: 1200},
		{Name: "Design Suite", Tag: "SW-0002", CategoryID: cats[2].ID, PurchaseCost: 900},
		{Name: "Notebook Box", Tag: "OS-0001", CategoryID: cats[3].ID, PurchaseCost: 45},
	}
	for i := range items {
		created, err := b.items.Create(ctx, items[i])
		if err != nil {
			return fmt.Errorf("seed asset %q: %w", items[i].Name, err)
		}
		items[i] = created
	}

	if _, err := b.maintenance.Create(ctx, models.MaintenanceRecord{
		AssetID: items[3].ID, Type: "repair", Technician: "In-house IT", Status: models.MaintenanceInProgress,
		Description: "Battery swelling; replacement ordered.", ConditionBefore: "poor", ScheduledDate: day(-3), Cost: 189,
	}); err != nil {
		return fmt.Errorf("seed maintenance: %w", err)
	}
	if _, err := b.maintenance.Create(ctx, models.MaintenanceRecord{
		AssetID: items[2].ID, Type: "inspection", Technician: "Vendor", Status: models.MaintenanceCompleted,
		Description: "Annual inspection.", ConditionBefore: "fair", ConditionAfter: "fair", ScheduledDate: day(-60), CompletedDate: day(-59), Cost: 40,
	}); err != nil {
		return fmt.Errorf("seed maintenance: %w", err)
	}
	if _, err := b.documents.Create(ctx, models.Document{
		AssetID: items[0].ID, Name: "Purchase invoice", Type: "invoice", URL: "https://files.example.com/invoices/LT-0001.pdf",
	}); err != nil {
		return fmt.Errorf("seed document: %w", err)
	}

	// A couple of live assignments so the unassign screens have data.
	if _, err := b.CreateAssignment(ctx, models.AssignmentRecord{
		AssetID: items[0].ID, EmployeeID: emps[0].ID, AssignmentType: models.AssignmentPermanent, AssignedDate: now.AddDate(0, -6, 0),
	}); err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}
	if _, err := b.CreateAssignment(ctx, models.AssignmentRecord{
		AssetID: items[6].ID, EmployeeID: emps[1].ID, AssignmentType: models.AssignmentTemporary, AssignedDate: now.AddDate(0, -1, 0), ExpectedReturnDate: day(30),
	}); err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}

	b.log.Info("demo data seeded",
		zap.Int("categories", len(cats)),
		zap.Int("employees", len(emps)),
		zap.Int("asset_items", len(items)))
	return nil
}
