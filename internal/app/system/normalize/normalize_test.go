package normalize

import (
	"reflect"
	"testing"

	"github.com/dalemusser/assetdesk/internal/domain/models"
)

func TestID(t *testing.T) {
	tests := []struct {
		name   string
		input  map[string]any
		want   string
		wantOK bool
	}{
		{"id field", map[string]any{"id": "a"}, "a", true},
		{"_id field", map[string]any{"_id": "b"}, "b", true},
		{"id wins over _id", map[string]any{"id": "a", "_id": "b"}, "a", true},
		{"empty id falls back", map[string]any{"id": "", "_id": "b"}, "b", true},
		{"numeric id", map[string]any{"id": float64(42)}, "42", true},
		{"extended json oid", map[string]any{"_id": map[string]any{"$oid": "507f1f77bcf86cd799439011"}}, "507f1f77bcf86cd799439011", true},
		{"neither", map[string]any{}, "", false},
		{"nil map", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ID(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ID(%v) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSameID(t *testing.T) {
	if !SameID(map[string]any{"id": "x"}, map[string]any{"_id": "x"}) {
		t.Error("expected id and _id with the same value to match")
	}
	if SameID(map[string]any{}, map[string]any{}) {
		t.Error("entities without ids must not match")
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"available", "available"},
		{"Available", "available"},
		{"  Under Maintenance  ", "under_maintenance"},
		{"maintenance-requested", "maintenance_requested"},
		{"in_maintenance", "under_maintenance"},
		{"ASSIGNED", "assigned"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Status(tt.input); got != tt.want {
				t.Errorf("Status(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssignableTo(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "single_employee"},
		{"Department", "department"},
		{"teams", "team"},
		{"single-employee", "single_employee"},
		{"employee", "employee"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := AssignableTo(tt.input); got != tt.want {
				t.Errorf("AssignableTo(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryParam(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"search term", "search term"},
		{"  trimmed  ", "trimmed"},
		{"UPPERCASE", "UPPERCASE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := QueryParam(tt.input); got != tt.want {
				t.Errorf("QueryParam(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"categoryId", "category_id"},
		{"hasActiveAssignment", "has_active_assignment"},
		{"assetID", "asset_id"},
		{"_id", "_id"},
		{"serial_number", "serial_number"},
		{"ID", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SnakeCase(tt.input); got != tt.want {
				t.Errorf("SnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSnakeKeys_SnakeWins(t *testing.T) {
	in := map[string]any{
		"categoryId":  "camel",
		"category_id": "snake",
		"nested":      map[string]any{"isConsumable": true},
	}
	out := SnakeKeys(in).(map[string]any)
	if out["category_id"] != "snake" {
		t.Errorf("category_id = %v, want snake", out["category_id"])
	}
	nested := out["nested"].(map[string]any)
	if nested["is_consumable"] != true {
		t.Errorf("nested key not converted: %v", nested)
	}
}

func TestCategory_PolicyFallbacks(t *testing.T) {
	t.Run("nested policy", func(t *testing.T) {
		c := Category(map[string]any{
			"_id":  "c1",
			"name": " Laptops ",
			"assignment_policies": map[string]any{
				"assignable_to":             "department",
				"assignable_to_departments": []any{"Engineering", "IT"},
				"max_assignments":           float64(3),
			},
		})
		if c.ID != "c1" || c.Name != "Laptops" {
			t.Errorf("id/name = %q/%q", c.ID, c.Name)
		}
		want := models.AssignmentPolicy{
			AssignableTo:   "department",
			Departments:    []string{"Engineering", "IT"},
			MaxAssignments: 3,
		}
		if !reflect.DeepEqual(c.Policy, want) {
			t.Errorf("Policy = %+v, want %+v", c.Policy, want)
		}
	})

	t.Run("legacy can_be_assigned_to", func(t *testing.T) {
		c := Category(map[string]any{"id": "c2", "canBeAssignedTo": "team", "isConsumable": true})
		if c.Policy.AssignableTo != "team" {
			t.Errorf("AssignableTo = %q, want team", c.Policy.AssignableTo)
		}
		if !c.IsConsumable {
			t.Error("IsConsumable should be true from camelCase key")
		}
	})

	t.Run("unset defaults to single employee", func(t *testing.T) {
		c := Category(map[string]any{"id": "c3"})
		if c.Policy.AssignableTo != models.AssignableToSingleEmployee {
			t.Errorf("AssignableTo = %q, want single_employee", c.Policy.AssignableTo)
		}
	})
}

func TestAssetItem_AssigneeShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"flat id", map[string]any{"current_assignee_id": "e1"}, "e1"},
		{"camel id", map[string]any{"currentAssigneeId": "e2"}, "e2"},
		{"nested object", map[string]any{"current_assignee": map[string]any{"_id": "e3"}}, "e3"},
		{"assigned_to string", map[string]any{"assigned_to": "e4"}, "e4"},
		{"none", map[string]any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssetItem(tt.raw).CurrentAssigneeID; got != tt.want {
				t.Errorf("CurrentAssigneeID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssetItem_StatusDefaults(t *testing.T) {
	if got := AssetItem(map[string]any{"id": "a"}).Status; got != models.StatusAvailable {
		t.Errorf("missing status = %q, want available", got)
	}
	if got := AssetItem(map[string]any{"id": "a", "is_assigned": true}).Status; got != models.StatusAssigned {
		t.Errorf("is_assigned status = %q, want assigned", got)
	}
	if got := AssetItem(map[string]any{"id": "a", "status": "Under Maintenance"}).Status; got != models.StatusUnderMaintenance {
		t.Errorf("status = %q, want under_maintenance", got)
	}
}

func TestEmployee_Shapes(t *testing.T) {
	e := Employee(map[string]any{
		"_id":            "e1",
		"name":           "Ada Lovelace King",
		"department":     map[string]any{"name": "Engineering"},
		"assignedAssets": []any{"a1", map[string]any{"id": "a2"}},
	})
	if e.FirstName != "Ada" || e.LastName != "Lovelace King" {
		t.Errorf("name split = %q / %q", e.FirstName, e.LastName)
	}
	if e.Department != "Engineering" {
		t.Errorf("Department = %q", e.Department)
	}
	if !reflect.DeepEqual(e.AssignedAssetIDs, []string{"a1", "a2"}) {
		t.Errorf("AssignedAssetIDs = %v", e.AssignedAssetIDs)
	}
}

func TestAssignmentRecord_Defaults(t *testing.T) {
	r := AssignmentRecord(map[string]any{
		"id":               "r1",
		"asset":            map[string]any{"_id": "a1"},
		"employeeId":       "e1",
		"actualReturnDate": "2024-03-01",
	})
	if r.AssetID != "a1" || r.EmployeeID != "e1" {
		t.Errorf("refs = %q/%q", r.AssetID, r.EmployeeID)
	}
	if r.Status != models.AssignmentReturned {
		t.Errorf("Status = %q, want returned", r.Status)
	}
	if r.AssignmentType != models.AssignmentPermanent {
		t.Errorf("AssignmentType = %q, want PERMANENT", r.AssignmentType)
	}
}
