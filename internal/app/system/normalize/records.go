// internal/app/system/normalize/records.go
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Record decoders take a raw JSON object (already decoded into map[string]any)
// and produce the canonical model. Keys are snake-cased first, so call sites
// may pass either spelling.

// Category builds a canonical AssetCategory, resolving the historical policy
// fallbacks once:
//
//	assignment_policies.assignable_to  →  can_be_assigned_to  →  single_employee
func Category(raw map[string]any) models.AssetCategory {
	m := snake(raw)
	id, _ := ID(m)

	pol := mapAt(m, "assignment_policies")
	if pol == nil {
		pol = mapAt(m, "assignment_policy")
	}

	assignable := str(pol, "assignable_to")
	if assignable == "" {
		assignable = str(m, "can_be_assigned_to", "assignable_to")
	}

	depts := strs(pol, "assignable_to_departments", "departments")
	if len(depts) == 0 {
		depts = strs(m, "assignable_to_departments")
	}
	teams := strs(pol, "assignable_to_teams", "teams")
	if len(teams) == 0 {
		teams = strs(m, "assignable_to_teams")
	}
	maxA := integer(pol, "max_assignments")
	if maxA == 0 {
		maxA = integer(m, "max_assignments")
	}

	name := Name(str(m, "name", "category_name"))
	c := models.AssetCategory{
		ID:                       id,
		Name:                     name,
		NameCI:                   text.Fold(name),
		Type:                     str(m, "type", "category_type"),
		Description:              str(m, "description"),
		IsConsumable:             boolean(m, "is_consumable", "consumable"),
		AllowMultipleAssignments: boolean(m, "allow_multiple_assignments", "multiple_assignments"),
		IsAllotted:               boolean(m, "is_allotted", "allotted"),
		TotalQuantity:            integer(m, "total_quantity", "quantity"),
		Policy: models.AssignmentPolicy{
			AssignableTo:   AssignableTo(assignable),
			Departments:    depts,
			Teams:          teams,
			MaxAssignments: maxA,
		},
	}
	if t := timePtr(m, "created_at"); t != nil {
		c.CreatedAt = *t
	}
	c.UpdatedAt = timePtr(m, "updated_at")
	return c
}

// AssetItem builds a canonical AssetItem. The current assignee may arrive as
// current_assignee_id, a nested current_assignee / assigned_to object, or a
// bare id under either of those names.
func AssetItem(raw map[string]any) models.AssetItem {
	m := snake(raw)
	id, _ := ID(m)

	status := Status(str(m, "status", "asset_status"))
	if status == "" && boolean(m, "is_assigned") {
		status = models.StatusAssigned
	}
	if status == "" {
		status = models.StatusAvailable
	}

	assignee := str(m, "current_assignee_id", "assigned_to_id", "employee_id")
	if assignee == "" {
		assignee = refID(m, "current_assignee", "assigned_to", "employee")
	}
	assignment := str(m, "current_assignment_id")
	if assignment == "" {
		assignment = refID(m, "current_assignment")
	}

	categoryID := str(m, "category_id", "asset_category_id")
	if categoryID == "" {
		categoryID = refID(m, "category")
	}

	name := Name(str(m, "name", "asset_name"))
	a := models.AssetItem{
		ID:                  id,
		Name:                name,
		NameCI:              text.Fold(name),
		Tag:                 str(m, "tag", "asset_tag"),
		SerialNumber:        str(m, "serial_number", "serial"),
		CategoryID:          categoryID,
		Status:              status,
		HasActiveAssignment: boolean(m, "has_active_assignment"),
		CurrentAssigneeID:   assignee,
		CurrentAssignmentID: assignment,
		Location:            str(m, "location"),
		Condition:           str(m, "condition"),
		PurchaseDate:        timePtr(m, "purchase_date"),
		PurchaseCost:        number(m, "purchase_cost", "cost"),
		Specs:               stringMap(m, "specifications", "specs"),
	}
	if t := timePtr(m, "created_at"); t != nil {
		a.CreatedAt = *t
	}
	a.UpdatedAt = timePtr(m, "updated_at")
	return a
}

// Employee builds a canonical Employee. Department and team may be strings or
// objects with a name.
func Employee(raw map[string]any) models.Employee {
	m := snake(raw)
	id, _ := ID(m)

	first, last := str(m, "first_name"), str(m, "last_name")
	if first == "" && last == "" {
		full := strings.Fields(str(m, "name", "full_name"))
		if len(full) > 0 {
			first = full[0]
			last = strings.Join(full[1:], " ")
		}
	}

	var assets []string
	if xs, ok := m["assigned_assets"].([]any); ok {
		for _, x := range xs {
			switch v := x.(type) {
			case map[string]any:
				if aid, ok := ID(v); ok {
					assets = append(assets, aid)
				}
			default:
				if s := idString(v); s != "" {
					assets = append(assets, s)
				}
			}
		}
	}

	e := models.Employee{
		ID:               id,
		FirstName:        Name(first),
		LastName:         Name(last),
		Email:            Email(str(m, "email")),
		Department:       nameOrString(m, "department", "department_name"),
		Team:             nameOrString(m, "team", "team_name"),
		Position:         str(m, "position", "job_title"),
		AssignedAssetIDs: assets,
	}
	e.FullNameCI = text.Fold(e.FullName())
	return e
}

// AssignmentRecord builds a canonical AssignmentRecord.
func AssignmentRecord(raw map[string]any) models.AssignmentRecord {
	m := snake(raw)
	id, _ := ID(m)

	assetID := str(m, "asset_id", "asset_item_id")
	if assetID == "" {
		assetID = refID(m, "asset", "asset_item")
	}
	empID := str(m, "employee_id", "assigned_to_id")
	if empID == "" {
		empID = refID(m, "employee", "assigned_to")
	}

	r := models.AssignmentRecord{
		ID:                 id,
		AssetID:            assetID,
		EmployeeID:         empID,
		AssignmentType:     strings.ToUpper(str(m, "assignment_type", "type")),
		ExpectedReturnDate: timePtr(m, "expected_return_date"),
		ActualReturnDate:   timePtr(m, "actual_return_date", "return_date"),
		Status:             strings.ToLower(str(m, "status")),
		Notes:              str(m, "notes"),
		Condition:          str(m, "condition", "condition_at_assignment"),
		ReturnNotes:        str(m, "return_notes"),
		ReturnCondition:    str(m, "return_condition", "condition_at_return"),
	}
	if t := timePtr(m, "assigned_date", "assignment_date", "created_at"); t != nil {
		r.AssignedDate = *t
	}
	if r.Status == "" {
		r.Status = models.AssignmentActive
		if r.ActualReturnDate != nil {
			r.Status = models.AssignmentReturned
		}
	}
	if r.AssignmentType == "" {
		r.AssignmentType = models.AssignmentPermanent
	}
	return r
}

// MaintenanceRecord builds a canonical MaintenanceRecord.
func MaintenanceRecord(raw map[string]any) models.MaintenanceRecord {
	m := snake(raw)
	id, _ := ID(m)

	assetID := str(m, "asset_id", "asset_item_id")
	if assetID == "" {
		assetID = refID(m, "asset", "asset_item")
	}
	return models.MaintenanceRecord{
		ID:              id,
		AssetID:         assetID,
		Type:            str(m, "maintenance_type", "type"),
		Technician:      nameOrString(m, "technician", "technician_name"),
		Status:          Status(str(m, "status")),
		Description:     str(m, "description", "notes"),
		ConditionBefore: str(m, "condition_before", "before_condition"),
		ConditionAfter:  str(m, "condition_after", "after_condition"),
		ScheduledDate:   timePtr(m, "scheduled_date", "maintenance_date", "date"),
		CompletedDate:   timePtr(m, "completed_date", "completion_date"),
		Cost:            number(m, "cost"),
	}
}

// Document builds a canonical Document.
func Document(raw map[string]any) models.Document {
	m := snake(raw)
	id, _ := ID(m)

	assetID := str(m, "asset_id")
	if assetID == "" {
		assetID = refID(m, "asset")
	}
	d := models.Document{
		ID:      id,
		AssetID: assetID,
		Name:    str(m, "name", "file_name", "title"),
		Type:    str(m, "document_type", "type"),
		URL:     str(m, "url", "file_url", "file_path"),
	}
	if t := timePtr(m, "uploaded_at", "created_at"); t != nil {
		d.UploadedAt = *t
	}
	return d
}

/*─────────────────────────────────────────────────────────────────────────────*
| field helpers                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func snake(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	m, _ := SnakeKeys(raw).(map[string]any)
	return m
}

func mapAt(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

// str returns the first non-empty string-ish value among keys.
func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64, int, int64:
			return idString(v)
		}
	}
	return ""
}

// refID returns the id of the first key holding either an object or a bare id.
func refID(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]any:
			if id, ok := ID(v); ok {
				return id
			}
		case string, float64, int, int64:
			if s := idString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func nameOrString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if s := str(v, "name", "title"); s != "" {
				return s
			}
		}
	}
	return ""
}

func boolean(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch v := m[k].(type) {
		case bool:
			return v
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err == nil {
				return b
			}
		case float64:
			return v != 0
		}
	}
	return false
}

func number(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func integer(m map[string]any, keys ...string) int {
	return int(number(m, keys...))
}

func strs(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, x := range v {
				var s string
				switch y := x.(type) {
				case map[string]any:
					s = str(y, "name")
					if s == "" {
						s, _ = ID(y)
					}
				default:
					s = idString(y)
				}
				if s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		case []string:
			if len(v) > 0 {
				return v
			}
		case string:
			var out []string
			for _, part := range strings.Split(v, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func stringMap(m map[string]any, keys ...string) map[string]string {
	for _, k := range keys {
		if v, ok := m[k].(map[string]any); ok && len(v) > 0 {
			out := make(map[string]string, len(v))
			for kk, vv := range v {
				out[kk] = idString(vv)
			}
			return out
		}
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timePtr parses the first parseable timestamp among keys.
func timePtr(m map[string]any, keys ...string) *time.Time {
	for _, k := range keys {
		s, ok := m[k].(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				return &t
			}
		}
	}
	return nil
}
