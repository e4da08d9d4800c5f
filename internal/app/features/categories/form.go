package categories

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/assetdesk/internal/app/system/formutil"
	"github.com/dalemusser/assetdesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/assetdesk/internal/app/system/inputval"
	"github.com/dalemusser/assetdesk/internal/domain/models"
)

var assignableLabels = []option{
	{Value: models.AssignableToSingleEmployee, Label: "One employee"},
	{Value: models.AssignableToEmployee, Label: "Employees"},
	{Value: models.AssignableToDepartment, Label: "Departments"},
	{Value: models.AssignableToTeam, Label: "Teams"},
}

// categoryInput is the validated shape of the category form.
type categoryInput struct {
	Name           string `validate:"required,max=120" label:"Name"`
	Type           string `validate:"max=60" label:"Type"`
	Description    string `validate:"max=4000" label:"Description"`
	AssignableTo   string `validate:"required,oneof=single_employee employee department team" label:"Assignable to"`
	MaxAssignments int    `validate:"gte=0,lte=10000" label:"Max assignments"`
	TotalQuantity  int    `validate:"gte=0" label:"Total quantity"`
}

func readForm(r *http.Request) formData {
	return formData{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Type:           strings.TrimSpace(r.FormValue("type")),
		Description:    strings.TrimSpace(r.FormValue("description")),
		AssignableTo:   strings.TrimSpace(r.FormValue("assignable_to")),
		Departments:    r.FormValue("departments"),
		Teams:          r.FormValue("teams"),
		MaxAssignments: strings.TrimSpace(r.FormValue("max_assignments")),
		TotalQuantity:  strings.TrimSpace(r.FormValue("total_quantity")),
		IsConsumable:   r.FormValue("is_consumable") != "",
		AllowMultiple:  r.FormValue("allow_multiple_assignments") != "",
		IsAllotted:     r.FormValue("is_allotted") != "",
	}
}

func fromCategory(c models.AssetCategory) formData {
	f := formData{
		ID:            c.ID,
		Name:          c.Name,
		Type:          c.Type,
		Description:   c.Description,
		AssignableTo:  c.Policy.AssignableTo,
		Departments:   strings.Join(c.Policy.Departments, ", "),
		Teams:         strings.Join(c.Policy.Teams, ", "),
		IsConsumable:  c.IsConsumable,
		AllowMultiple: c.AllowMultipleAssignments,
		IsAllotted:    c.IsAllotted,
	}
	if c.Policy.MaxAssignments > 0 {
		f.MaxAssignments = strconv.Itoa(c.Policy.MaxAssignments)
	}
	if c.TotalQuantity > 0 {
		f.TotalQuantity = strconv.Itoa(c.TotalQuantity)
	}
	return f
}

func (f *formData) fill(r *http.Request, title, action string) {
	formutil.SetBase(&f.Base, r, title, "/categories")
	f.Action = action
	if f.AssignableTo == "" {
		f.AssignableTo = models.AssignableToSingleEmployee
	}
	f.AssignableOptions = make([]option, len(assignableLabels))
	for i, o := range assignableLabels {
		o.Selected = o.Value == f.AssignableTo
		f.AssignableOptions[i] = o
	}
}

func atoi(s, label string) (int, string) {
	if s == "" {
		return 0, ""
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, label + " must be a whole number."
	}
	return n, ""
}

// toCategory validates f and builds the category it describes. The returned
// message is non-empty when f is invalid.
func (f formData) toCategory() (models.AssetCategory, string) {
	maxN, msg := atoi(f.MaxAssignments, "Max assignments")
	if msg != "" {
		return models.AssetCategory{}, msg
	}
	qty, msg := atoi(f.TotalQuantity, "Total quantity")
	if msg != "" {
		return models.AssetCategory{}, msg
	}
	in := categoryInput{
		Name:           f.Name,
		Type:           f.Type,
		Description:    f.Description,
		AssignableTo:   f.AssignableTo,
		MaxAssignments: maxN,
		TotalQuantity:  qty,
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return models.AssetCategory{}, res.First()
	}
	if f.IsAllotted && qty == 0 {
		return models.AssetCategory{}, "Allotted categories need a total quantity."
	}

	c := models.AssetCategory{
		ID:                       f.ID,
		Name:                     f.Name,
		Type:                     f.Type,
		Description:              htmlsanitize.Sanitize(f.Description),
		IsConsumable:             f.IsConsumable,
		AllowMultipleAssignments: f.AllowMultiple,
		IsAllotted:               f.IsAllotted,
		TotalQuantity:            qty,
		Policy: models.AssignmentPolicy{
			AssignableTo:   f.AssignableTo,
			MaxAssignments: maxN,
		},
	}
	// Allow-lists only apply to the dimension the policy names.
	switch f.AssignableTo {
	case models.AssignableToDepartment:
		c.Policy.Departments = formutil.SplitList(f.Departments)
	case models.AssignableToTeam:
		c.Policy.Teams = formutil.SplitList(f.Teams)
	}
	return c, ""
}
