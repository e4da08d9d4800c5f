package categories

import (
	"html/template"

	"github.com/dalemusser/assetdesk/internal/app/system/formutil"
	"github.com/dalemusser/assetdesk/internal/app/system/search"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
)

type listRow struct {
	ID             string
	Name           string
	Type           string
	AssignableTo   string
	Consumable     bool
	MultipleAssign bool
	MaxAssignments int
	Description    template.HTML
}

type listData struct {
	viewdata.BaseVM
	Params  search.Params
	Columns []string
	Rows    []listRow
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

// formData backs both the new and edit pages.
type formData struct {
	formutil.Base

	ID     string // empty on the new page
	Action string

	Name           string
	Type           string
	Description    string
	AssignableTo   string
	Departments    string
	Teams          string
	MaxAssignments string
	TotalQuantity  string
	IsConsumable   bool
	AllowMultiple  bool
	IsAllotted     bool

	AssignableOptions []option
}
