package assignflow

import (
	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
)

type assetOption struct {
	ID       string
	Name     string
	Tag      string
	Status   string
	Holder   string
	Selected bool
	Eligible bool
}

type entityOption struct {
	ID         string
	Name       string
	Email      string
	Department string
	Team       string
	Selected   bool
}

// confirmForm echoes the confirmation fields back after a validation error.
type confirmForm struct {
	AssignmentType string
	ExpectedReturn string
	Notes          string
	Condition      string
	Reassign       bool
}

type workflowData struct {
	viewdata.BaseVM

	Mode       string // "assign" or "unassign"
	Verb       string // "Assign" or "Unassign"
	ActionBase string // "/assign/{categoryID}"

	CategoryID    string
	CategoryName  string
	AssignableTo  string
	AllowMultiple bool
	MaxRecipients int

	// Flash renders inside the panel so HTMX swaps carry it.
	Flash *viewdata.Notice

	State       string
	ShowPicker  bool
	ShowConfirm bool

	AssetSearch  string
	EntitySearch string

	Assets     []assetOption
	AssetPager paging.Pager
	Candidates []entityOption

	SelectedAssets   []assetOption
	SelectedEntities []entityOption
	PairCount        int

	Form            confirmForm
	AssignmentTypes []string
}

type successData struct {
	viewdata.BaseVM
	Mode          string
	RedirectURL   string
	RedirectMS    int64
	RedirectSecs  string
	AssetCount    int
	EntityCount   int
	RefreshFailed bool
}
