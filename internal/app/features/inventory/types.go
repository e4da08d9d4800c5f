package inventory

import (
	"github.com/dalemusser/assetdesk/internal/app/system/paging"
	"github.com/dalemusser/assetdesk/internal/app/system/search"
	"github.com/dalemusser/assetdesk/internal/app/system/viewdata"
)

type statusCount struct {
	Status string
	Count  int
}

type categoryRow struct {
	ID           string
	Name         string
	Type         string
	AssignableTo string
	Total        int
	Available    int
	Assigned     int
	Counts       []statusCount
}

type categoriesData struct {
	viewdata.BaseVM
	Q          string
	Categories []categoryRow
}

type assetRow struct {
	ID           string
	Name         string
	Tag          string
	SerialNumber string
	Status       string
	Location     string
	AssigneeName string
	CanAssign    bool
	CanUnassign  bool
}

type assetsData struct {
	viewdata.BaseVM
	CategoryID   string
	CategoryName string
	Consumable   bool
	Params       search.Params
	Columns      []string
	Status       string
	Statuses     []string
	Rows         []assetRow
	Pager        paging.Pager
}
