// internal/app/workflow/controller.go
//
// Package workflow is the assign / unassign state machine behind the
// inventory screens:
//
//	Idle → AssetsSelected → EntitySelectionOpen → ConfirmationOpen → Submitting → Success | Failure
//
// The Controller holds only identifiers and UI flags so it can be stored in
// the user's session between requests. Domain data is passed in per call as
// a Catalog, loaded fresh by the handler.
package workflow

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dalemusser/assetdesk/internal/app/policy/assignpolicy"
	"github.com/dalemusser/assetdesk/internal/domain/models"
)

var (
	// ErrInvalidTransition is returned when an action is not reachable from
	// the current state.
	ErrInvalidTransition = errors.New("workflow: invalid transition")
	// ErrUnknownAsset is returned when a referenced asset is not in the catalog.
	ErrUnknownAsset = errors.New("workflow: asset not found")
	// ErrUnknownEntity is returned when a referenced employee is not a candidate.
	ErrUnknownEntity = errors.New("workflow: entity not found")
)

// Catalog is the data a workflow step decides against: the category, its
// assets and the employees that may be selected as recipients.
type Catalog struct {
	Category  models.AssetCategory
	Assets    []models.AssetItem
	Employees []models.Employee
}

// Asset looks up an asset by id.
func (c Catalog) Asset(id string) (models.AssetItem, bool) {
	i := slices.IndexFunc(c.Assets, func(a models.AssetItem) bool { return a.ID == id })
	if i < 0 {
		return models.AssetItem{}, false
	}
	return c.Assets[i], true
}

// Employee looks up an employee by id.
func (c Catalog) Employee(id string) (models.Employee, bool) {
	i := slices.IndexFunc(c.Employees, func(e models.Employee) bool { return e.ID == id })
	if i < 0 {
		return models.Employee{}, false
	}
	return c.Employees[i], true
}

// Controller is the per-user workflow state for one category and mode.
type Controller struct {
	Mode       Mode   `json:"mode"`
	CategoryID string `json:"category_id"`
	State      State  `json:"state"`

	// Reassign marks an "unassign and reassign" flow: on success the user
	// lands on the assign screen with the freed asset preselected.
	Reassign bool `json:"reassign,omitempty"`

	Assets   Selection `json:"assets"`
	Entities Selection `json:"entities"`

	AssetSearch  string `json:"asset_search,omitempty"`
	EntitySearch string `json:"entity_search,omitempty"`

	Notice *Notification `json:"notice,omitempty"`
}

// New returns an idle controller.
func New(mode Mode, categoryID string) *Controller {
	return &Controller{Mode: mode, CategoryID: categoryID, State: Idle}
}

// Eligible reports whether asset may be selected in this controller's mode.
func (c *Controller) Eligible(asset models.AssetItem, category models.AssetCategory) bool {
	if c.Mode == ModeUnassign {
		return assignpolicy.IsAssetUnassignable(asset)
	}
	return assignpolicy.IsAssetAssignable(asset, category)
}

// Candidates returns the employees that may be selected as recipients.
//
// In assign mode this is the category's eligible entities. In unassign mode
// it is the employees currently holding any selected asset, falling back to
// the eligible entities when no holder is known.
func (c *Controller) Candidates(cat Catalog) []models.Employee {
	eligible := assignpolicy.EligibleEntities(cat.Category, cat.Employees)
	if c.Mode != ModeUnassign {
		return eligible
	}
	holders := make([]string, 0, c.Assets.Len())
	for _, id := range c.Assets.IDs {
		if a, ok := cat.Asset(id); ok && a.CurrentAssigneeID != "" && !slices.Contains(holders, a.CurrentAssigneeID) {
			holders = append(holders, a.CurrentAssigneeID)
		}
	}
	if len(holders) == 0 {
		return eligible
	}
	out := make([]models.Employee, 0, len(holders))
	for _, e := range cat.Employees {
		if slices.Contains(holders, e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// AllowMultiple reports whether several recipients may be selected at once.
func (c *Controller) AllowMultiple(cat Catalog) bool {
	return assignpolicy.AllowMultipleEmployees(cat.Category)
}

// ToggleAsset adds or removes an asset from the selection. Ineligible assets
// produce an error notification and are not selected.
func (c *Controller) ToggleAsset(cat Catalog, assetID string) error {
	if c.State != Idle && c.State != AssetsSelected {
		return ErrInvalidTransition
	}
	asset, ok := cat.Asset(assetID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
	}
	c.Notice = nil
	if !c.Assets.Has(asset.ID) && !c.Eligible(asset, cat.Category) {
		c.Notice = errorNotice(fmt.Sprintf("%s cannot be %sed in its current state (%s).", displayName(asset), c.Mode, asset.Status))
		return nil
	}
	c.Assets.Toggle(asset.ID)
	c.syncAssetState()
	return nil
}

// Preselect selects an asset without toggling, used when landing on the
// assign screen after a reassign. It only applies to an idle controller with
// nothing selected, so a later reload does not undo the user's choices.
// Missing or ineligible assets are ignored.
func (c *Controller) Preselect(cat Catalog, assetID string) {
	if c.State != Idle || c.Assets.Len() > 0 {
		return
	}
	asset, ok := cat.Asset(assetID)
	if !ok || c.Assets.Has(asset.ID) || !c.Eligible(asset, cat.Category) {
		return
	}
	c.Assets.Toggle(asset.ID)
	c.syncAssetState()
}

// Prune drops selected assets that are no longer present or eligible, as
// happens when the asset list is refreshed underneath a selection.
func (c *Controller) Prune(cat Catalog) []string {
	var dropped []string
	kept := c.Assets.IDs[:0:0]
	for _, id := range c.Assets.IDs {
		if a, ok := cat.Asset(id); ok && c.Eligible(a, cat.Category) {
			kept = append(kept, id)
			continue
		}
		dropped = append(dropped, id)
	}
	c.Assets.IDs = kept
	if c.State == Idle || c.State == AssetsSelected {
		c.syncAssetState()
	}
	return dropped
}

func (c *Controller) syncAssetState() {
	if c.Assets.Len() > 0 {
		c.State = AssetsSelected
	} else {
		c.State = Idle
	}
}

// OpenEntitySelection moves to the recipient picker. With no assets selected
// it sets an error notification and stays put.
func (c *Controller) OpenEntitySelection() error {
	if c.State != Idle && c.State != AssetsSelected {
		return ErrInvalidTransition
	}
	if c.Assets.Len() == 0 {
		c.Notice = errorNotice("Please select at least one asset.")
		return nil
	}
	c.Notice = nil
	c.State = EntitySelectionOpen
	return nil
}

// ToggleEntity selects or deselects a recipient. When the category allows a
// single recipient, selecting a new one replaces the previous choice.
func (c *Controller) ToggleEntity(cat Catalog, employeeID string) error {
	if c.State != EntitySelectionOpen {
		return ErrInvalidTransition
	}
	if !slices.ContainsFunc(c.Candidates(cat), func(e models.Employee) bool { return e.ID == employeeID }) {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, employeeID)
	}
	c.Notice = nil
	if c.AllowMultiple(cat) {
		c.Entities.Toggle(employeeID)
	} else {
		c.Entities.Replace(employeeID)
	}
	return nil
}

// OpenConfirmation moves to the confirmation step. It requires at least one
// recipient and, when the category caps assignments, no more than the cap.
func (c *Controller) OpenConfirmation(cat Catalog) error {
	if c.State != EntitySelectionOpen {
		return ErrInvalidTransition
	}
	if c.Entities.Len() == 0 {
		c.Notice = errorNotice("Please select at least one employee.")
		return nil
	}
	if c.Mode == ModeAssign && assignpolicy.ExceedsMaxAssignments(cat.Category, c.Entities.Len()) {
		c.Notice = errorNotice(fmt.Sprintf("%s allows at most %d recipients per asset.", cat.Category.Name, cat.Category.Policy.MaxAssignments))
		return nil
	}
	c.Notice = nil
	c.State = ConfirmationOpen
	return nil
}

// Back returns from the confirmation step to the recipient picker, keeping
// the selections.
func (c *Controller) Back() error {
	if c.State != ConfirmationOpen {
		return ErrInvalidTransition
	}
	c.State = EntitySelectionOpen
	return nil
}

// Cancel closes the picker or confirmation and returns to Idle, clearing all
// selections and search terms.
func (c *Controller) Cancel() error {
	if c.State != EntitySelectionOpen && c.State != ConfirmationOpen {
		return ErrInvalidTransition
	}
	c.reset()
	return nil
}

// Clear drops the asset selection while still choosing assets.
func (c *Controller) Clear() {
	if c.State == Idle || c.State == AssetsSelected {
		c.reset()
	}
}

func (c *Controller) reset() {
	c.Assets.Clear()
	c.Entities.Clear()
	c.AssetSearch = ""
	c.EntitySearch = ""
	c.State = Idle
}

// Pairs returns the full cross product of selected assets and recipients in
// selection order: every asset paired with every recipient.
func (c *Controller) Pairs() []Pair {
	pairs := make([]Pair, 0, c.Assets.Len()*c.Entities.Len())
	for _, a := range c.Assets.IDs {
		for _, e := range c.Entities.IDs {
			pairs = append(pairs, Pair{AssetID: a, EmployeeID: e})
		}
	}
	return pairs
}

func displayName(a models.AssetItem) string {
	switch {
	case a.Name != "" && a.Tag != "":
		return a.Name + " (" + a.Tag + ")"
	case a.Name != "":
		return a.Name
	case a.Tag != "":
		return a.Tag
	}
	return "Asset " + a.ID
}
