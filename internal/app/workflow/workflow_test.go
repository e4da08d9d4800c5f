package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/assetdesk/internal/domain/models"
)

type fakeSubmitter struct {
	mu        sync.Mutex
	created   []models.AssignmentRecord
	unassigns []models.UnassignRequest
	failOn    map[Pair]error
	listCalls int
	assets    []models.AssetItem
}

func (f *fakeSubmitter) CreateAssignment(_ context.Context, rec models.AssignmentRecord) (models.AssignmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, rec)
	if err := f.failOn[Pair{rec.AssetID, rec.EmployeeID}]; err != nil {
		return models.AssignmentRecord{}, err
	}
	rec.ID = "rec-" + rec.AssetID + "-" + rec.EmployeeID
	return rec, nil
}

func (f *fakeSubmitter) UnassignAssignment(_ context.Context, req models.UnassignRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unassigns = append(f.unassigns, req)
	return f.failOn[Pair{req.AssetID, req.EmployeeID}]
}

func (f *fakeSubmitter) ListAssetItems(_ context.Context, _ string) ([]models.AssetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.assets, nil
}

func laptopCatalog() Catalog {
	return Catalog{
		Category: models.AssetCategory{ID: "cat1", Name: "Laptops", Policy: models.AssignmentPolicy{AssignableTo: models.AssignableToSingleEmployee}},
		Assets: []models.AssetItem{
			{ID: "a1", Name: "MacBook", Tag: "LT-1", Status: models.StatusAvailable},
			{ID: "a2", Name: "ThinkPad", Tag: "LT-2", Status: models.StatusAvailable},
			{ID: "a3", Name: "Dell", Status: models.StatusAssigned, HasActiveAssignment: true, CurrentAssigneeID: "e2"},
			{ID: "a4", Name: "Broken", Status: models.StatusUnderMaintenance},
		},
		Employees: []models.Employee{
			{ID: "e1", FirstName: "Ada", LastName: "Lovelace", Department: "Engineering", Team: "Core"},
			{ID: "e2", FirstName: "Alan", LastName: "Turing", Department: "Research", Team: "Crypto"},
			{ID: "e3", FirstName: "Grace", LastName: "Hopper", Department: "Engineering", Team: "Compilers"},
		},
	}
}

func teamCatalog() Catalog {
	cat := laptopCatalog()
	cat.Category.Policy = models.AssignmentPolicy{AssignableTo: models.AssignableToTeam}
	return cat
}

func toConfirmation(t *testing.T, c *Controller, cat Catalog, assets, entities []string) {
	t.Helper()
	for _, id := range assets {
		if err := c.ToggleAsset(cat, id); err != nil {
			t.Fatalf("ToggleAsset(%s): %v", id, err)
		}
	}
	if err := c.OpenEntitySelection(); err != nil {
		t.Fatalf("OpenEntitySelection: %v", err)
	}
	for _, id := range entities {
		if err := c.ToggleEntity(cat, id); err != nil {
			t.Fatalf("ToggleEntity(%s): %v", id, err)
		}
	}
	if err := c.OpenConfirmation(cat); err != nil {
		t.Fatalf("OpenConfirmation: %v", err)
	}
	if c.State != ConfirmationOpen {
		t.Fatalf("State = %s, want %s (notice %+v)", c.State, ConfirmationOpen, c.Notice)
	}
}

func TestSelection_ToggleAndReplace(t *testing.T) {
	var s Selection
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("c")
	s.Toggle("b")
	if got := strings.Join(s.Slice(), ","); got != "a,c" {
		t.Errorf("after toggles = %q, want a,c", got)
	}

	s.Replace("x")
	if got := strings.Join(s.Slice(), ","); got != "x" {
		t.Errorf("after Replace = %q, want x", got)
	}
	if s.Replace("x") || s.Len() != 0 {
		t.Errorf("Replace of sole selection should clear, got %v", s.IDs)
	}
}

func TestToggleAsset_StateTransitions(t *testing.T) {
	cat := laptopCatalog()
	c := New(ModeAssign, "cat1")

	if err := c.ToggleAsset(cat, "a1"); err != nil {
		t.Fatal(err)
	}
	if c.State != AssetsSelected {
		t.Errorf("State = %s, want %s", c.State, AssetsSelected)
	}
	if err := c.ToggleAsset(cat, "a1"); err != nil {
		t.Fatal(err)
	}
	if c.State != Idle {
		t.Errorf("State after deselect = %s, want %s", c.State, Idle)
	}
}

func TestToggleAsset_RejectsIneligible(t *testing.T) {
	cat := laptopCatalog()

	tests := []struct {
		name  string
		mode  Mode
		asset string
		ok    bool
	}{
		{"assign available", ModeAssign, "a1", true},
		{"assign assigned", ModeAssign, "a3", false},
		{"assign maintenance", ModeAssign, "a4", false},
		{"unassign assigned", ModeUnassign, "a3", true},
		{"unassign available", ModeUnassign, "a1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.mode, "cat1")
			if err := c.ToggleAsset(cat, tt.asset); err != nil {
				t.Fatal(err)
			}
			if c.Assets.Has(tt.asset) != tt.ok {
				t.Errorf("selected = %v, want %v", c.Assets.Has(tt.asset), tt.ok)
			}
			if !tt.ok && (c.Notice == nil || c.Notice.Type != NoticeError) {
				t.Errorf("expected error notice, got %+v", c.Notice)
			}
		})
	}
}

func TestToggleAsset_UnknownAsset(t *testing.T) {
	c := New(ModeAssign, "cat1")
	err := c.ToggleAsset(laptopCatalog(), "nope")
	if !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("err = %v, want ErrUnknownAsset", err)
	}
}

func TestOpenEntitySelection_RequiresAssets(t *testing.T) {
	c := New(ModeAssign, "cat1")
	if err := c.OpenEntitySelection(); err != nil {
		t.Fatal(err)
	}
	if c.State != Idle {
		t.Errorf("State = %s, want %s", c.State, Idle)
	}
	if c.Notice == nil || c.Notice.Type != NoticeError {
		t.Errorf("expected error notice, got %+v", c.Notice)
	}
}

func TestToggleEntity_SingleReplaces(t *testing.T) {
	cat := laptopCatalog()
	c := New(ModeAssign, "cat1")
	_ = c.ToggleAsset(cat, "a1")
	_ = c.OpenEntitySelection()

	_ = c.ToggleEntity(cat, "e1")
	_ = c.ToggleEntity(cat, "e2")
	if got := strings.Join(c.Entities.Slice(), ","); got != "e2" {
		t.Errorf("entities = %q, want e2", got)
	}
}

func TestToggleEntity_TeamAllowsMany(t *testing.T) {
	cat := teamCatalog()
	c := New(ModeAssign, "cat1")
	_ = c.ToggleAsset(cat, "a1")
	_ = c.OpenEntitySelection()

	_ = c.ToggleEntity(cat, "e1")
	_ = c.ToggleEntity(cat, "e2")
	if got := strings.Join(c.Entities.Slice(), ","); got != "e1,e2" {
		t.Errorf("entities = %q, want e1,e2", got)
	}
}

func TestToggleEntity_RejectsIneligible(t *testing.T) {
	cat := laptopCatalog()
	cat.Category.Policy = models.AssignmentPolicy{AssignableTo: models.AssignableToDepartment, Departments: []string{"Engineering"}}
	c := New(ModeAssign, "cat1")
	_ = c.ToggleAsset(cat, "a1")
	_ = c.OpenEntitySelection()

	if err := c.ToggleEntity(cat, "e2"); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("err = %v, want ErrUnknownEntity", err)
	}
	if c.Entities.Len() != 0 {
		t.Errorf("ineligible employee was selected")
	}
}

func TestOpenConfirmation_Validation(t *testing.T) {
	cat := teamCatalog()
	c := New(ModeAssign, "cat1")
	_ = c.ToggleAsset(cat, "a1")
	_ = c.OpenEntitySelection()

	if err := c.OpenConfirmation(cat); err != nil {
		t.Fatal(err)
	}
	if c.State != EntitySelectionOpen || c.Notice == nil {
		t.Fatalf("empty recipients: State = %s notice = %+v", c.State, c.Notice)
	}

	cat.Category.Policy.MaxAssignments = 1
	_ = c.ToggleEntity(cat, "e1")
	_ = c.ToggleEntity(cat, "e3")
	_ = c.OpenConfirmation(cat)
	if c.State != EntitySelectionOpen || c.Notice == nil || c.Notice.Type != NoticeError {
		t.Fatalf("over cap: State = %s notice = %+v", c.State, c.Notice)
	}
}

func TestCancel_ClearsEverything(t *testing.T) {
	cat := laptopCatalog()
	c := New(ModeAssign, "cat1")
	toConfirmation(t, c, cat, []string{"a1"}, []string{"e1"})
	c.AssetSearch = "mac"

	if err := c.Cancel(); err != nil {
		t.Fatal(err)
	}
	if c.State != Idle || c.Assets.Len() != 0 || c.Entities.Len() != 0 || c.AssetSearch != "" {
		t.Errorf("after Cancel: %+v", c)
	}
	if err := c.Cancel(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Cancel from Idle err = %v, want ErrInvalidTransition", err)
	}
}

func TestPairs_CrossProduct(t *testing.T) {
	c := New(ModeAssign, "cat1")
	c.Assets.IDs = []string{"a1", "a2"}
	c.Entities.IDs = []string{"e1", "e2"}

	got := c.Pairs()
	want := []Pair{{"a1", "e1"}, {"a1", "e2"}, {"a2", "e1"}, {"a2", "e2"}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubmit_AssignSuccess(t *testing.T) {
	cat := teamCatalog()
	fake := &fakeSubmitter{assets: cat.Assets}
	c := New(ModeAssign, "cat1")
	toConfirmation(t, c, cat, []string{"a1", "a2"}, []string{"e1", "e2"})

	out, err := c.Submit(context.Background(), fake, SubmitOptions{Notes: "desk 4"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Err != nil {
		t.Fatalf("out.Err = %v", out.Err)
	}
	if len(fake.created) != 4 {
		t.Errorf("CreateAssignment calls = %d, want 4", len(fake.created))
	}
	for _, rec := range fake.created {
		if rec.Status != models.AssignmentActive || rec.AssignmentType != models.AssignmentPermanent || rec.Notes != "desk 4" {
			t.Errorf("unexpected record %+v", rec)
		}
	}
	if c.State != Success {
		t.Errorf("State = %s, want %s", c.State, Success)
	}
	if c.Notice == nil || c.Notice.Message != "Successfully assigned 2 assets to 2 employees." {
		t.Errorf("notice = %+v", c.Notice)
	}
	if fake.listCalls != 1 || len(out.Assets) != len(cat.Assets) {
		t.Errorf("refresh not performed: calls=%d assets=%d", fake.listCalls, len(out.Assets))
	}
	if out.RedirectURL != "/inventory/cat1" || out.RedirectAfter != DefaultRedirectDelay {
		t.Errorf("redirect = %q after %v", out.RedirectURL, out.RedirectAfter)
	}
}

func TestSubmit_OneFailureFailsAll(t *testing.T) {
	cat := teamCatalog()
	boom := errors.New("backend exploded")
	fake := &fakeSubmitter{failOn: map[Pair]error{{"a2", "e1"}: boom}}
	c := New(ModeAssign, "cat1")
	toConfirmation(t, c, cat, []string{"a1", "a2"}, []string{"e1", "e2"})

	out, err := c.Submit(context.Background(), fake, SubmitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.created) != 4 {
		t.Errorf("all four calls should still run, got %d", len(fake.created))
	}
	if !errors.Is(out.Err, boom) {
		t.Errorf("out.Err = %v, want %v", out.Err, boom)
	}
	if failed := out.Failed(); len(failed) != 1 || failed[0].Pair != (Pair{"a2", "e1"}) {
		t.Errorf("Failed() = %+v", failed)
	}
	if c.State != Idle || c.Assets.Len() != 0 || c.Entities.Len() != 0 {
		t.Errorf("after failure: state=%s assets=%v entities=%v", c.State, c.Assets.IDs, c.Entities.IDs)
	}
	if c.Notice == nil || c.Notice.Type != NoticeError || !strings.Contains(c.Notice.Message, "backend exploded") {
		t.Errorf("notice = %+v", c.Notice)
	}
	if fake.listCalls != 0 {
		t.Errorf("refresh should not run on failure")
	}
}

func TestSubmit_UnassignReassignRedirect(t *testing.T) {
	cat := laptopCatalog()
	fake := &fakeSubmitter{}
	c := New(ModeUnassign, "cat1")
	c.Reassign = true
	toConfirmation(t, c, cat, []string{"a3"}, []string{"e2"})

	out, err := c.Submit(context.Background(), fake, SubmitOptions{Condition: "good"})
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.unassigns) != 1 || fake.unassigns[0].AssetID != "a3" || fake.unassigns[0].EmployeeID != "e2" {
		t.Fatalf("unassigns = %+v", fake.unassigns)
	}
	if fake.unassigns[0].ReturnDate.IsZero() {
		t.Errorf("return date not set")
	}
	if out.RedirectURL != "/assign/cat1?preselect=a3" {
		t.Errorf("redirect = %q", out.RedirectURL)
	}
}

func TestSubmit_RequiresConfirmation(t *testing.T) {
	c := New(ModeAssign, "cat1")
	if _, err := c.Submit(context.Background(), &fakeSubmitter{}, SubmitOptions{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestCandidates_UnassignUsesHolders(t *testing.T) {
	cat := laptopCatalog()
	c := New(ModeUnassign, "cat1")
	_ = c.ToggleAsset(cat, "a3")

	got := c.Candidates(cat)
	if len(got) != 1 || got[0].ID != "e2" {
		t.Errorf("Candidates = %+v, want only e2", got)
	}
}

func TestPrune_DropsStaleSelections(t *testing.T) {
	cat := laptopCatalog()
	c := New(ModeAssign, "cat1")
	_ = c.ToggleAsset(cat, "a1")
	_ = c.ToggleAsset(cat, "a2")

	cat.Assets[0].Status = models.StatusAssigned
	dropped := c.Prune(cat)
	if len(dropped) != 1 || dropped[0] != "a1" {
		t.Errorf("dropped = %v, want [a1]", dropped)
	}
	if c.State != AssetsSelected || !c.Assets.Has("a2") {
		t.Errorf("after prune: %+v", c)
	}
}

func TestPreselect(t *testing.T) {
	cat := laptopCatalog()
	c := New(ModeAssign, "cat1")
	c.Preselect(cat, "a3")
	if c.Assets.Len() != 0 {
		t.Fatalf("ineligible asset preselected: %v", c.Assets.Slice())
	}
	c.Preselect(cat, "a2")
	c.Preselect(cat, "a1")
	if got := strings.Join(c.Assets.Slice(), ","); got != "a2" || c.State != AssetsSelected {
		t.Errorf("assets = %q state = %s", got, c.State)
	}
}

func TestPreselect_IgnoredAfterUserChoice(t *testing.T) {
	cat := laptopCatalog()
	c := New(ModeAssign, "cat1")
	c.Preselect(cat, "a2")
	if err := c.ToggleAsset(cat, "a2"); err != nil {
		t.Fatal(err)
	}
	if err := c.ToggleAsset(cat, "a1"); err != nil {
		t.Fatal(err)
	}

	c.Preselect(cat, "a2")

	if got := strings.Join(c.Assets.Slice(), ","); got != "a1" {
		t.Errorf("assets = %q, want a1", got)
	}
}
