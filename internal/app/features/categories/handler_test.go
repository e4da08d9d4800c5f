package categories_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/features/categories"
	uierrors "github.com/dalemusser/assetdesk/internal/app/features/errors"
	"github.com/dalemusser/assetdesk/internal/app/system/uistate"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newBrowser(t *testing.T) (*testutil.Browser, *testutil.FakeBackend) {
	t.Helper()
	logger := zap.NewNop()
	fb := testutil.NewFakeBackend()
	state, err := uistate.New(uistate.Config{Key: "0123456789abcdef0123456789abcdef"}, logger)
	if err != nil {
		t.Fatalf("uistate.New: %v", err)
	}
	h := categories.NewHandler(fb, state, uierrors.NewErrorLogger(logger), logger)
	r := chi.NewRouter()
	r.Mount("/categories", categories.Routes(h))
	return testutil.NewBrowser(r), fb
}

func category(fb *testutil.FakeBackend, name string) (models.AssetCategory, bool) {
	for _, c := range fb.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return models.AssetCategory{}, false
}

func TestServeList(t *testing.T) {
	b, _ := newBrowser(t)

	rec := b.Do(testutil.NewRequest("GET", "/categories?q=lic"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Licences")
	rec.AssertNotContains(t, "Laptops")
	rec.AssertContains(t, `action="/categories/cat-licences/delete"`)
}

func TestCreate(t *testing.T) {
	b, fb := newBrowser(t)

	rec := b.Do(testutil.NewFormRequest("/categories", url.Values{
		"name":            {"Monitors"},
		"type":            {"hardware"},
		"description":     {`<p>27" <script>alert(1)</script>displays</p>`},
		"assignable_to":   {models.AssignableToDepartment},
		"departments":     {"Engineering, Research, engineering"},
		"teams":           {"ignored"},
		"max_assignments": {"2"},
	}))

	rec.AssertRedirect(t, "/categories")
	c, ok := category(fb, "Monitors")
	if !ok {
		t.Fatal("category not created")
	}
	if got := c.Policy.Departments; len(got) != 2 || got[0] != "Engineering" || got[1] != "Research" {
		t.Errorf("departments = %v", got)
	}
	if len(c.Policy.Teams) != 0 {
		t.Errorf("teams = %v, want none for a department policy", c.Policy.Teams)
	}
	if c.Policy.MaxAssignments != 2 {
		t.Errorf("max assignments = %d, want 2", c.Policy.MaxAssignments)
	}
	if c.Description != `<p>27&#34; displays</p>` {
		t.Errorf("description = %q", c.Description)
	}

	rec = b.Do(testutil.NewRequest("GET", "/categories"))
	rec.AssertContains(t, `Category &#34;Monitors&#34; created.`)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing name", url.Values{"assignable_to": {models.AssignableToEmployee}}, "Name is required."},
		{"bad policy", url.Values{"name": {"X"}, "assignable_to": {"everyone"}}, "Assignable to must be one of"},
		{"bad number", url.Values{"name": {"X"}, "assignable_to": {models.AssignableToTeam}, "max_assignments": {"two"}}, "Max assignments must be a whole number."},
		{"negative", url.Values{"name": {"X"}, "assignable_to": {models.AssignableToTeam}, "max_assignments": {"-1"}}, "Max assignments must be 0 or more."},
		{"allotted without quantity", url.Values{"name": {"X"}, "assignable_to": {models.AssignableToTeam}, "is_allotted": {"on"}}, "need a total quantity"},
		{"duplicate", url.Values{"name": {"LAPTOPS"}, "assignable_to": {models.AssignableToEmployee}}, "already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, fb := newBrowser(t)
			before := len(fb.Categories)

			rec := b.Do(testutil.NewFormRequest("/categories", tt.form))

			rec.AssertStatus(t, http.StatusUnprocessableEntity)
			rec.AssertContains(t, tt.want)
			if len(fb.Categories) != before {
				t.Errorf("categories = %d, want %d", len(fb.Categories), before)
			}
		})
	}
}

func TestEdit(t *testing.T) {
	b, fb := newBrowser(t)

	rec := b.Do(testutil.NewRequest("GET", "/categories/cat-licences/edit"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `value="Licences"`)
	rec.AssertContains(t, `<option value="team" selected>`)

	rec = b.Do(testutil.NewFormRequest("/categories/cat-licences/edit", url.Values{
		"name":                       {"Software licences"},
		"assignable_to":              {models.AssignableToTeam},
		"teams":                      {"Core\nCompilers"},
		"allow_multiple_assignments": {"on"},
	}))
	rec.AssertRedirect(t, "/categories")

	c, ok := category(fb, "Software licences")
	if !ok {
		t.Fatal("category not renamed")
	}
	if len(c.Policy.Teams) != 2 || !c.AllowMultipleAssignments {
		t.Errorf("updated = %+v", c)
	}
	if c.CreatedAt.IsZero() {
		t.Error("created_at lost on update")
	}
}

func TestEdit_RenameToExisting(t *testing.T) {
	b, _ := newBrowser(t)

	rec := b.Do(testutil.NewFormRequest("/categories/cat-licences/edit", url.Values{
		"name":          {"laptops"},
		"assignable_to": {models.AssignableToTeam},
	}))

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	rec.AssertContains(t, "Another category already uses that name.")
}

func TestEdit_NotFound(t *testing.T) {
	b, _ := newBrowser(t)

	rec := b.Do(testutil.NewRequest("GET", "/categories/nope/edit"))

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete(t *testing.T) {
	b, fb := newBrowser(t)

	rec := b.Do(testutil.NewFormRequest("/categories/cat-licences/delete", url.Values{}))

	rec.AssertRedirect(t, "/categories")
	if _, ok := category(fb, "Licences"); ok {
		t.Error("category still present")
	}
	rec = b.Do(testutil.NewRequest("GET", "/categories"))
	rec.AssertContains(t, "Category deleted.")
}

func TestDelete_Refused(t *testing.T) {
	b, fb := newBrowser(t)
	fb.Fail["DeleteCategory"] = &backend.Error{Op: "DELETE /asset-categories/cat-laptops", Status: http.StatusConflict, Message: "Category still has 4 asset items."}

	rec := b.Do(testutil.NewFormRequest("/categories/cat-laptops/delete", url.Values{}))
	rec.AssertRedirect(t, "/categories")

	rec = b.Do(testutil.NewRequest("GET", "/categories"))
	rec.AssertContains(t, "Could not delete the category: Category still has 4 asset items.")
	rec.AssertContains(t, "Laptops")
}
