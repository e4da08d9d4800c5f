// internal/app/workflow/state.go
package workflow

import "slices"

// Mode selects which backend call the workflow fires per pair.
type Mode string

const (
	ModeAssign   Mode = "assign"
	ModeUnassign Mode = "unassign"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeAssign || m == ModeUnassign }

// State is a step of the selection → confirmation → submission flow.
type State string

const (
	Idle                State = "idle"
	AssetsSelected      State = "assets_selected"
	EntitySelectionOpen State = "entity_selection_open"
	ConfirmationOpen    State = "confirmation_open"
	Submitting          State = "submitting"
	Success             State = "success"
	Failure             State = "failure"
)

// Notification kinds.
const (
	NoticeError   = "error"
	NoticeSuccess = "success"
)

// Notification is the single transient message shown to the user.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func errorNotice(msg string) *Notification   { return &Notification{Type: NoticeError, Message: msg} }
func successNotice(msg string) *Notification { return &Notification{Type: NoticeSuccess, Message: msg} }

// Selection is an insertion-ordered set of ids.
type Selection struct {
	IDs []string `json:"ids,omitempty"`
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool { return slices.Contains(s.IDs, id) }

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.IDs) }

// Toggle adds id if absent and removes it if present. It returns whether id
// is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if i := slices.Index(s.IDs, id); i >= 0 {
		s.IDs = slices.Delete(s.IDs, i, i+1)
		return false
	}
	s.IDs = append(s.IDs, id)
	return true
}

// Replace makes id the only selected value, or clears the selection when id
// was already the sole selection.
func (s *Selection) Replace(id string) bool {
	if len(s.IDs) == 1 && s.IDs[0] == id {
		s.IDs = nil
		return false
	}
	s.IDs = []string{id}
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() { s.IDs = nil }

// Slice returns a copy of the selected ids in selection order.
func (s *Selection) Slice() []string { return slices.Clone(s.IDs) }
