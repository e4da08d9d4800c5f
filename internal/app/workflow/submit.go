// internal/app/workflow/submit.go
package workflow

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// DefaultRedirectDelay is how long the success screen shows before the
// browser follows the redirect.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Submitter is the slice of the backend a submission needs.
type Submitter interface {
	CreateAssignment(ctx context.Context, rec models.AssignmentRecord) (models.AssignmentRecord, error)
	UnassignAssignment(ctx context.Context, req models.UnassignRequest) error
	ListAssetItems(ctx context.Context, categoryID string) ([]models.AssetItem, error)
}

// Pair is one (asset, recipient) combination of a submission.
type Pair struct {
	AssetID    string
	EmployeeID string
}

// PairResult is the outcome of one pair's backend call.
type PairResult struct {
	Pair
	Record *models.AssignmentRecord
	Err    error
}

// SubmitOptions carries the confirmation-form fields and tuning.
type SubmitOptions struct {
	Now            time.Time
	AssignmentType string
	ExpectedReturn *time.Time
	Notes          string
	Condition      string

	// MaxConcurrent bounds in-flight backend calls; zero means unbounded.
	MaxConcurrent int
	RedirectDelay time.Duration
}

// Outcome reports what a submission did.
type Outcome struct {
	Results []PairResult
	// Err is the first error encountered, nil on success.
	Err error
	// Assets is the refreshed asset list of the category after success.
	Assets []models.AssetItem
	// RefreshErr is set when the post-success refresh failed.
	RefreshErr error

	RedirectURL   string
	RedirectAfter time.Duration
}

// Failed returns the pairs whose call failed.
func (o Outcome) Failed() []PairResult {
	var out []PairResult
	for _, r := range o.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Submit fires one backend call per pair of the cross product concurrently
// and waits for all of them. Any failure fails the whole submission: the
// controller returns to Idle with selections cleared and the first error as
// its notification. Calls that succeeded are not rolled back.
//
// On success the category's asset list is re-fetched and a redirect is
// prepared: to the inventory, or for a reassign to the assign screen with the
// freed asset preselected.
func (c *Controller) Submit(ctx context.Context, s Submitter, opts SubmitOptions) (Outcome, error) {
	if c.State != ConfirmationOpen {
		return Outcome{}, ErrInvalidTransition
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}

	c.State = Submitting
	c.Notice = nil
	pairs := c.Pairs()

	var call func(context.Context, Pair) (*models.AssignmentRecord, error)
	if c.Mode == ModeUnassign {
		call = func(ctx context.Context, p Pair) (*models.AssignmentRecord, error) {
			return nil, s.UnassignAssignment(ctx, unassignRequest(p, opts))
		}
	} else {
		call = func(ctx context.Context, p Pair) (*models.AssignmentRecord, error) {
			rec, err := s.CreateAssignment(ctx, assignmentRecord(p, opts))
			if err != nil {
				return nil, err
			}
			return &rec, nil
		}
	}

	results, err := dispatch(ctx, pairs, opts.MaxConcurrent, call)
	out := Outcome{Results: results, Err: err}
	if err != nil {
		c.State = Failure
		c.reset()
		c.Notice = errorNotice(fmt.Sprintf("Failed to %s assets: %s", c.Mode, backend.Message(err)))
		return out, nil
	}

	c.State = Success
	c.Notice = successNotice(successMessage(c.Mode, c.Assets.Len(), c.Entities.Len()))

	out.Assets, out.RefreshErr = s.ListAssetItems(ctx, c.CategoryID)
	out.RedirectAfter = opts.RedirectDelay
	out.RedirectURL = c.redirectURL()
	return out, nil
}

// dispatch runs call for every pair concurrently. All calls run to
// completion; the returned error is the first one any call produced.
func dispatch(ctx context.Context, pairs []Pair, limit int, call func(context.Context, Pair) (*models.AssignmentRecord, error)) ([]PairResult, error) {
	results := make([]PairResult, len(pairs))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range pairs {
		g.Go(func() error {
			rec, err := call(ctx, p)
			results[i] = PairResult{Pair: p, Record: rec, Err: err}
			return err
		})
	}
	return results, g.Wait()
}

func assignmentRecord(p Pair, opts SubmitOptions) models.AssignmentRecord {
	typ := opts.AssignmentType
	if typ == "" {
		typ = models.AssignmentPermanent
	}
	rec := models.AssignmentRecord{
		AssetID:        p.AssetID,
		EmployeeID:     p.EmployeeID,
		AssignmentType: typ,
		AssignedDate:   opts.Now,
		Status:         models.AssignmentActive,
		Notes:          opts.Notes,
		Condition:      opts.Condition,
	}
	if typ == models.AssignmentTemporary {
		rec.ExpectedReturnDate = opts.ExpectedReturn
	}
	return rec
}

func unassignRequest(p Pair, opts SubmitOptions) models.UnassignRequest {
	return models.UnassignRequest{
		AssetID:    p.AssetID,
		EmployeeID: p.EmployeeID,
		ReturnDate: opts.Now,
		Notes:      opts.Notes,
		Condition:  opts.Condition,
	}
}

func successMessage(mode Mode, assets, entities int) string {
	if mode == ModeUnassign {
		return fmt.Sprintf("Successfully unassigned %s from %s.", plural(assets, "asset"), plural(entities, "employee"))
	}
	return fmt.Sprintf("Successfully assigned %s to %s.", plural(assets, "asset"), plural(entities, "employee"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func (c *Controller) redirectURL() string {
	cat := url.PathEscape(c.CategoryID)
	if c.Mode == ModeUnassign && c.Reassign && c.Assets.Len() > 0 {
		return "/assign/" + cat + "?preselect=" + url.QueryEscape(c.Assets.IDs[0])
	}
	return "/inventory/" + cat
}
