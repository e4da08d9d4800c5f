// internal/app/system/uistate/uistate.go
//
// Package uistate keeps per-browser UI state in a signed cookie session: the
// in-progress assign/unassign workflow and one-shot flash notifications.
// One workflow is tracked at a time; opening a different category or mode
// starts a fresh one.
package uistate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	DefaultSessionName = "assetdesk-ui"

	workflowKey = "workflow"
	flashKey    = "flash"

	// maxCookieLength raises securecookie's 4096 default; selections of a
	// few hundred ids still fit in one cookie.
	maxCookieLength = 8192
)

// Config configures a Store.
type Config struct {
	Key    string
	Name   string
	Domain string
	Secure bool
}

// Store reads and writes UI state in a cookie session.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	log     *zap.Logger
}

// New builds a Store. The key must be at least 32 bytes.
func New(cfg Config, logger *zap.Logger) (*Store, error) {
	if len(cfg.Key) < 32 {
		return nil, fmt.Errorf("session key must be at least 32 bytes, got %d", len(cfg.Key))
	}
	if cfg.Name == "" {
		cfg.Name = DefaultSessionName
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cs := sessions.NewCookieStore([]byte(cfg.Key))
	cs.MaxLength(maxCookieLength)
	cs.Options = &sessions.Options{
		Domain:   cfg.Domain,
		Path:     "/",
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("ui state store initialized",
		zap.String("name", cfg.Name),
		zap.Bool("secure", cfg.Secure),
		zap.String("domain", cfg.Domain))
	return &Store{cookies: cs, name: cfg.Name, log: logger}, nil
}

// session returns the request's session, starting a fresh one when the
// cookie is missing or cannot be decoded.
func (s *Store) session(r *http.Request) *sessions.Session {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			s.log.Warn("ui state cookie invalid, using fresh session", zap.Error(err))
		} else {
			s.log.Error("ui state store error, using fresh session", zap.Error(err))
		}
	}
	return sess
}

// Workflow returns the stored controller for mode and categoryID, or a fresh
// idle controller when none matches.
func (s *Store) Workflow(r *http.Request, mode workflow.Mode, categoryID string) *workflow.Controller {
	sess := s.session(r)
	raw, _ := sess.Values[workflowKey].(string)
	if raw == "" {
		return workflow.New(mode, categoryID)
	}
	var c workflow.Controller
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.log.Warn("discarding undecodable workflow state", zap.Error(err))
		return workflow.New(mode, categoryID)
	}
	if c.Mode != mode || c.CategoryID != categoryID {
		return workflow.New(mode, categoryID)
	}
	return &c
}

// SaveWorkflow stores c as the active workflow.
func (s *Store) SaveWorkflow(w http.ResponseWriter, r *http.Request, c *workflow.Controller) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode workflow: %w", err)
	}
	sess := s.session(r)
	sess.Values[workflowKey] = string(b)
	return sess.Save(r, w)
}

// ClearWorkflow drops the active workflow.
func (s *Store) ClearWorkflow(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, workflowKey)
	return sess.Save(r, w)
}

// Flash stores a notification to show on the next page render.
func (s *Store) Flash(w http.ResponseWriter, r *http.Request, n workflow.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	sess := s.session(r)
	sess.Values[flashKey] = string(b)
	return sess.Save(r, w)
}

// PopFlash returns and clears the pending flash notification, if any.
func (s *Store) PopFlash(w http.ResponseWriter, r *http.Request) *workflow.Notification {
	sess := s.session(r)
	raw, _ := sess.Values[flashKey].(string)
	if raw == "" {
		return nil
	}
	delete(sess.Values, flashKey)
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("clear flash failed", zap.Error(err))
	}
	var n workflow.Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil
	}
	return &n
}
