package store

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/resource-dashboard/backend/internal/models"
	"github.com/resource-dashboard/backend/internal/service"
)

var ErrIssueNotFound = errors.New("issue not found")

// Store keeps the dashboard datasets in memory. Resources never change after
// construction. Issues are replaced wholesale on every mutation, so a slice
// handed out by Issues is never written to again.
type Store struct {
	resources []models.ResourceRecord

	mu     sync.RWMutex
	issues []models.IssueRecord

	now    func() time.Time
	logger zerolog.Logger
}

func New(resources []models.ResourceRecord, issues []models.IssueRecord, logger zerolog.Logger) *Store {
	return &Store{
		resources: resources,
		issues:    issues,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock overrides the time source used for new history entries.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Now reads the store clock.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Resources() []models.ResourceRecord {
	return s.resources
}

// Issues returns the current issue snapshot.
func (s *Store) Issues() []models.IssueRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issues
}

func (s *Store) Issue(id string) (models.IssueRecord, error) {
	issue, ok := service.FindIssue(s.Issues(), id)
	if !ok {
		return models.IssueRecord{}, ErrIssueNotFound
	}
	return issue, nil
}

func (s *Store) CreateIssue(fields models.IssueFields, actor string) models.IssueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := service.CreateIssue(fields, actor, s.now())
	s.issues = service.AppendIssue(s.issues, issue)
	s.logger.Info().Str("issue_id", issue.ID).Str("actor", actor).Msg("issue created")
	return issue
}

func (s *Store) EditIssue(id string, fields models.IssueFields, actor string) (models.IssueRecord, error) {
	return s.update(id, "issue updated", actor, func(existing models.IssueRecord) (models.IssueRecord, error) {
		return service.EditIssue(existing, fields, actor, s.now()), nil
	})
}

func (s *Store) ResolveIssue(id, actor, note string) (models.IssueRecord, error) {
	return s.update(id, "issue resolved", actor, func(existing models.IssueRecord) (models.IssueRecord, error) {
		return service.ResolveIssue(existing, actor, s.now(), note)
	})
}

func (s *Store) update(id, msg, actor string, change func(models.IssueRecord) (models.IssueRecord, error)) (models.IssueRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := service.FindIssue(s.issues, id)
	if !ok {
		return models.IssueRecord{}, ErrIssueNotFound
	}
	updated, err := change(existing)
	if err != nil {
		return models.IssueRecord{}, err
	}
	next, found := service.ReplaceIssue(s.issues, updated)
	if !found {
		return models.IssueRecord{}, ErrIssueNotFound
	}
	s.issues = next
	s.logger.Info().Str("issue_id", id).Str("actor", actor).Msg(msg)
	return updated, nil
}
