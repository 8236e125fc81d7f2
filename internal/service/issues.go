package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resource-dashboard/backend/internal/models"
)

var ErrAlreadyResolved = errors.New("issue already resolved")

type IssueFilter struct {
	ClientPartner string
	// Escalated is nil when the criterion is not set.
	Escalated *bool
	RAGStatus string
}

// FilterIssues returns the issues matching every supplied criterion, in their
// original order.
func FilterIssues(issues []models.IssueRecord, f IssueFilter) []models.IssueRecord {
	out := issues
	if !isUnset(f.ClientPartner) {
		out = filterIssues(out, func(i models.IssueRecord) bool {
			return i.ClientPartner == f.ClientPartner
		})
	}
	if f.Escalated != nil {
		want := *f.Escalated
		out = filterIssues(out, func(i models.IssueRecord) bool {
			return i.Escalated == want
		})
	}
	if !isUnset(f.RAGStatus) {
		out = filterIssues(out, func(i models.IssueRecord) bool {
			return string(i.RAGStatus) == f.RAGStatus
		})
	}
	return out
}

// SummarizeIssues computes the issue dashboard boxes. Callers pass the full
// issue list here, not the filtered table rows.
func SummarizeIssues(issues []models.IssueRecord) models.IssueSummaryStats {
	stats := models.IssueSummaryStats{ByClient: make([]models.ClientCount, 0)}
	index := make(map[string]int)
	for _, i := range issues {
		if i.IsOpen() {
			stats.TotalOpen++
		}
		if i.Escalated {
			stats.Escalated++
		}
		switch i.RAGStatus {
		case models.RAGRed:
			stats.BySeverity.Red++
		case models.RAGAmber:
			stats.BySeverity.Amber++
		case models.RAGGreen:
			stats.BySeverity.Green++
		default:
		}
		pos, ok := index[i.Client]
		if !ok {
			pos = len(stats.ByClient)
			index[i.Client] = pos
			stats.ByClient = append(stats.ByClient, models.ClientCount{Client: i.Client})
		}
		stats.ByClient[pos].Count++
	}
	return stats
}

// CreateIssue builds a new open issue with a single creation history entry.
func CreateIssue(fields models.IssueFields, actor string, now time.Time) models.IssueRecord {
	issue := models.IssueRecord{
		ID:          uuid.NewString(),
		DateCreated: FormatDate(now),
	}
	applyFields(&issue, fields)
	issue.History = []models.HistoryEntry{
		newHistoryEntry(actor, now, models.ActionCreated,
			fmt.Sprintf("Issue created and assigned to %s", fields.ResolutionOwner)),
	}
	return issue
}

// EditIssue replaces the editable fields of existing and appends one update
// entry. Identity, creation date, resolution date and prior history are kept.
func EditIssue(existing models.IssueRecord, fields models.IssueFields, actor string, now time.Time) models.IssueRecord {
	updated := existing
	applyFields(&updated, fields)
	updated.History = appendHistory(existing.History,
		newHistoryEntry(actor, now, models.ActionUpdated, "Issue details updated"))
	return updated
}

// ResolveIssue closes an open issue on the calendar day of now.
func ResolveIssue(existing models.IssueRecord, actor string, now time.Time, note string) (models.IssueRecord, error) {
	if !existing.IsOpen() {
		return models.IssueRecord{}, ErrAlreadyResolved
	}
	resolved := existing
	day := FormatDate(now)
	resolved.DateResolved = &day
	details := "Issue resolved"
	if note != "" {
		details = fmt.Sprintf("Issue resolved: %s", note)
	}
	resolved.History = appendHistory(existing.History,
		newHistoryEntry(actor, now, models.ActionResolved, details))
	return resolved, nil
}

// AppendIssue returns a new list with issue added at the end.
func AppendIssue(issues []models.IssueRecord, issue models.IssueRecord) []models.IssueRecord {
	out := make([]models.IssueRecord, len(issues), len(issues)+1)
	copy(out, issues)
	return append(out, issue)
}

// ReplaceIssue returns a new list with the issue of the same id swapped in.
// When no issue matches, the input list is returned and found is false.
func ReplaceIssue(issues []models.IssueRecord, issue models.IssueRecord) ([]models.IssueRecord, bool) {
	pos := -1
	for i := range issues {
		if issues[i].ID == issue.ID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return issues, false
	}
	out := make([]models.IssueRecord, len(issues))
	copy(out, issues)
	out[pos] = issue
	return out, true
}

func FindIssue(issues []models.IssueRecord, id string) (models.IssueRecord, bool) {
	for _, i := range issues {
		if i.ID == id {
			return i, true
		}
	}
	return models.IssueRecord{}, false
}

func EscalatedIssues(issues []models.IssueRecord) []models.IssueRecord {
	return filterIssues(issues, func(i models.IssueRecord) bool { return i.Escalated })
}

// IssueClientPartners lists distinct client partners in first-seen order.
func IssueClientPartners(issues []models.IssueRecord) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, i := range issues {
		if seen[i.ClientPartner] {
			continue
		}
		seen[i.ClientPartner] = true
		out = append(out, i.ClientPartner)
	}
	return out
}

// IssueTrend counts, for each of the days ending on end, the issues still open
// at the close of that day and the issues resolved on it.
func IssueTrend(issues []models.IssueRecord, end time.Time, days int) []models.TrendPoint {
	if days <= 0 {
		return []models.TrendPoint{}
	}
	last := calendarDay(end)
	points := make([]models.TrendPoint, 0, days)
	for n := days - 1; n >= 0; n-- {
		day := last.AddDate(0, 0, -n)
		point := models.TrendPoint{Date: FormatDate(day)}
		for _, i := range issues {
			created, ok := parseDate(i.DateCreated)
			if !ok || created.After(day) {
				continue
			}
			if i.DateResolved == nil {
				point.Open++
				continue
			}
			resolved, ok := parseDate(*i.DateResolved)
			if !ok {
				continue
			}
			switch {
			case resolved.Equal(day):
				point.Resolved++
			case resolved.After(day):
				point.Open++
			}
		}
		points = append(points, point)
	}
	return points
}

func applyFields(issue *models.IssueRecord, f models.IssueFields) {
	issue.Client = f.Client
	issue.Project = f.Project
	issue.ClientPartner = f.ClientPartner
	issue.RaisedBy = f.RaisedBy
	issue.Description = f.Description
	issue.ResolutionOwner = f.ResolutionOwner
	issue.Escalated = f.Escalated
	issue.RAGStatus = f.RAGStatus
}

func appendHistory(history []models.HistoryEntry, entry models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(history), len(history)+1)
	copy(out, history)
	return append(out, entry)
}

func newHistoryEntry(actor string, now time.Time, action, details string) models.HistoryEntry {
	return models.HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: now.UTC().Format(time.RFC3339),
		User:      actor,
		Action:    action,
		Details:   details,
	}
}

func filterIssues(issues []models.IssueRecord, keep func(models.IssueRecord) bool) []models.IssueRecord {
	out := make([]models.IssueRecord, 0, len(issues))
	for _, i := range issues {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}
