package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resource-dashboard/backend/internal/models"
	"github.com/resource-dashboard/backend/internal/seed"
)

const dateLayout = "2006-01-02"

// Schema describes the tables the seed source reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS resources (
	id               TEXT PRIMARY KEY,
	client           TEXT NOT NULL,
	project          TEXT NOT NULL,
	client_partner   TEXT NOT NULL,
	delivery_lead    TEXT NOT NULL DEFAULT '',
	region           TEXT NOT NULL DEFAULT '',
	start_date       DATE NOT NULL,
	end_date         DATE NOT NULL,
	resource         TEXT NOT NULL,
	service_line     TEXT NOT NULL,
	booking          NUMERIC(4,3) NOT NULL,
	performance      TEXT NOT NULL,
	is_contract      BOOLEAN NOT NULL DEFAULT FALSE,
	total_budget     BIGINT NOT NULL,
	burned_budget    BIGINT NOT NULL,
	remaining_budget BIGINT NOT NULL,
	burn_rate        INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS issues (
	id               TEXT PRIMARY KEY,
	client           TEXT NOT NULL,
	project          TEXT NOT NULL,
	client_partner   TEXT NOT NULL,
	raised_by        TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	resolution_owner TEXT NOT NULL DEFAULT '',
	escalated        BOOLEAN NOT NULL DEFAULT FALSE,
	rag_status       TEXT NOT NULL,
	date_created     DATE NOT NULL,
	date_resolved    DATE,
	position         SERIAL
);
CREATE TABLE IF NOT EXISTS issue_history (
	id         TEXT PRIMARY KEY,
	issue_id   TEXT NOT NULL REFERENCES issues(id),
	position   INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	actor      TEXT NOT NULL,
	action     TEXT NOT NULL,
	details    TEXT NOT NULL DEFAULT ''
);
`

// Store is a read-only seed source backed by PostgreSQL. Issue mutations made
// through the API are never written back.
type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// WithReadTx runs fn in a read-only repeatable-read transaction so every
// query sees the same snapshot.
func (s *Store) WithReadTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// LoadDataset reads resources and issues with their history.
func (s *Store) LoadDataset(ctx context.Context) (seed.Dataset, error) {
	var ds seed.Dataset
	err := s.WithReadTx(ctx, func(tx pgx.Tx) error {
		var err error
		if ds.Resources, err = listResources(ctx, tx); err != nil {
			return fmt.Errorf("list resources: %w", err)
		}
		if ds.Issues, err = listIssues(ctx, tx); err != nil {
			return fmt.Errorf("list issues: %w", err)
		}
		return nil
	})
	if err != nil {
		return seed.Dataset{}, err
	}
	ds.AssignIDs()
	return ds, nil
}

func listResources(ctx context.Context, tx pgx.Tx) ([]models.ResourceRecord, error) {
	rows, err := tx.Query(ctx, `SELECT id, client, project, client_partner, delivery_lead, region,
		start_date, end_date, resource, service_line, booking::float8, performance, is_contract,
		total_budget, burned_budget, remaining_budget, burn_rate
		FROM resources ORDER BY client ASC, project ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ResourceRecord
	for rows.Next() {
		var (
			r          models.ResourceRecord
			start, end time.Time
		)
		if err := rows.Scan(&r.ID, &r.Client, &r.Project, &r.ClientPartner, &r.DeliveryLead, &r.Region,
			&start, &end, &r.Resource, &r.ServiceLine, &r.Booking, &r.Performance, &r.IsContract,
			&r.TotalBudget, &r.BurnedBudget, &r.RemainingBudget, &r.BurnRate); err != nil {
			return nil, err
		}
		r.StartDate = start.Format(dateLayout)
		r.EndDate = end.Format(dateLayout)
		out = append(out, r)
	}
	return out, rows.Err()
}

func listIssues(ctx context.Context, tx pgx.Tx) ([]models.IssueRecord, error) {
	rows, err := tx.Query(ctx, `SELECT id, client, project, client_partner, raised_by, description,
		resolution_owner, escalated, rag_status, date_created, date_resolved
		FROM issues ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.IssueRecord
	index := map[string]int{}
	for rows.Next() {
		var (
			i        models.IssueRecord
			created  time.Time
			resolved *time.Time
		)
		if err := rows.Scan(&i.ID, &i.Client, &i.Project, &i.ClientPartner, &i.RaisedBy, &i.Description,
			&i.ResolutionOwner, &i.Escalated, &i.RAGStatus, &created, &resolved); err != nil {
			return nil, err
		}
		i.DateCreated = created.Format(dateLayout)
		if resolved != nil {
			day := resolved.Format(dateLayout)
			i.DateResolved = &day
		}
		index[i.ID] = len(out)
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hrows, err := tx.Query(ctx, `SELECT id, issue_id, created_at, actor, action, details
		FROM issue_history ORDER BY issue_id ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	defer hrows.Close()

	for hrows.Next() {
		var (
			h       models.HistoryEntry
			issueID string
			at      time.Time
		)
		if err := hrows.Scan(&h.ID, &issueID, &at, &h.User, &h.Action, &h.Details); err != nil {
			return nil, err
		}
		pos, ok := index[issueID]
		if !ok {
			continue
		}
		h.Timestamp = at.UTC().Format(time.RFC3339)
		out[pos].History = append(out[pos].History, h)
	}
	return out, hrows.Err()
}
