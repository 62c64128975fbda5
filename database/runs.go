package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/nercheck/helper"
	"github.com/siherrmann/nercheck/model"
	loadSql "github.com/siherrmann/nercheck/sql"
)

// ErrRunNotFound is returned when no run has the requested RID
var ErrRunNotFound = errors.New("run not found")

// RunsDBHandlerFunctions defines the interface for Runs database operations.
type RunsDBHandlerFunctions interface {
	InsertRun(ctx context.Context, run *model.CheckRun) error
	SelectRun(ctx context.Context, rid uuid.UUID) (*model.CheckRun, error)
	SelectRuns(ctx context.Context, limit int) ([]*model.CheckRun, error)
	DeleteRun(ctx context.Context, rid uuid.UUID) error
}

// RunsDBHandler handles check run database operations
type RunsDBHandler struct {
	db *helper.Database
}

// NewRunsDBHandler creates a new runs database handler.
// It loads the run SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewRunsDBHandler(db *helper.Database, force bool) (*RunsDBHandler, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	runsDbHandler := &RunsDBHandler{
		db: db,
	}

	err := loadSql.LoadRunsSql(runsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load runs sql", err)
	}

	err = runsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized RunsDBHandler")

	return runsDbHandler, nil
}

// CreateTable creates the 'runs' table and its indexes if they do not exist.
func (h *RunsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_runs();`)
	if err != nil {
		return helper.NewError("init runs", err)
	}

	h.db.Logger.Info("Checked/created table runs")

	return nil
}

// InsertRun stores a run and fills in its ID, RID and CreatedAt
func (h *RunsDBHandler) InsertRun(ctx context.Context, run *model.CheckRun) error {
	if run == nil {
		return helper.NewError("run validation", fmt.Errorf("run is nil"))
	}

	var rid interface{}
	if run.RID != uuid.Nil {
		rid = run.RID
	}

	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_run($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rid,
		run.Text,
		run.Language,
		run.Passed,
		run.PathA,
		run.PathB,
		run.PathC,
		run.Mismatch,
		run.Metadata,
	)

	err := scanRun(row, run)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectRun returns the run with the given RID
func (h *RunsDBHandler) SelectRun(ctx context.Context, rid uuid.UUID) (*model.CheckRun, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_run($1)`,
		rid,
	)

	run := &model.CheckRun{}
	err := scanRun(row, run)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NewError("select run", fmt.Errorf("%w: %s", ErrRunNotFound, rid))
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return run, nil
}

// SelectRuns returns the most recent runs, newest first
func (h *RunsDBHandler) SelectRuns(ctx context.Context, limit int) ([]*model.CheckRun, error) {
	if limit <= 0 {
		return nil, helper.NewError("limit validation", fmt.Errorf("limit must be positive, got %d", limit))
	}

	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_runs($1)`,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var runs []*model.CheckRun
	for rows.Next() {
		run := &model.CheckRun{}
		if err := scanRun(rows, run); err != nil {
			return nil, helper.NewError("scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return runs, nil
}

// DeleteRun deletes a run by RID
func (h *RunsDBHandler) DeleteRun(ctx context.Context, rid uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_run($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner, run *model.CheckRun) error {
	return row.Scan(
		&run.ID,
		&run.RID,
		&run.Text,
		&run.Language,
		&run.Passed,
		&run.PathA,
		&run.PathB,
		&run.PathC,
		&run.Mismatch,
		&run.Metadata,
		&run.CreatedAt,
	)
}
