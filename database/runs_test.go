package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/nercheck/helper"
	"github.com/siherrmann/nercheck/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(passed bool) *model.CheckRun {
	run := model.NewCheckRun(model.DefaultCheckConfig())
	run.Passed = passed
	run.PathA = model.EntitySequence{
		{Text: "Donald Trump", Label: "PER", Start: 0, End: 12, Metadata: model.Metadata{"confidence": 0.99}},
		{Text: "Hillary Clinton", Label: "PER", Start: 39, End: 54},
	}
	run.PathB = run.PathA
	run.PathC = run.PathA
	if !passed {
		run.PathC = run.PathA[:1]
		run.Mismatch = "entity sequences differ"
	}
	return run
}

func TestRunsNewRunsDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewRunsDBHandler", func(t *testing.T) {
		runsDbHandler, err := NewRunsDBHandler(database, true)
		assert.NoError(t, err, "Expected NewRunsDBHandler to not return an error")
		require.NotNil(t, runsDbHandler, "Expected NewRunsDBHandler to return a non-nil instance")
		require.NotNil(t, runsDbHandler.db.Instance, "Expected a non-nil database connection instance")
	})

	t.Run("Second call without force reuses functions", func(t *testing.T) {
		_, err := NewRunsDBHandler(database, false)
		assert.NoError(t, err)
	})

	t.Run("Invalid call NewRunsDBHandler with nil database", func(t *testing.T) {
		_, err := NewRunsDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating RunsDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})

	t.Run("Invalid call NewRunsDBHandler without instance", func(t *testing.T) {
		_, err := NewRunsDBHandler(&helper.Database{}, false)
		assert.Error(t, err)
	})
}

func TestRunsInsert(t *testing.T) {
	database := initDB(t)
	runsDbHandler, err := NewRunsDBHandler(database, true)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Insert passed run", func(t *testing.T) {
		run := sampleRun(true)
		rid := run.RID

		err := runsDbHandler.InsertRun(ctx, run)
		require.NoError(t, err, "Expected InsertRun to not return an error")
		assert.NotZero(t, run.ID, "Expected inserted run to have an ID")
		assert.Equal(t, rid, run.RID, "Expected RID to be kept")
		assert.WithinDuration(t, time.Now(), run.CreatedAt, 5*time.Second, "Expected CreatedAt to be set")
		assert.True(t, run.PathA.Equal(sampleRun(true).PathA))

		require.NoError(t, runsDbHandler.DeleteRun(ctx, run.RID))
	})

	t.Run("Insert run without RID generates one", func(t *testing.T) {
		run := sampleRun(true)
		run.RID = uuid.Nil

		require.NoError(t, runsDbHandler.InsertRun(ctx, run))
		assert.NotEqual(t, uuid.Nil, run.RID)

		require.NoError(t, runsDbHandler.DeleteRun(ctx, run.RID))
	})

	t.Run("Insert run with empty sequences", func(t *testing.T) {
		run := model.NewCheckRun(model.CheckConfig{Text: "", Language: "en", MinFreq: 1})
		run.Passed = true

		require.NoError(t, runsDbHandler.InsertRun(ctx, run))
		assert.Empty(t, run.PathA)
		assert.Empty(t, run.PathC)

		require.NoError(t, runsDbHandler.DeleteRun(ctx, run.RID))
	})

	t.Run("Insert nil run", func(t *testing.T) {
		err := runsDbHandler.InsertRun(ctx, nil)
		assert.Error(t, err)
	})
}

func TestRunsSelect(t *testing.T) {
	database := initDB(t)
	runsDbHandler, err := NewRunsDBHandler(database, true)
	require.NoError(t, err)
	ctx := context.Background()

	failed := sampleRun(false)
	require.NoError(t, runsDbHandler.InsertRun(ctx, failed))
	defer runsDbHandler.DeleteRun(ctx, failed.RID)

	t.Run("Select run by RID", func(t *testing.T) {
		run, err := runsDbHandler.SelectRun(ctx, failed.RID)
		require.NoError(t, err)
		assert.Equal(t, failed.ID, run.ID)
		assert.False(t, run.Passed)
		assert.Equal(t, "entity sequences differ", run.Mismatch)
		assert.Equal(t, model.SampleText, run.Text)
		assert.Len(t, run.PathC, 1)
		assert.True(t, run.PathA.Equal(failed.PathA))
		assert.Equal(t, true, run.Metadata["drop_determiners"])
	})

	t.Run("Select unknown run", func(t *testing.T) {
		_, err := runsDbHandler.SelectRun(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("Select recent runs newest first", func(t *testing.T) {
		passed := sampleRun(true)
		require.NoError(t, runsDbHandler.InsertRun(ctx, passed))
		defer runsDbHandler.DeleteRun(ctx, passed.RID)

		runs, err := runsDbHandler.SelectRuns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, passed.RID, runs[0].RID)
		assert.Equal(t, failed.RID, runs[1].RID)

		runs, err = runsDbHandler.SelectRuns(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})

	t.Run("Select runs with invalid limit", func(t *testing.T) {
		_, err := runsDbHandler.SelectRuns(ctx, 0)
		assert.Error(t, err)
	})
}

func TestRunsDelete(t *testing.T) {
	database := initDB(t)
	runsDbHandler, err := NewRunsDBHandler(database, true)
	require.NoError(t, err)
	ctx := context.Background()

	run := sampleRun(true)
	require.NoError(t, runsDbHandler.InsertRun(ctx, run))

	require.NoError(t, runsDbHandler.DeleteRun(ctx, run.RID))

	_, err = runsDbHandler.SelectRun(ctx, run.RID)
	assert.ErrorIs(t, err, ErrRunNotFound)

	t.Run("Delete unknown run is a no-op", func(t *testing.T) {
		assert.NoError(t, runsDbHandler.DeleteRun(ctx, uuid.New()))
	})
}
