package nercheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/nercheck/core/check"
	"github.com/siherrmann/nercheck/core/nlp"
	"github.com/siherrmann/nercheck/database"
	"github.com/siherrmann/nercheck/helper"
	"github.com/siherrmann/nercheck/model"
	loadSql "github.com/siherrmann/nercheck/sql"
)

// Checker runs the entity extraction equivalence check against an NLP capability
type Checker struct {
	NLP  nlp.Capability
	DB   *helper.Database        // Optional, set by UseRunStore
	Runs *database.RunsDBHandler // Optional run history
	// Logging
	log *slog.Logger
}

// NewChecker creates a checker for the given capability, which may be set later with UseDefaultCapability
func NewChecker(capability nlp.Capability) *Checker {
	return &Checker{
		NLP: capability,
		log: helper.NewLogger(os.Stdout, slog.LevelInfo),
	}
}

// SetLogger replaces the logger of the checker
func (c *Checker) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.log = logger
	}
}

// UseDefaultCapability sets up hugot with the NER model registered for language
func (c *Checker) UseDefaultCapability(language string) error {
	if _, err := nlp.LookupModel(language); err != nil {
		return helper.NewError("use default capability", err)
	}
	c.NLP = nlp.NewHugot(language, c.log)
	return nil
}

// UseRunStore connects to PostgreSQL and records every check from now on
func (c *Checker) UseRunStore(config *helper.DatabaseConfiguration) error {
	db, err := helper.NewDatabase("nercheck", config, c.log)
	if err != nil {
		return helper.NewError("connect run store", err)
	}

	err = loadSql.Init(db.Instance)
	if err != nil {
		_ = db.Close()
		return helper.NewError("initialize database extensions", err)
	}

	runs, err := database.NewRunsDBHandler(db, false)
	if err != nil {
		_ = db.Close()
		return helper.NewError("create runs handler", err)
	}

	c.DB = db
	c.Runs = runs
	return nil
}

// Check runs the equivalence check for config.
// On disagreement the returned run is marked as failed and the error wraps a *check.MismatchError.
// With a run store set, both passed and failed runs are recorded before returning.
func (c *Checker) Check(ctx context.Context, config *model.CheckConfig) (*model.CheckRun, error) {
	if c.NLP == nil {
		return nil, helper.NewError("check", fmt.Errorf("capability not set, use UseDefaultCapability() first"))
	}
	if config == nil {
		defaultConfig := model.DefaultCheckConfig()
		config = &defaultConfig
	}
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("check", err)
	}

	run := model.NewCheckRun(*config)

	c.log.Info("Running equivalence check", slog.String("rid", run.RID.String()), slog.String("language", config.Language), slog.Int("text_length", len(config.Text)))

	result, err := check.CheckEquivalence(ctx, c.NLP, config.Language, config.Text, nlp.OptionsFromConfig(*config)...)

	var mismatch *check.MismatchError
	if err != nil && !errors.As(err, &mismatch) {
		c.log.Error("Equivalence check aborted", slog.String("rid", run.RID.String()), slog.String("error", err.Error()))
		return nil, helper.NewError("check equivalence", err)
	}

	run.PathA = result.PathA
	run.PathB = result.PathB
	run.PathC = result.PathC
	run.Passed = mismatch == nil
	if mismatch != nil {
		run.Mismatch = mismatch.Error()
		c.log.Error("Entity sequences differ", slog.String("rid", run.RID.String()), slog.String("mismatch", run.Mismatch))
	} else {
		c.log.Info("Entity sequences agree", slog.String("rid", run.RID.String()), slog.Any("entities", run.PathA.Texts()))
	}

	if c.Runs != nil {
		if storeErr := c.Runs.InsertRun(ctx, run); storeErr != nil {
			return run, helper.NewError("record run", errors.Join(storeErr, err))
		}
		c.log.Info("Recorded run", slog.String("rid", run.RID.String()), slog.Int64("id", run.ID))
	}

	if mismatch != nil {
		return run, helper.NewError("check equivalence", mismatch)
	}
	return run, nil
}

// Close releases the capability and the database connection
func (c *Checker) Close() error {
	var errs []error
	if closer, ok := c.NLP.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
