package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed runs.sql
var runsSQL string

// RunsFunctions lists the functions runs.sql must create
var RunsFunctions = []string{
	"init_runs",
	"insert_run",
	"select_run",
	"select_runs",
	"delete_run",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadRunsSql loads run-related SQL functions.
// Without force nothing is executed when all functions already exist.
func LoadRunsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, RunsFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing runs functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(runsSQL)
	if err != nil {
		return fmt.Errorf("error executing runs SQL: %w", err)
	}

	exist, err := checkFunctions(db, RunsFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL runs functions loaded successfully")
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
