package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/siherrmann/nercheck"
	"github.com/siherrmann/nercheck/core/check"
	"github.com/siherrmann/nercheck/helper"
	"github.com/siherrmann/nercheck/model"
)

const newsContent = `Angela Merkel met Emmanuel Macron in Paris on Monday.
The two leaders discussed the European Union budget with officials from the United Nations.
Merkel later flew back to Berlin.`

func main() {
	// Start a test PostgreSQL container for the run history
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	checker := nercheck.NewChecker(nil)
	defer checker.Close()

	// Set up hugot with the English distilbert-NER model
	if err := checker.UseDefaultCapability(model.DefaultLanguage); err != nil {
		log.Fatalf("Failed to set up capability: %v", err)
	}
	if err := checker.UseRunStore(dbConfig); err != nil {
		log.Fatalf("Failed to set up run store: %v", err)
	}

	ctx := context.Background()

	// The fixed sample check
	fmt.Println("Checking sample text...")
	if _, err := checker.Check(ctx, nil); err != nil {
		log.Fatalf("Sample check failed: %v", err)
	}

	// A longer text, people only
	config := model.DefaultCheckConfig()
	config.Text = newsContent
	config.IncludeTypes = []string{"PER"}

	fmt.Println("\nChecking news text...")
	run, err := checker.Check(ctx, &config)
	var mismatch *check.MismatchError
	if errors.As(err, &mismatch) {
		fmt.Printf("Paths disagree: %v\n", mismatch)
	} else if err != nil {
		log.Fatalf("News check failed: %v", err)
	}
	fmt.Printf("People: %v\n", run.PathA.Texts())

	// Show the recorded history
	runs, err := checker.Runs.SelectRuns(ctx, 10)
	if err != nil {
		log.Fatalf("Failed to select runs: %v", err)
	}

	fmt.Printf("\nRecorded %d runs:\n", len(runs))
	for i, r := range runs {
		fmt.Printf("\n--- Run %d ---\n", i+1)
		fmt.Printf("RID: %s\n", r.RID)
		fmt.Printf("Passed: %t\n", r.Passed)
		fmt.Printf("Entities: %v\n", r.PathA.Texts())
	}

	fmt.Println("\nBasic example completed successfully!")
}
