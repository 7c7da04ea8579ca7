package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Query helpers and the column mismatch report.

`signature-homes generate` writes typed gorm/gen query helpers for every model
to ./generated, after printing a report of database columns that are not
mapped by the Go structs, e.g.

	=== COLUMN MISMATCH REPORT ===
	--- Table: gallery_images ---
	Found 1 columns not accounted for in model:
	  - legacy_path

	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// All lists every persisted model, parents before children
func All() []any {
	return []any{&Project{}, &GalleryImage{}, &ContactSubmission{}}
}

// GenerateQueries writes gorm/gen query helpers for the models into outPath
func GenerateQueries(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Set up verbose logging for generation
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)
	g.ApplyBasic(All()...)

	g.Execute()
	return nil
}

// ColumnMismatchReport writes, per model table, the database columns no struct
// field maps to. It returns the total number of unmapped columns.
func ColumnMismatchReport(db *gorm.DB, w io.Writer) (int, error) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return 0, fmt.Errorf("error parsing model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table
		fmt.Fprintf(w, "\n--- Table: %s ---\n", tableName)

		if !db.Migrator().HasTable(tableName) {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return 0, fmt.Errorf("error getting columns for table %s: %w", tableName, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		mismatches := findColumnMismatches(dbColumns, stmt.Schema.DBNames)
		if len(mismatches) > 0 {
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches, nil
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
