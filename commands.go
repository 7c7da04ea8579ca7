package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rpupo63/signature-homes-backend/content"
	"github.com/rpupo63/signature-homes-backend/database"
	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/models"
)

func newCatalogCmd(a *app) *cobra.Command {
	var path string

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate or seed the gallery catalog",
	}
	catalogCmd.PersistentFlags().StringVar(&path, "path", "", "catalog YAML file (default: embedded catalog)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for duplicate IDs and dangling project references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := content.Load(path)
			if err != nil {
				return err
			}
			catalog, err := file.Catalog()
			if err != nil {
				return err
			}
			printCatalogSummary(cmd, catalog)
			return nil
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the catalog into the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := content.Load(path)
			if err != nil {
				return err
			}

			db, err := a.requireDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			store := database.New(db)
			if err := store.Migrate(); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			if err := store.SeedCatalog(file); err != nil {
				return err
			}

			catalog, err := store.LoadCatalog()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seeded catalog")
			printCatalogSummary(cmd, catalog)
			return nil
		},
	}

	catalogCmd.AddCommand(validateCmd, seedCmd)
	return catalogCmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Report unmapped columns and generate gorm/gen query helpers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.requireDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			if _, err := models.ColumnMismatchReport(db, os.Stdout); err != nil {
				return err
			}

			fmt.Println("Generating query helpers...")
			if err := models.GenerateQueries(db, outPath); err != nil {
				return err
			}
			fmt.Println("Model generation complete!")
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "./generated", "output directory for generated queries")
	return cmd
}

func (a *app) requireDB() (*gorm.DB, error) {
	db, err := database.Open(a.config)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errs.NewConfigError("DB_TYPE")
	}
	return db, nil
}

func printCatalogSummary(cmd *cobra.Command, catalog *gallery.Catalog) {
	out := cmd.OutOrStdout()
	counts := catalog.Counts()
	fmt.Fprintf(out, "%d projects, %d images\n", len(catalog.Projects()), len(catalog.Images()))
	for _, p := range catalog.SortedProjects() {
		fmt.Fprintf(out, "  %-12s %-24s %d images\n", p.ID, p.Name, counts[p.ID])
	}
}
