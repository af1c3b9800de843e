package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenomain/PyGMCCG/internal/application/handlers"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
	category   string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import dictionary entries from JSON, YAML or CSV",
		Long: "Imports dictionary entries from a structured file. Without a file, every " +
			"supported file in the configured dictionary directory is imported, " +
			"using each file's name as its default category.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return runImport(cmd, file, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, yaml, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Conflict handling (skip, overwrite)")
	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Category for rows that do not name one")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	// Validate on-conflict flag
	onConflict := services.ConflictStrategy(flags.onConflict)
	if !onConflict.IsValid() {
		return fmt.Errorf("invalid --on-conflict value %q (valid: skip, overwrite)", flags.onConflict)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: onConflict,
			Category:   flags.category,
		}

		if filePath != "" {
			fmt.Printf("Importing %s...\n", filePath)
			result, err := d.ImportHandler.Handle(ctx, filePath, opts)
			if err != nil {
				return fmt.Errorf("importing file: %w", err)
			}
			printImportResult(result, flags.dryRun)
			return nil
		}

		dir := d.Config.Dictionary.Dir
		if dir == "" {
			return errors.New("no file given and no dictionary directory configured (set dictionary.dir)")
		}

		fmt.Printf("Importing dictionaries from %s...\n", dir)
		results, err := d.ImportHandler.HandleDir(ctx, dir, opts)
		for i := range results {
			printImportResult(&results[i], flags.dryRun)
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No dictionary files found.")
		}
		return nil
	})
}

func printImportResult(result *handlers.ImportResult, dryRun bool) {
	// Display errors
	if len(result.Errors) > 0 {
		fmt.Printf("\n%s: validation errors (%d):\n", result.File, len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e.Error())
		}
	}

	// Display summary
	fmt.Println()
	if dryRun {
		fmt.Printf("%s: dry run, %d entries would be imported", result.File, result.Imported)
	} else {
		fmt.Printf("%s: imported %d entries", result.File, result.Imported)
	}

	if result.Skipped > 0 {
		fmt.Printf(", %d skipped (already exist)", result.Skipped)
	}

	if len(result.Errors) > 0 {
		fmt.Printf(", %d errors", len(result.Errors))
	}

	fmt.Println()
}
