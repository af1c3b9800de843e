package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenomain/PyGMCCG/internal/application/handlers"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pygmccg project",
		Long:  "Creates a .pygmccg directory with default configuration, creates the dictionary database and seeds the built-in dictionaries.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	logger, err := newLogger(config.Default().Logging)
	if err != nil {
		return err
	}

	result, err := handlers.NewInitHandler(openStore, logger).Handle(ctx, cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("Created dictionary database: %s\n", result.DatabasePath)
	fmt.Printf("Seeded %d dictionary entries\n", result.Seeded)
	fmt.Println("pygmccg initialized successfully!")

	return nil
}
