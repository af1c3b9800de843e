package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thenomain/PyGMCCG/internal/application/handlers"
	"github.com/thenomain/PyGMCCG/internal/domain/entities"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage data dictionaries",
		Long:  "List, describe, add, or remove the canonical trait names of each category.",
	}

	cmd.AddCommand(newDictListCmd())
	cmd.AddCommand(newDictCategoriesCmd())
	cmd.AddCommand(newDictDescribeCmd())
	cmd.AddCommand(newDictAddCmd())
	cmd.AddCommand(newDictRemoveCmd())
	cmd.AddCommand(newDictHistoryCmd())

	return cmd
}

func newDictListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dictionary entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDictList(cmd, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list this category")

	return cmd
}

func runDictList(cmd *cobra.Command, category string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		list, err := d.DictionaryHandler.HandleList(ctx, category)
		if err != nil {
			return fmt.Errorf("listing entries: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No dictionary entries found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tNAME\tTAGS\tVALUES\tNOTE")
		for i := range list {
			e := &list[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.Category, e.Name, strings.Join(e.Tags, ", "), e.Values, truncate(e.Note, DefaultNoteWidth))
		}
		w.Flush()

		return nil
	})
}

func newDictCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List dictionary categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				categories, err := d.DictionaryHandler.HandleCategories(ctx)
				if err != nil {
					return fmt.Errorf("listing categories: %w", err)
				}
				for _, c := range categories {
					fmt.Println(c)
				}
				return nil
			})
		},
	}
}

func newDictDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <category> <name>",
		Short: "Show details about a dictionary entry",
		Long:  "Show one entry. The name may be any unambiguous part of the canonical name.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDictDescribe(cmd, args[0], args[1])
		},
	}
}

func runDictDescribe(cmd *cobra.Command, category, name string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		e, err := d.DictionaryHandler.HandleDescribe(ctx, category, name)
		if err != nil {
			return fmt.Errorf("describing entry: %w", err)
		}

		fmt.Printf("Category:     %s\n", e.Category)
		fmt.Printf("Name:         %s\n", e.Name)
		printOptional("Tags:         ", strings.Join(e.Tags, ", "))
		printOptional("Values:       ", e.Values.String())
		printOptional("Templates:    ", strings.Join(e.Templates, ", "))
		printOptional("Prerequisite: ", string(e.Prerequisite))
		printOptional("Requires:     ", e.PrereqText)
		printOptional("Book:         ", e.Book)
		printOptional("Note:         ", e.Note)
		fmt.Printf("Built-in:     %v\n", entities.IsProtectedEntry(e.Category, e.Name))
		if !e.CreatedAt.IsZero() {
			fmt.Printf("Created:      %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		return nil
	})
}

type dictAddFlags struct {
	tags       []string
	values     string
	min        int
	max        int
	templates  []string
	prereqText string
	book       string
	note       string
}

func newDictAddCmd() *cobra.Command {
	var flags dictAddFlags

	cmd := &cobra.Command{
		Use:   "add <category> <name>",
		Short: "Add a dictionary entry",
		Long:  "Add a new canonical name to a category. Names must not contain '.'.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDictAdd(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.tags, "tag", "t", nil, "Classification tag (repeatable)")
	cmd.Flags().StringVar(&flags.values, "values", "", "Discrete allowed values, e.g. 1,2,3,5")
	cmd.Flags().IntVar(&flags.min, "min", 0, "Lowest allowed value")
	cmd.Flags().IntVar(&flags.max, "max", 0, "Highest allowed value")
	cmd.Flags().StringSliceVar(&flags.templates, "template", nil, "Template the entry applies to (repeatable)")
	cmd.Flags().StringVar(&flags.prereqText, "requires", "", "Prerequisite text")
	cmd.Flags().StringVar(&flags.book, "book", "", "Source book")
	cmd.Flags().StringVar(&flags.note, "note", "", "Free-form note")
	cmd.MarkFlagsRequiredTogether("min", "max")

	return cmd
}

func runDictAdd(cmd *cobra.Command, category, name string, flags dictAddFlags) error {
	values, err := parseValues(flags.values)
	if err != nil {
		return err
	}

	req := handlers.AddRequest{
		Category:   category,
		Name:       name,
		Tags:       flags.tags,
		Values:     values,
		Templates:  flags.templates,
		PrereqText: flags.prereqText,
		Book:       flags.book,
		Note:       flags.note,
	}
	if cmd.Flags().Changed("min") {
		req.Min, req.Max = &flags.min, &flags.max
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if err := d.DictionaryHandler.HandleAdd(ctx, req); err != nil {
			return fmt.Errorf("adding entry: %w", err)
		}

		fmt.Printf("Added %s: %s\n", category, name)
		return nil
	})
}

func newDictRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <category> <name>",
		Short: "Remove a dictionary entry",
		Long:  "Remove an entry by its full name. Built-in Attributes cannot be removed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.DictionaryHandler.HandleRemove(ctx, args[0], args[1]); err != nil {
					return fmt.Errorf("removing entry: %w", err)
				}
				fmt.Printf("Removed %s: %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newDictHistoryCmd() *cobra.Command {
	var (
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent dictionary changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDictHistory(cmd, action, limit)
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Only show this action (entry_added, entry_removed, import_batch, ...)")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of records to display")

	return cmd
}

func runDictHistory(cmd *cobra.Command, action string, limit int) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		records, err := d.DictionaryHandler.HandleHistory(ctx, action, limit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No history recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tCATEGORY\tNAME")
		for i := range records {
			r := &records[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.CreatedAt.Format("2006-01-02 15:04:05"), r.Action, r.Category, r.Name)
		}
		w.Flush()

		return nil
	})
}

// parseValues reads a comma-separated list of integers. An empty string is no list.
func parseValues(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid --values item %q: %w", part, errors.Unwrap(err))
		}
		values = append(values, v)
	}
	return values, nil
}

func printOptional(label, value string) {
	if value != "" {
		fmt.Printf("%s%s\n", label, value)
	}
}

// truncate shortens a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
