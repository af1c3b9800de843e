package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenomain/PyGMCCG/internal/application/handlers"
	"github.com/thenomain/PyGMCCG/internal/domain/entities"
)

type checkFlags struct {
	offsets  []string
	category string
	max      int
}

func newCheckCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check <attribute|numeric> <name> <value>",
		Short: "Build a trait and show its values",
		Long: "Builds an Attribute or a numeric trait from a dictionary, applies the " +
			"given offsets and prints the bare and effective values.",
		Example: "  pygmccg check attribute str 3 --offset vigor=2\n" +
			"  pygmccg check numeric occ 2 --category skill",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.offsets, "offset", nil, "Offset as reason=n (repeatable)")
	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Dictionary category for numeric traits")
	cmd.Flags().IntVar(&flags.max, "max", 0, "Raised Attribute maximum (5 to 10)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags checkFlags) error {
	if !slices.Contains(validCheckKinds, args[0]) {
		return fmt.Errorf("invalid kind %q, valid kinds: %v", args[0], validCheckKinds)
	}

	offsets, err := parseOffsets(flags.offsets)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.CheckHandler.Handle(ctx, handlers.CheckRequest{
			Kind:     entities.Kind(args[0]),
			Category: flags.category,
			Name:     args[1],
			Value:    args[2],
			Max:      flags.max,
			Offsets:  offsets,
		})
		if err != nil {
			return err
		}

		printCheckResult(result)
		return nil
	})
}

// parseOffsets reads reason=n pairs. Validation of the reasons and amounts is
// left to the trait.
func parseOffsets(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	offsets := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		reason, amount, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --offset %q (want reason=n)", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("invalid --offset %q: amount must be an integer", pair)
		}
		reason = strings.TrimSpace(reason)
		if _, dup := offsets[reason]; dup {
			return nil, fmt.Errorf("invalid --offset %q: reason given twice", pair)
		}
		offsets[reason] = n
	}
	return offsets, nil
}

func printCheckResult(r *handlers.CheckResult) {
	fmt.Printf("%s (%s)\n", r.Name, r.Kind)
	fmt.Printf("  Value:     %d (range %d-%d)\n", r.Value, r.Min, r.Max)
	if len(r.Tags) > 0 {
		fmt.Printf("  Tags:      %s\n", strings.Join(r.Tags, ", "))
	}
	for _, reason := range r.SortedReasons() {
		fmt.Printf("  Offset:    %+d %s\n", r.Offsets[reason], reason)
	}
	fmt.Printf("  Effective: %d\n", r.Effective)
}
