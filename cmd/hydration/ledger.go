package main

import (
	"fmt"
	"strconv"
	"strings"

	"hydration-tracker/internal/export"
	"hydration-tracker/internal/ledger"
	"hydration-tracker/internal/model"

	"github.com/spf13/cobra"
)

func printStatus(s model.DailyLedger) {
	p := ledger.NewProgress(s.Total, s.Goal)
	fmt.Printf("%dml / %dml  (%d%% of daily goal)\n", p.Current, p.Goal, p.Rounded)
	if p.Achieved {
		fmt.Println("Goal Achieved!")
	}
}

func printNotice(n ledger.Notice) {
	fmt.Printf("%s %s\n", n.Title(), n.Message())
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's progress and history",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeStore, err := openLedger()
			if err != nil {
				return err
			}
			defer closeStore()

			s, err := l.Snapshot()
			if err != nil {
				return err
			}
			printStatus(s)

			if len(s.Entries) == 0 {
				fmt.Println("No water recorded yet today.")
				return nil
			}
			for _, e := range s.Entries {
				fmt.Printf("  %s  +%dml\n", e.Time, e.Amount)
			}
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [ml]",
		Short: fmt.Sprintf("Log a custom amount (1-%dml)", ledger.MaxCustom),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", ledger.ErrInvalidAmount, args[0])
			}

			l, closeStore, err := openLedger()
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := l.AddCustom(amount)
			if err != nil {
				return err
			}
			printNotice(n)
			return nil
		},
	}
}

func drinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drink [preset]",
		Short: "Quick-add a preset: " + strings.Join(presetNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeStore, err := openLedger()
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := l.AddPreset(args[0])
			if err != nil {
				return err
			}
			printNotice(n)
			return nil
		},
	}
}

func presetNames() []string {
	names := make([]string, len(ledger.Presets))
	for i, p := range ledger.Presets {
		names[i] = fmt.Sprintf("%s (%dml)", p.Name, p.Amount)
	}
	return names
}

func goalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [ml]",
		Short: fmt.Sprintf("Set the daily goal (%d-%dml)", ledger.MinGoal, ledger.MaxGoal),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("goal must be a number: %w", err)
			}

			l, closeStore, err := openLedger()
			if err != nil {
				return err
			}
			defer closeStore()

			updated, err := l.UpdateGoal(goal)
			if err != nil {
				return err
			}
			if !updated {
				fmt.Printf("Goal unchanged: %d is outside %d-%dml\n", goal, ledger.MinGoal, ledger.MaxGoal)
				return nil
			}
			fmt.Printf("Daily goal set to %dml\n", goal)
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset today's intake to 0ml",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeStore, err := openLedger()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := l.ResetDay(); err != nil {
				return err
			}
			fmt.Println("Your daily intake has been reset to 0ml")
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write today's entries to an .xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeStore, err := openLedger()
			if err != nil {
				return err
			}
			defer closeStore()

			s, err := l.Snapshot()
			if err != nil {
				return err
			}
			if err := export.SaveAs(out, s); err != nil {
				return err
			}
			fmt.Printf("Exported %d entries to %s\n", len(s.Entries), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "hydration-today.xlsx", "output file")
	return cmd
}
