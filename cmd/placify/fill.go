package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nocap-placify/placify/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var fillCmd = &cobra.Command{
	Use:   "fill <wizard>",
	Short: "Fill a wizard in the terminal",
	Long: `Opens an interactive form for a wizard. With --kiosk the form returns to
the first step after each submission, ready for the next person.

When stdin is not a terminal, or values are given with --set, the wizard is
filled non-interactively and the outcome is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		kiosk, _ := cmd.Flags().GetBool("kiosk")
		pairs, _ := cmd.Flags().GetStringArray("set")

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if len(pairs) > 0 || !term.IsTerminal(int(os.Stdin.Fd())) {
			values, err := parsePairs(pairs)
			if err != nil {
				return err
			}
			s, err := a.engine.Fill(ctx, args[0], values)
			if s != nil {
				v, verr := a.engine.Render(s)
				if verr != nil {
					return verr
				}
				md, rerr := tui.NewRenderer()(tui.Markdown(v))
				if rerr != nil {
					return rerr
				}
				fmt.Fprint(out, md)
				if err == nil && s.Failure != nil {
					err = fmt.Errorf("submission failed: %s", s.Failure.Message)
				}
			}
			return err
		}

		s, err := a.engine.Start(ctx, args[0])
		if err != nil {
			return err
		}
		tui.PrintBanner(out)
		form, err := tui.NewForm(ctx, a.engine, s, tui.WithKiosk(kiosk))
		if err != nil {
			return err
		}
		if _, err := tea.NewProgram(form).Run(); err != nil {
			return err
		}
		if v := form.Result(); v.Submitted {
			fmt.Fprintln(out, v.Message)
		}
		return nil
	},
}

// parsePairs reads name=value flags into a value map.
func parsePairs(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=value", p)
		}
		values[name] = value
	}
	if len(values) == 0 {
		return nil, errors.New("no values given; use --set name=value or run in a terminal")
	}
	return values, nil
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().Bool("kiosk", false, "Keep the form open and reset after each submission")
	fillCmd.Flags().StringArray("set", nil, "Field value as name=value (repeatable); fills the wizard non-interactively")
}

