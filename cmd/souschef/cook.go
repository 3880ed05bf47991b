package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/souschef/internal/conversation"
	"github.com/hammamikhairi/souschef/internal/display"
	"github.com/hammamikhairi/souschef/internal/domain"
)

func newCookCmd(verbose, quiet *bool) *cobra.Command {
	var recipeName string

	cmd := &cobra.Command{
		Use:   "cook",
		Short: "Walk through a recipe in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := wireApp(*verbose, *quiet)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return runWalkthrough(cmd.Context(), app, recipeName)
		},
	}

	cmd.Flags().StringVar(&recipeName, "recipe", "", "name of the recipe to cook (defaults to the first suggestion)")
	return cmd
}

// runWalkthrough is the interactive REPL: it drives the engine's fixed
// operation set from parsed keyboard input. All timer waiting happens
// here, caller-side, by polling status.
func runWalkthrough(ctx context.Context, app *app, recipeName string) error {
	recipes, err := app.engine.SuggestRecipes(ctx, []string{recipeName})
	if err != nil {
		return fmt.Errorf("loading recipes: %w", err)
	}
	if len(recipes) == 0 {
		return fmt.Errorf("no recipes available")
	}

	rec := recipes[0]
	if recipeName != "" {
		for _, r := range recipes {
			if strings.EqualFold(r.Name, recipeName) {
				rec = r
				break
			}
		}
	}

	start, err := app.engine.StartSession(ctx, rec)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer app.engine.EndSession(ctx, start.SessionID)

	display.Banner(start.RecipeName)
	display.Step(start.StepNumber, start.StepText, start.HasTimerHint)

	parser := conversation.NewKeywordParser(app.log.Named("parser"))
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		intent := parser.Parse(scanner.Text())
		switch intent.Type {
		case domain.IntentAdvance:
			res, err := app.engine.Advance(ctx, start.SessionID)
			if err != nil {
				return err
			}
			if res.IsComplete {
				display.Notice(res.StepText)
				return nil
			}
			display.Step(res.StepNumber, res.StepText, res.HasTimerHint)

		case domain.IntentRepeat:
			res, err := app.engine.CurrentStep(ctx, start.SessionID)
			if err != nil {
				return err
			}
			display.Step(res.StepNumber, res.StepText, res.HasTimerHint)

		case domain.IntentStartTimer:
			res, err := app.engine.StartTimerForCurrentStep(ctx, start.SessionID)
			if err != nil {
				display.Info("No duration in this step. Type one, like \"5 min\" or \"30 sec\".")
				continue
			}
			display.Info("Timer set for %d seconds.", res.DurationSeconds)
			display.Countdown(ctx, app.engine, start.SessionID)

		case domain.IntentCustomTimer:
			res, err := app.engine.SetCustomTimer(ctx, start.SessionID, intent.Payload)
			if err != nil {
				display.Info("Couldn't read that as a duration. Try \"5 min\" or \"30 sec\".")
				continue
			}
			display.Info("Timer set for %d seconds.", res.DurationSeconds)
			display.Countdown(ctx, app.engine, start.SessionID)

		case domain.IntentStatus:
			st, err := app.engine.Status(ctx, start.SessionID)
			if err != nil {
				return err
			}
			if st.TimerNotice != "" {
				display.Notice(st.TimerNotice)
			}
			if st.Timer != nil && st.Timer.Active {
				display.Info("Step %d of %s. Timer: %ds remaining.", st.StepNumber, st.RecipeName, st.Timer.RemainingSeconds)
			} else {
				display.Info("Step %d of %s.", st.StepNumber, st.RecipeName)
			}

		case domain.IntentQuit:
			display.Info("Stopping here. The kitchen is yours.")
			return nil

		case domain.IntentHelp:
			display.Info("next: move on; repeat: say the step again; timer: start the step's timer;")
			display.Info("a duration like \"5 min\": custom timer; status: where am I; quit: stop.")

		default:
			display.Info("Didn't catch that. Type \"help\" for commands.")
		}
	}
}
