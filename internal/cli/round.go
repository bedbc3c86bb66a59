package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ezBadminton/goswiss/core"
)

func Pair() *cobra.Command {
	return &cobra.Command{
		Use:   "pair id",
		Short: "Pair the current round of a tournament",
		Long: heredoc.Doc(`
			pair generates the pairing of the current round and prints
			it. Running pair again before the results are submitted
			prints the same pairing.
		`),
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Searching the pairing..."
			s.Start()
			pairing, err := a.manager.EnterRound(cmd.Context(), args[0])
			s.Stop()
			if err != nil {
				return err
			}

			printPairing(cmd.OutOrStdout(), pairing)
			return nil
		},
	}
}

func Submit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit id",
		Short: "Submit the results of the current round",
		Long: heredoc.Doc(`
			submit records the results of all pairs of the current round
			and advances the tournament to the next round. Every pair
			needs exactly one --result of the form "A-B=7-3" where the
			scores are in the order of the names. A match is won by the
			first side to reach 7 hoops.
		`),
		Example: "  goswiss submit 3f2a... --result \"Alice-Bob=7-3\" --result \"Carol-Dave=5-7\"",
		Args:    cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			tournament, err := a.manager.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			pairing, ok := tournament.PendingPairing()
			if !ok {
				return core.ErrRoundNotEntered
			}

			values, _ := cmd.Flags().GetStringArray("result")
			results := make([]core.Result, 0, len(values))
			for _, value := range values {
				result, err := parseResult(value, pairing)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			standings, err := a.manager.SubmitRoundResults(cmd.Context(), args[0], results)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded the results of round %d\n\n", pairing.Round)
			printStandings(out, standings)
			return nil
		},
	}

	cmd.Flags().StringArray("result", nil, `Result of one pair as "A-B=7-3"`)

	return cmd
}

// Parses a result of the form "A-B=7-3". Names may contain
// dashes so the names are split where they form a pair of
// the pairing.
func parseResult(value string, pairing *core.Pairing) (core.Result, error) {
	names, scores, ok := cutLast(value, "=")
	if !ok {
		return core.Result{}, fmt.Errorf("result %q is not of the form A-B=7-3", value)
	}

	var result core.Result
	if _, err := fmt.Sscanf(strings.TrimSpace(scores), "%d-%d", &result.Score1, &result.Score2); err != nil {
		return core.Result{}, fmt.Errorf("result %q has no scores of the form 7-3", value)
	}

	for i := range len(names) {
		if names[i] != '-' {
			continue
		}
		player1 := strings.TrimSpace(names[:i])
		player2 := strings.TrimSpace(names[i+1:])
		for _, p := range pairing.Pairs {
			if p.Contains(player1) && p.Contains(player2) && player1 != player2 {
				result.Player1, result.Player2 = player1, player2
				return result, nil
			}
		}
	}
	return core.Result{}, fmt.Errorf("%w: %q names no pair of round %d", core.ErrResultsMismatch, names, pairing.Round)
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

// The file read by the edit command
type editFile struct {
	Matches []core.Match `yaml:"matches"`
}

func Edit() *cobra.Command {
	return &cobra.Command{
		Use:   "edit id file",
		Short: "Replace the match log and recompute the standings",
		Long: heredoc.Doc(`
			edit replaces the match log of the tournament with the
			matches of the YAML file and recomputes all statistics.
			Nothing changes when one of the matches is invalid.

			The file lists the corrected matches:

			  matches:
			    - round: 1
			      player1: Alice
			      player2: Bob
			      score1: 7
			      score2: 3
		`),
		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var file editFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("invalid match file %s: %w", args[1], err)
			}
			if file.Matches == nil {
				return errors.New("the match file has no matches")
			}

			standings, err := a.manager.RecomputeFromEditedLog(cmd.Context(), args[0], file.Matches)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recomputed the standings from %d matches\n\n", len(file.Matches))
			printStandings(out, standings)
			return nil
		},
	}
}
