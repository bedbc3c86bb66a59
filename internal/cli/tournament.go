package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/goswiss/core"
	"github.com/ezBadminton/goswiss/service"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new name player...",
		Short: "Create a new tournament",
		Long: heredoc.Doc(`
			new creates a tournament with the given name for the listed
			players and prints its id. Player names have to be unique.

			The swiss method pairs the players by their standing, the
			random method pairs them in a random order. Both avoid
			players meeting twice whenever possible.
		`),
		Example: "  goswiss new \"Club Night\" Alice Bob Carol Dave --rounds 3",
		Args:    cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			rounds, _ := cmd.Flags().GetInt("rounds")
			methodName, _ := cmd.Flags().GetString("method")
			method, err := core.ParsePairingMethod(methodName)
			if err != nil {
				return err
			}

			id, tournament, err := a.manager.Create(cmd.Context(), service.CreateInput{
				Name:          args[0],
				Players:       args[1:],
				Rounds:        rounds,
				PairingMethod: method,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created tournament \x1b[32m%s\x1b[0m (%s, %d rounds, %d players)\n",
				tournament.Name, tournament.Method(), tournament.TotalRounds(), tournament.Roster().Len())
			fmt.Fprintln(out, id)
			return nil
		},
	}

	cmd.Flags().IntP("rounds", "r", 3, "Number of rounds")
	cmd.Flags().StringP("method", "m", "swiss", "Pairing method (swiss or random)")

	return cmd
}

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored tournaments",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			summaries, err := a.manager.List(cmd.Context())
			if err != nil {
				return err
			}
			printSummaries(cmd.OutOrStdout(), summaries)
			return nil
		},
	}
}

func Show() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show id",
		Short: "Show the state, pairing and standings of a tournament",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			tournament, err := a.manager.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTournament(out, tournament)

			if pairing, ok := tournament.PendingPairing(); ok {
				fmt.Fprintln(out)
				printPairing(out, pairing)
			}

			fmt.Fprintln(out)
			printStandings(out, tournament.CurrentStandings())

			if h2h, _ := cmd.Flags().GetBool("head-to-head"); h2h {
				fmt.Fprintln(out)
				printHeadToHead(out, tournament.HeadToHead())
			}
			return nil
		},
	}

	cmd.Flags().Bool("head-to-head", false, "Also show the head-to-head table")

	return cmd
}

func Delete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete id",
		Short: "Delete a tournament",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.manager.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tournament %s\n", args[0])
			return nil
		},
	}
}
