// Package cli implements the goswiss commands.
package cli

import (
	"context"
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/goswiss/config"
	"github.com/ezBadminton/goswiss/service"
	"github.com/ezBadminton/goswiss/store"
)

// The state shared by the commands of one invocation
type app struct {
	config  *config.Config
	store   store.Store
	manager *service.Manager
}

type appKey struct{}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok || a == nil {
		return nil, errors.New("the command was run without a configuration")
	}
	return a, nil
}

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "goswiss",
		Short: "Pair and score Swiss-style croquet tournaments",
		Long: heredoc.Doc(`
			goswiss pairs the rounds of Swiss and randomly paired
			tournaments, records the match results and keeps the
			standings. Tournaments are stored in a database and can
			be managed from the command line or through the HTTP API
			started by "goswiss serve".
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			logrus.SetLevel(cfg.Level())
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			s, err := store.Open(cmd.Context(), cfg.Driver, cfg.DSN)
			if err != nil {
				return err
			}
			logrus.WithField("driver", cfg.Driver).Debug("store opened")

			options := []service.Option{service.WithBruteForceLimit(cfg.BruteForceLimit)}
			if cfg.Seed != nil {
				options = append(options, service.WithSeed(*cfg.Seed))
			}

			a := &app{
				config:  cfg,
				store:   s,
				manager: service.NewManager(s, logrus.StandardLogger(), options...),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},

		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return nil
			}
			return a.store.Close()
		},
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", "", "Path of the config file")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.AddCommand(New())
	root.AddCommand(List())
	root.AddCommand(Show())
	root.AddCommand(Delete())
	root.AddCommand(Pair())
	root.AddCommand(Submit())
	root.AddCommand(Edit())
	root.AddCommand(Export())
	root.AddCommand(Serve())

	return root
}
