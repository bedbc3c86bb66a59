package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/goswiss/export"
)

func Export() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export id",
		Short: "Export the match log and the standings",
		Long: `export writes the match log as CSV and the standings as XLSX
(with the head-to-head table) or as CSV when the file ends with .csv.`,
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			matchesPath, _ := cmd.Flags().GetString("matches")
			standingsPath, _ := cmd.Flags().GetString("standings")
			if matchesPath == "" && standingsPath == "" {
				return errors.New("nothing to export, use --matches or --standings")
			}

			tournament, err := a.manager.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if matchesPath != "" {
				err := writeFile(matchesPath, func(w io.Writer) error {
					return export.WriteMatchesCSV(w, tournament.Matches())
				})
				if err != nil {
					return err
				}
				logrus.Infof("Exported the matches to %s", matchesPath)
			}

			if standingsPath != "" {
				err := writeFile(standingsPath, func(w io.Writer) error {
					if strings.EqualFold(filepath.Ext(standingsPath), ".csv") {
						return export.WriteStandingsCSV(w, tournament.CurrentStandings())
					}
					return export.WriteStandingsXLSX(w, tournament.CurrentStandings(), tournament.Matches())
				})
				if err != nil {
					return err
				}
				logrus.Infof("Exported the standings to %s", standingsPath)
			}

			return nil
		},
	}

	cmd.Flags().String("matches", "", "CSV file for the match log")
	cmd.Flags().String("standings", "", "XLSX or CSV file for the standings")

	return cmd
}

func writeFile(path string, write func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
