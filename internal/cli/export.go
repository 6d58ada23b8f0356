package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export TRIP_ID",
		Short: "Export a trip as CSV, JSON, or XLSX",
		Example: `  planner export 1 --format csv
  planner export 1 --format xlsx --out italy.xlsx`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv, json, or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")

	cmd.RunE = a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
		id, err := parseID("trip id", args[0])
		if err != nil {
			return err
		}
		f, err := export.ParseFormat(format)
		if err != nil {
			return explain("", err)
		}
		if f == export.XLSX && out == "" {
			return explain("", domain.Invalidf("xlsx output needs --out PATH"))
		}

		trip, rows, err := s.export.Export(cmd.Context(), id)
		if err != nil {
			return explain("trip", err)
		}

		if out == "" {
			if err := export.Write(cmd.OutOrStdout(), f, trip.Name, rows); err != nil {
				return err
			}
		} else if err := writeFile(out, func(w io.Writer) error { return export.Write(w, f, trip.Name, rows) }); err != nil {
			return err
		}
		a.log.InfoContext(cmd.Context(), "trip exported", "trip_id", id, "format", string(f), "rows", len(rows))
		if out != "" {
			printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("wrote %d rows to %s", len(rows), out))
		}
		return nil
	})
	return cmd
}

// writeFile creates path and fills it with write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()
	return write(file)
}
