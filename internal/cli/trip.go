package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
)

func newTripCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Create, inspect, and check trips",
	}
	cmd.AddCommand(
		newTripCreateCmd(a),
		newTripListCmd(a),
		newTripShowCmd(a),
		newTripRenameCmd(a),
		newTripDeleteCmd(a),
		newTripCheckCmd(a),
	)
	return cmd
}

func newTripCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a trip",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			trip, err := s.trips.Create(cmd.Context(), domain.Trip{Name: args[0]})
			if err != nil {
				return explain("trip", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), trip)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("created trip %d: %s", trip.ID, trip.Name))
			return nil
		}),
	}
}

func newTripListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all trips",
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(cmd *cobra.Command, _ []string, s *services) error {
			trips, err := s.trips.List(cmd.Context())
			if err != nil {
				return explain("trip", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), trips)
			}
			if len(trips) == 0 {
				printWarning(cmd.OutOrStdout(), "no trips yet")
				return nil
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "CREATED"}, tripRows(trips))
		}),
	}
}

// dayPlan is one day with its items in canonical order.
type dayPlan struct {
	Day   domain.Day    `json:"day"`
	Items []domain.Item `json:"items"`
}

// tripPlan is the --json shape of "trip show".
type tripPlan struct {
	Trip domain.Trip `json:"trip"`
	Days []dayPlan   `json:"days"`
}

func newTripShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show TRIP_ID",
		Short: "Show a trip with every day and item",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("trip id", args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			trip, err := s.trips.GetByID(ctx, id)
			if err != nil {
				return explain("trip", err)
			}
			days, err := s.days.ListByTrip(ctx, id)
			if err != nil {
				return explain("trip", err)
			}
			plan := tripPlan{Trip: trip, Days: make([]dayPlan, 0, len(days))}
			for _, d := range days {
				items, err := s.items.ListByDay(ctx, d.ID)
				if err != nil {
					return explain("day", err)
				}
				plan.Days = append(plan.Days, dayPlan{Day: d, Items: items})
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, plan)
			}
			_, _ = headerColor.Fprintf(out, "%s (trip %d)\n", trip.Name, trip.ID)
			if len(plan.Days) == 0 {
				printWarning(out, "no days yet")
				return nil
			}
			for _, dp := range plan.Days {
				_, _ = fmt.Fprintf(out, "\n%s  day %d", dp.Day.Date, dp.Day.ID)
				if dp.Day.Notes != "" {
					_, _ = dimColor.Fprintf(out, "  %s", dp.Day.Notes)
				}
				_, _ = fmt.Fprintln(out)
				if len(dp.Items) == 0 {
					_, _ = dimColor.Fprintln(out, "  (no items)")
					continue
				}
				if err := printTable(out, itemHeaders, itemRows(dp.Items)); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func newTripRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename TRIP_ID NAME",
		Short: "Rename a trip",
		Args:  cobra.ExactArgs(2),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("trip id", args[0])
			if err != nil {
				return err
			}
			trip, err := s.trips.Rename(cmd.Context(), id, args[1])
			if err != nil {
				return explain("trip", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), trip)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("renamed trip %d to %s", trip.ID, trip.Name))
			return nil
		}),
	}
}

func newTripDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TRIP_ID",
		Short: "Delete a trip with all of its days and items",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("trip id", args[0])
			if err != nil {
				return err
			}
			if err := s.trips.Delete(cmd.Context(), id); err != nil {
				return explain("trip", err)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("deleted trip %d", id))
			return nil
		}),
	}
}

func newTripCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check TRIP_ID",
		Short: "Report overlaps and tight connections on every day of a trip",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().Int("buffer", 0, "minimum minutes between consecutive items (default from config)")
	cmd.RunE = a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
		id, err := parseID("trip id", args[0])
		if err != nil {
			return err
		}
		reports, err := s.items.CheckTrip(cmd.Context(), id, a.buffer(cmd))
		if err != nil {
			return explain("trip", err)
		}
		if a.jsonOutput {
			return printJSON(cmd.OutOrStdout(), reports)
		}
		if len(reports) == 0 {
			printWarning(cmd.OutOrStdout(), "trip has no days")
		}
		for _, r := range reports {
			printReport(cmd.OutOrStdout(), r)
		}
		return nil
	})
	return cmd
}

// buffer returns --buffer when given, else the configured default.
func (a *app) buffer(cmd *cobra.Command) int {
	if cmd.Flags().Changed("buffer") {
		n, _ := cmd.Flags().GetInt("buffer")
		return n
	}
	return a.cfg.BufferMin
}

// parseID reads a positional id argument.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, explain("", domain.Invalidf("%s must be a positive integer, got %q", what, s))
	}
	return id, nil
}
