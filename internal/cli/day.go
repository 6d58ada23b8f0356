package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
)

func newDayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Manage the days of a trip",
	}
	cmd.AddCommand(
		newDayAddCmd(a),
		newDayListCmd(a),
		newDayMoveCmd(a),
		newDayDeleteCmd(a),
	)
	return cmd
}

func newDayAddCmd(a *app) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "add TRIP_ID DATE",
		Short: "Add a day (YYYY-MM-DD) to a trip",
		Args:  cobra.ExactArgs(2),
	}
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes for the day")
	cmd.RunE = a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
		tripID, err := parseID("trip id", args[0])
		if err != nil {
			return err
		}
		day, err := s.days.Create(cmd.Context(), domain.Day{TripID: tripID, Date: args[1], Notes: notes})
		if err != nil {
			return explain("trip", err)
		}
		if a.jsonOutput {
			return printJSON(cmd.OutOrStdout(), day)
		}
		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("added day %d: %s", day.ID, day.Date))
		return nil
	})
	return cmd
}

func newDayListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list TRIP_ID",
		Short: "List a trip's days in date order",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			tripID, err := parseID("trip id", args[0])
			if err != nil {
				return err
			}
			days, err := s.days.ListByTrip(cmd.Context(), tripID)
			if err != nil {
				return explain("trip", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), days)
			}
			if len(days) == 0 {
				printWarning(cmd.OutOrStdout(), "no days yet")
				return nil
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "DATE", "NOTES"}, dayRows(days))
		}),
	}
}

func newDayMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move DAY_ID DATE",
		Short: "Move a day to another date",
		Args:  cobra.ExactArgs(2),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("day id", args[0])
			if err != nil {
				return err
			}
			day, err := s.days.UpdateDate(cmd.Context(), id, args[1])
			if err != nil {
				return explain("day", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), day)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("moved day %d to %s", day.ID, day.Date))
			return nil
		}),
	}
}

func newDayDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete DAY_ID",
		Short: "Delete a day and its items",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("day id", args[0])
			if err != nil {
				return err
			}
			if err := s.days.Delete(cmd.Context(), id); err != nil {
				return explain("day", err)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("deleted day %d", id))
			return nil
		}),
	}
}
