package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage and schedule the items of a day",
	}
	cmd.AddCommand(
		newItemAddCmd(a),
		newItemListCmd(a),
		newItemGetCmd(a),
		newItemUpdateCmd(a),
		newItemTimeCmd(a),
		newItemUnscheduleCmd(a),
		newItemDeleteCmd(a),
		newItemCheckCmd(a),
	)
	return cmd
}

// rejectOverlaps resolves --allow-overlap against the configured policy.
func (a *app) rejectOverlaps(cmd *cobra.Command) bool {
	allow, _ := cmd.Flags().GetBool("allow-overlap")
	return a.cfg.RejectOverlaps && !allow
}

// clockFlag parses an optional HH:MM or minutes flag; nil when unset.
func clockFlag(flags *pflag.FlagSet, name string) (*int, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	raw, _ := flags.GetString(name)
	m, err := domain.ParseMinutes(raw)
	if err != nil {
		return nil, explain("", err)
	}
	return &m, nil
}

// floatFlag returns a pointer to a float flag's value when it was given.
func floatFlag(flags *pflag.FlagSet, name string) *float64 {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetFloat64(name)
	return &v
}

func stringFlag(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func newItemAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add DAY_ID TITLE CATEGORY",
		Short: "Add an item to a day, optionally with a time window",
		Example: `  planner item add 3 "Colosseum" sight --start 09:00 --end 11:00 --cost 18 --currency EUR
  planner item add 3 "Buy SIM card" errand`,
		Args: cobra.ExactArgs(3),
	}
	f := cmd.Flags()
	f.String("start", "", "start time, HH:MM or minutes since midnight")
	f.String("end", "", "end time, HH:MM or minutes since midnight")
	f.Bool("allow-overlap", false, "keep the item even if it overlaps another")
	f.Float64("cost", 0, "estimated cost")
	f.String("currency", "", "ISO currency code")
	f.String("location", "", "where the item takes place")
	f.StringSlice("tags", nil, "comma-separated tags")
	f.String("notes", "", "free-form notes")
	f.Bool("pinned", false, "pin an unscheduled item to the top of the day")

	cmd.RunE = a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
		dayID, err := parseID("day id", args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		start, err := clockFlag(flags, "start")
		if err != nil {
			return err
		}
		end, err := clockFlag(flags, "end")
		if err != nil {
			return err
		}
		in := domain.NewItem{
			DayID:         dayID,
			Title:         args[1],
			Category:      args[2],
			StartMin:      start,
			EndMin:        end,
			EstimatedCost: floatFlag(flags, "cost"),
		}
		in.Currency, _ = flags.GetString("currency")
		in.Location, _ = flags.GetString("location")
		in.Tags, _ = flags.GetStringSlice("tags")
		in.Notes, _ = flags.GetString("notes")
		in.Pinned, _ = flags.GetBool("pinned")

		item, err := s.items.Create(cmd.Context(), in, service.CreateOptions{RejectOverlaps: a.rejectOverlaps(cmd)})
		if err != nil {
			return explain("day", err)
		}
		if a.jsonOutput {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("added item %d: %s (%s)",
			item.ID, item.Title, domain.FormatRange(item.StartMin, item.EndMin)))
		return nil
	})
	return cmd
}

func newItemListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list DAY_ID",
		Short: "List a day's items in schedule order",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			dayID, err := parseID("day id", args[0])
			if err != nil {
				return err
			}
			items, err := s.items.ListByDay(cmd.Context(), dayID)
			if err != nil {
				return explain("day", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), items)
			}
			if len(items) == 0 {
				printWarning(cmd.OutOrStdout(), "no items yet")
				return nil
			}
			return printTable(cmd.OutOrStdout(), itemHeaders, itemRows(items))
		}),
	}
}

func newItemGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ITEM_ID",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("item id", args[0])
			if err != nil {
				return err
			}
			item, err := s.items.GetByID(cmd.Context(), id)
			if err != nil {
				return explain("item", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), item)
			}
			printItem(cmd.OutOrStdout(), item)
			return nil
		}),
	}
}

func newItemUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ITEM_ID",
		Short: "Change an item's details (use 'item time' for its window)",
		Args:  cobra.ExactArgs(1),
	}
	f := cmd.Flags()
	f.String("title", "", "new title")
	f.String("category", "", "new category")
	f.Float64("cost", 0, "estimated cost")
	f.Float64("actual-cost", 0, "actual cost")
	f.String("currency", "", "ISO currency code")
	f.String("location", "", "where the item takes place")
	f.StringSlice("tags", nil, "replace the tags (comma-separated; empty clears)")
	f.String("notes", "", "free-form notes")
	f.Bool("pinned", false, "pin or unpin (--pinned=false)")

	cmd.RunE = a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
		id, err := parseID("item id", args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		patch := domain.ItemPatch{
			Title:         stringFlag(flags, "title"),
			Category:      stringFlag(flags, "category"),
			EstimatedCost: floatFlag(flags, "cost"),
			ActualCost:    floatFlag(flags, "actual-cost"),
			Currency:      stringFlag(flags, "currency"),
			Location:      stringFlag(flags, "location"),
			Notes:         stringFlag(flags, "notes"),
		}
		if flags.Changed("tags") {
			tags, _ := flags.GetStringSlice("tags")
			patch.Tags = &tags
		}
		if flags.Changed("pinned") {
			pinned, _ := flags.GetBool("pinned")
			patch.Pinned = &pinned
		}

		item, err := s.items.Update(cmd.Context(), id, patch)
		if err != nil {
			return explain("item", err)
		}
		if a.jsonOutput {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("updated item %d", item.ID))
		return nil
	})
	return cmd
}

func newItemTimeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time ITEM_ID START END",
		Short: "Set or move an item's time window",
		Args:  cobra.ExactArgs(3),
	}
	cmd.Flags().Bool("allow-overlap", false, "keep the new window even if it overlaps another item")
	cmd.RunE = a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
		id, err := parseID("item id", args[0])
		if err != nil {
			return err
		}
		start, err := domain.ParseMinutes(args[1])
		if err != nil {
			return explain("", err)
		}
		end, err := domain.ParseMinutes(args[2])
		if err != nil {
			return explain("", err)
		}
		item, err := s.items.Reschedule(cmd.Context(), id, start, end, a.rejectOverlaps(cmd))
		if err != nil {
			return explain("item", err)
		}
		if a.jsonOutput {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("item %d now %s", item.ID, domain.FormatRange(item.StartMin, item.EndMin)))
		return nil
	})
	return cmd
}

func newItemUnscheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unschedule ITEM_ID",
		Short: "Clear an item's time window",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("item id", args[0])
			if err != nil {
				return err
			}
			item, err := s.items.ClearTime(cmd.Context(), id)
			if err != nil {
				return explain("item", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), item)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("item %d is unscheduled", item.ID))
			return nil
		}),
	}
}

func newItemDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ITEM_ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
			id, err := parseID("item id", args[0])
			if err != nil {
				return err
			}
			if err := s.items.Delete(cmd.Context(), id); err != nil {
				return explain("item", err)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("deleted item %d", id))
			return nil
		}),
	}
}

func newItemCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check DAY_ID",
		Short: "Report overlaps and tight connections on one day",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().Int("buffer", 0, "minimum minutes between consecutive items (default from config)")
	cmd.RunE = a.withServices(func(cmd *cobra.Command, args []string, s *services) error {
		dayID, err := parseID("day id", args[0])
		if err != nil {
			return err
		}
		report, err := s.items.CheckDay(cmd.Context(), dayID, a.buffer(cmd))
		if err != nil {
			return explain("day", err)
		}
		if a.jsonOutput {
			return printJSON(cmd.OutOrStdout(), report)
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	})
	return cmd
}
