package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRootCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tripadmin",
		Short:         "Operator tasks for a tripboard deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newMigrateCmd(b),
		newTripCmd(b),
		newMembersCmd(b),
	)
	return cmd
}

func newMigrateCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	run := func(apply func(schemaAdmin) error, verb string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := b.migrator()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			if err := apply(m); err != nil {
				return fmt.Errorf("%s: %w", verb, err)
			}
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(schemaAdmin.Up, "migrating up"),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run(schemaAdmin.Down, "migrating down"),
		},
	)
	return cmd
}

func newTripCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Inspect or repair the trip snapshot",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the trip snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, closeFn, err := b.trip(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			trip, err := trips.GetTrip(cmd.Context())
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(trip)
			}

			fmt.Fprintf(out, "%s (%d days, %d activities)\n", trip.TripName, len(trip.Days), len(trip.Activities))
			for _, day := range trip.Days {
				fmt.Fprintf(out, "\n%s\n", day.Label)
				for _, a := range trip.Activities {
					if a.Day != day.Date {
						continue
					}
					yes, no := a.VoteCounts()
					fmt.Fprintf(out, "  - %s [%s] by %s, %d yes / %d no, %d comments\n",
						a.Title, a.EffectiveStatus(), a.CreatorName, yes, no, len(a.Comments))
				}
			}
			return nil
		},
	}
	show.Flags().Bool("json", false, "print the raw snapshot as JSON")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete the snapshot so the next read reseeds an empty trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			trips, closeFn, err := b.trip(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := trips.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "trip reset")
			return nil
		},
	}
	reset.Flags().Bool("yes", false, "confirm deleting every activity")

	migrateReactions := &cobra.Command{
		Use:   "migrate-reactions",
		Short: "Fold legacy likes and dislikes into 👍 and 👎 reaction groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, closeFn, err := b.trip(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := trips.MigrateLegacyReactions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d activities\n", n)
			return nil
		},
	}

	cmd.AddCommand(show, reset, migrateReactions)
	return cmd
}

func newMembersCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage trip members",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List everyone who has joined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, closeFn, err := b.members(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := members.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tJOINED")
			for _, m := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Name, m.JoinedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	remove := &cobra.Command{
		Use:   "remove <member-id>",
		Short: "Remove a member; their sessions stop working on next use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[0])
			}
			members, closeFn, err := b.members(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := members.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, remove)
	return cmd
}
