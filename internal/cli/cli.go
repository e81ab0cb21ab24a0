// Package cli implements the moderate command: the moderation view for a
// terminal, driven by the same dashboard as the web page.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/moderation"
)

// TimeLayout is how the list command prints submission timestamps.
const TimeLayout = "2006-01-02 15:04"

// StoreOpener connects to the submission store. The returned func releases it.
type StoreOpener func(ctx context.Context) (moderation.Store, func(), error)

// NewRootCommand builds the moderate command tree.
func NewRootCommand(open StoreOpener, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "moderate",
		Short:         "Moderate contact form submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newListCommand(open, logger),
		newToggleCommand(open, logger),
		newDeleteCommand(open, logger),
	)
	return root
}

// withDashboard opens the store, builds a dashboard over it and runs fn.
func withDashboard(cmd *cobra.Command, open StoreOpener, logger *slog.Logger, fn func(ctx context.Context, d *moderation.Dashboard) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, release, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer release()
	return fn(ctx, moderation.New(store, logger))
}

func newListCommand(open StoreOpener, logger *slog.Logger) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDashboard(cmd, open, logger, func(ctx context.Context, d *moderation.Dashboard) error {
				if err := d.Refresh(ctx); err != nil {
					return err
				}
				d.SetFilter(model.ParseFilter(filter))
				return printSnapshot(cmd.OutOrStdout(), d.Snapshot())
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(model.FilterAll), "all or unread")
	return cmd
}

func printSnapshot(w io.Writer, snap moderation.Snapshot) error {
	fmt.Fprintf(w, "Total Submissions: %d  Unread: %d\n", snap.Total, snap.Unread)
	if len(snap.Rows) == 0 {
		_, err := fmt.Fprintln(w, snap.EmptyMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tRECEIVED\tNAME\tEMAIL\tSUBJECT")
	for _, s := range snap.Rows {
		status := "unread"
		if s.Read {
			status = "read"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, status, s.CreatedAt.Local().Format(TimeLayout), s.Name, s.Email, s.Subject)
	}
	return tw.Flush()
}

func newToggleCommand(open StoreOpener, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the read flag of a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withDashboard(cmd, open, logger, func(ctx context.Context, d *moderation.Dashboard) error {
				if err := d.Refresh(ctx); err != nil {
					return err
				}
				state := "read"
				if row, ok := d.Row(id); ok && row.Read {
					state = "unread"
				}
				err := d.ToggleRead(ctx, id)
				switch {
				case errors.Is(err, moderation.ErrRefetch):
					fmt.Fprintf(cmd.OutOrStdout(), "%s marked as %s (%v)\n", id, state, err)
					return nil
				case err != nil:
					return fmt.Errorf("toggle %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s marked as %s\n", id, state)
				return nil
			})
		},
	}
}

func newDeleteCommand(open StoreOpener, logger *slog.Logger) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			confirm := func(string) bool { return true }
			if !yes {
				confirm = Prompt(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return withDashboard(cmd, open, logger, func(ctx context.Context, d *moderation.Dashboard) error {
				issued, err := d.Delete(ctx, id, confirm)
				if errors.Is(err, moderation.ErrRefetch) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s deleted (%v)\n", id, err)
					return nil
				}
				if err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				if !issued {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s deleted\n", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// Prompt returns a Confirmer that asks on out and reads one answer from in.
// Only y or yes (any case) confirms.
func Prompt(in io.Reader, out io.Writer) moderation.Confirmer {
	return func(string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", moderation.DeletePrompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
