// Command skillsync is a terminal client for the SkillSync API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
	"skillsyncBack/internal/webclient"
)

type cliOptions struct {
	server  string
	token   string
	timeout time.Duration
}

func (o *cliOptions) client() *webclient.Client {
	return webclient.New(o.server, webclient.WithToken(o.token))
}

func (o *cliOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "skillsync",
		Short:         "Browse gigs, chat with the matching agent and manage your inbox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", envOr("SKILLSYNC_SERVER", "http://localhost:4001"), "API base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("SKILLSYNC_TOKEN"), "Bearer token")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", time.Minute, "Request timeout")

	root.AddCommand(
		newGigsCmd(opts),
		newStatsCmd(opts),
		newFavoriteCmd(opts),
		newChatCmd(opts),
		newInboxCmd(opts),
		newOpenCmd(opts),
		newSendCmd(opts),
		newCheckoutCmd(opts),
	)
	return root
}

func newGigsCmd(opts *cliOptions) *cobra.Command {
	var listOpts webclient.ListOptions
	cmd := &cobra.Command{
		Use:   "gigs",
		Short: "List published gigs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			gigs, err := opts.client().ListGigs(ctx, listOpts)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tSELLER\tRATING\tFROM\tFAV")
			for _, g := range gigs {
				from := "-"
				if g.Offer != nil {
					from = strconv.FormatFloat(g.Offer.Price, 'f', 2, 64)
				}
				fav := ""
				if g.Favorited {
					fav = "*"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\t%s\n", g.ID, g.Title, g.Seller.Username, services.DisplayRating(g.AvgRating), from, fav)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&listOpts.Search, "search", "", "Full-text search on titles")
	cmd.Flags().StringVar(&listOpts.Filter, "filter", "", "Subcategory name")
	cmd.Flags().BoolVar(&listOpts.FavoritesOnly, "favorites", false, "Only favorited gigs")
	return cmd
}

func newStatsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show order and revenue stats for your gigs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			stats, err := opts.client().GigStats(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tORDERS\tLIST TOTAL\tPAID")
			for _, s := range stats {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\n", s.ID, s.Title, s.OrderAmount, s.TotalRevenue, s.PaidRevenue)
			}
			return tw.Flush()
		},
	}
}

func newFavoriteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <gig-id>",
		Short: "Toggle a gig in your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gigID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid gig id %q", args[0])
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()
			client := opts.client()
			detail, err := client.GetGig(ctx, gigID)
			if err != nil {
				return err
			}
			toggle := webclient.NewFavoriteToggle(client, gigID, detail.Favorited)
			if err := toggle.Toggle(ctx); err != nil {
				return err
			}
			detail, err = client.GetGig(ctx, gigID)
			if err != nil {
				return err
			}
			toggle.Sync(detail.Favorited)
			if toggle.Favorited() {
				fmt.Fprintf(cmd.OutOrStdout(), "added %q to favorites\n", detail.Gig.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %q from favorites\n", detail.Gig.Title)
			}
			return nil
		},
	}
}

func newChatCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the agent for gig recommendations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			widget := webclient.NewChatWidget(opts.client())
			widget.Send(ctx, strings.Join(args, " "))
			printChat(cmd.OutOrStdout(), widget)
			return nil
		},
	}
}

func printChat(w io.Writer, widget *webclient.ChatWidget) {
	for _, line := range widget.Lines() {
		if line.Sender == webclient.SenderBot {
			fmt.Fprintf(w, "bot: %s\n", line.Text)
		}
	}
	for _, rec := range widget.Cards() {
		fmt.Fprintf(w, "- %s by %s (score %.2f, rating %.2f) /gig/%s\n  %s\n", rec.GigTitle, rec.SellerName, rec.MatchScore, rec.AvgRating, rec.GigID, rec.Reason)
	}
}

func newInboxCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List your conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			entries, err := opts.client().Inbox(ctx)
			if err != nil {
				return err
			}
			for _, e := range entries {
				last := ""
				if e.LastMessage != nil {
					last = e.LastMessage.Text
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", e.OtherUser.Username, last)
			}
			return nil
		},
	}
}

func newOpenCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open <username>",
		Short: "Open (or start) a conversation and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			conv, view, err := opts.client().OpenConversation(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "conversation %d with %s\n", conv.ID, view.OtherUser.Username)
			printMessages(cmd.OutOrStdout(), view.MessagesWithUsers)
			return nil
		},
	}
}

func printMessages(w io.Writer, messages []models.MessageWithUser) {
	for _, m := range messages {
		fmt.Fprintf(w, "[%s] %s: %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.User.Username, m.Text)
	}
}

func newSendCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <username> <message>",
		Short: "Send a message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			client := opts.client()
			conv, err := client.GetOrCreateConversation(ctx, args[0])
			if err != nil {
				return err
			}
			msg, err := client.SendMessage(ctx, conv.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent message %d\n", msg.ID)
			return nil
		},
	}
}

func newCheckoutCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <offer-id>",
		Short: "Print the payment page URL for an offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offerID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid offer id %q", args[0])
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()
			url, err := opts.client().Checkout(ctx, offerID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
