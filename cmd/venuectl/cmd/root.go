// Package cmd holds the venuectl command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/venue-ticket-service/internal/client"
)

// Version is overridden at build time with -ldflags "-X ...cmd.Version=v1.2.3".
var Version = "dev"

const defaultServer = "http://localhost:8080"

type rootOptions struct {
	server  string
	timeout time.Duration
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.server, nil)
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

// NewRootCmd builds the venuectl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "venuectl",
		Short:         "Venue seat inventory CLI",
		Long:          `Check availability, hold seats and confirm reservations against a running venue server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", envOr("VENUE_SERVER", defaultServer), "venue server base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		newAvailableCmd(opts),
		newSeatsCmd(opts),
		newHoldCmd(opts),
		newReserveCmd(opts),
		newReservationCmd(opts),
		newHashPasswordCmd(),
		newVersionCmd(),
	)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w (see %s --help)", err, cmd.CommandPath())
	})
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the venuectl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "venuectl %s\n", Version)
		},
	}
}

func envOr(key, d string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return d
}
