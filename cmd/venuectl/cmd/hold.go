package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newHoldCmd(opts *rootOptions) *cobra.Command {
	var (
		numSeats int
		email    string
	)
	cmd := &cobra.Command{
		Use:   "hold",
		Short: "Hold the best available seats",
		Long:  `Hold the first N free seats, front row first and left to right. Prompts for the email when --email is not given.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if numSeats <= 0 {
				return errors.New("--seats must be greater than 0")
			}
			if email == "" {
				var err error
				if email, err = promptEmail(); err != nil {
					return err
				}
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			hold, err := opts.client().Hold(ctx, numSeats, email)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Hold", "Email", "Expires", "Seats"})
			labels := make([]string, len(hold.Seats))
			for i, s := range hold.Seats {
				labels[i] = s.Label()
			}
			t.AppendRow(table.Row{hold.ID, hold.CustomerEmail, hold.ExpiresAt.Local().Format(time.TimeOnly), strings.Join(labels, " ")})
			t.Render()
			fmt.Fprintf(cmd.OutOrStdout(), "reserve with: venuectl reserve %s -e %s\n", hold.ID, hold.CustomerEmail)
			return nil
		},
	}
	cmd.Flags().IntVarP(&numSeats, "seats", "n", 1, "number of seats to hold")
	cmd.Flags().StringVarP(&email, "email", "e", "", "customer email")
	return cmd
}

func newReserveCmd(opts *rootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reserve HOLD_ID",
		Short: "Confirm a hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				var err error
				if email, err = promptEmail(); err != nil {
					return err
				}
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			conf, err := opts.client().Reserve(ctx, args[0], email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "confirmed: %s\n", conf)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "customer email the hold was made for")
	return cmd
}

func newReservationCmd(opts *rootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reservation CONFIRMATION_ID",
		Short: "Show a confirmed reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			res, err := opts.client().Reservation(ctx, args[0], email)
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Seat", "Row", "Number"})
			for _, s := range res.Seats {
				t.AppendRow(table.Row{s.Label(), s.Row + 1, s.Column + 1})
			}
			t.SetTitle("%s (%s)", res.ConfirmationID, res.CustomerEmail)
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "customer email the reservation belongs to")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func promptEmail() (string, error) {
	prompt := promptui.Prompt{
		Label: "Customer email",
		Validate: func(input string) error {
			if !strings.Contains(strings.TrimSpace(input), "@") {
				return errors.New("invalid email")
			}
			return nil
		},
	}
	email, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(email), nil
}
