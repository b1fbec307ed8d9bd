package cmd

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/iliyamo/venue-ticket-service/internal/client"
	"github.com/iliyamo/venue-ticket-service/internal/model"
)

func newAvailableCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "Print the number of free seats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			n, err := opts.client().Available(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newSeatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seats",
		Short: "Show the seat map",
		Long:  `Show every seat as free (.), held (H) or reserved (X), front row first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			cl := opts.client()
			info, err := cl.Venue(ctx)
			if err != nil {
				return err
			}
			rows, err := cl.SeatMap(ctx)
			if err != nil {
				return err
			}
			renderSeatMap(cmd, info, rows)
			return nil
		},
	}
}

func renderSeatMap(cmd *cobra.Command, info client.Venue, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle("%d x %d seats, holds last %gs", info.Rows, info.Columns, info.HoldDurationSeconds)

	header := table.Row{"Row"}
	if len(rows) > 0 {
		for c := range rows[0] {
			header = append(header, strconv.Itoa(c+1))
		}
	}
	t.AppendHeader(header)

	var free, held, reserved int
	for r, row := range rows {
		line := table.Row{model.RowLabel(r)}
		for _, state := range row {
			switch state {
			case "HELD":
				held++
				line = append(line, "H")
			case "RESERVED":
				reserved++
				line = append(line, "X")
			default:
				free++
				line = append(line, ".")
			}
		}
		t.AppendRow(line)
	}

	configs := make([]table.ColumnConfig, 0, len(header))
	for i := 2; i <= len(header); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignCenter, AlignHeader: text.AlignCenter})
	}
	t.SetColumnConfigs(configs)
	t.SetCaption("free %d  held %d  reserved %d", free, held, reserved)
	t.Render()
}
