package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/venue-ticket-service/internal/utils"
)

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password [PASSWORD]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  `Hash an admin password for the server's ADMIN_PASSWORD_HASH setting. Prompts with masked input when no argument is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var plain string
			if len(args) == 1 {
				plain = args[0]
			} else {
				prompt := promptui.Prompt{
					Label: "Password",
					Mask:  '*',
					Validate: func(input string) error {
						if len(input) < 8 {
							return errors.New("password must have at least 8 characters")
						}
						return nil
					},
				}
				var err error
				if plain, err = prompt.Run(); err != nil {
					return err
				}
			}
			hash, err := utils.HashPassword(plain, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}
