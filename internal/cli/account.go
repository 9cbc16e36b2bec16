package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// accountCommand creates the account command.
func (c *CLI) accountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show account details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			auth, _, err := c.auth(ctx)
			if err != nil {
				return err
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			account, err := client.Account(ctx, auth)
			if err != nil {
				return err
			}

			printKeyValue("Email", account.Email)
			printKeyValue("ID", account.ID)
			printKeyValue("Member since", account.CreatedAt)
			if account.Plan.Name != "" {
				printKeyValue("Plan", account.Plan.Friendly)
			}
			for _, perk := range account.Plan.Perks {
				printDetail("%s", perk)
			}
			return nil
		},
	}
}

// plansCommand creates the plans command.
func (c *CLI) plansCommand() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List available subscription plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			auth, _, err := c.auth(ctx)
			if err != nil {
				return err
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			res, err := client.Plans(ctx, auth, domain)
			if err != nil {
				return err
			}

			rows := [][]string{}
			for _, p := range res.List {
				current := ""
				if p.Current {
					current = iconSuccess
				}
				rows = append(rows, []string{
					p.Friendly,
					p.Amount.String(),
					strings.Join(p.Perks, ", "),
					current,
				})
			}
			fmt.Println(renderTable([]string{"Plan", "Amount", "Perks", ""}, rows))
			if res.Message != "" {
				printInfo("%s", res.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "d", "", "show plans for one domain")
	cmd.RegisterFlagCompletionFunc("domain", c.completeDomains)
	return cmd
}

// nukeCommand creates the nuke command.
func (c *CLI) nukeCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "nuke",
		Short: "Permanently delete the account and all deployments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			auth, cred, err := c.auth(ctx)
			if err != nil {
				return err
			}

			if !yes {
				printWarning("This deletes the account %s and every deployment it owns.", cred.Email)
				answer, err := promptLine("Type the account email to confirm: ")
				if err != nil {
					return err
				}
				if answer != cred.Email {
					return errors.New(errors.ErrCodeInvalidInput, "confirmation did not match, aborting")
				}
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}
			if err := client.Nuke(ctx, auth); err != nil {
				return err
			}

			store, err := c.credentialStore()
			if err == nil {
				// The token died with the account.
				_ = store.DeleteCredential(ctx)
			}
			printSuccess("Account deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}
