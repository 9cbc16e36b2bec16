package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/surge-sh/surge-go/pkg/surge"
)

// domainAction wires one domain-scoped API call into a cobra command.
// All of these share the same shape: one domain argument, auth, one
// request, one confirmation line.
func (c *CLI) domainAction(use, short, past string, fn func(context.Context, *surge.Client, surge.Auth, string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:               use + " <domain>",
		Short:             short,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDomains,
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
			err = withSpinner(ctx, "Waiting for "+args[0], func() error {
				return fn(ctx, client, auth, args[0])
			})
			if err != nil {
				return err
			}
			printSuccess("%s %s", past, StyleHighlight.Render(args[0]))
			return nil
		},
	}
	return cmd
}

// teardownCommand creates the teardown command.
func (c *CLI) teardownCommand() *cobra.Command {
	cmd := c.domainAction("teardown", "Remove a deployment from the network", "Tore down",
		func(ctx context.Context, client *surge.Client, auth surge.Auth, domain string) error {
			return client.Teardown(ctx, auth, domain)
		})
	cmd.Long = `Teardown removes the project from the network. The domain stops
serving immediately; its revision history is discarded.`
	return cmd
}

// rollbackCommand creates the rollback command.
func (c *CLI) rollbackCommand() *cobra.Command {
	return c.domainAction("rollback", "Activate the previous revision", "Rolled back",
		func(ctx context.Context, client *surge.Client, auth surge.Auth, domain string) error {
			return client.Rollback(ctx, auth, domain)
		})
}

// rollforeCommand creates the rollfore command.
func (c *CLI) rollforeCommand() *cobra.Command {
	return c.domainAction("rollfore", "Activate the next revision", "Rolled forward",
		func(ctx context.Context, client *surge.Client, auth surge.Auth, domain string) error {
			return client.Rollfore(ctx, auth, domain)
		})
}

// cutoverCommand creates the cutover command.
func (c *CLI) cutoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "cutover <domain> [revision]",
		Short:             "Promote a staged or listed revision to live",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: c.completeDomains,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRevisionAction(cmd, args, "Cut over",
				func(ctx context.Context, client *surge.Client, auth surge.Auth, domain, rev string) error {
					return client.Cutover(ctx, auth, domain, rev)
				})
		},
	}
	return cmd
}

// discardCommand creates the discard command.
func (c *CLI) discardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "discard <domain> [revision]",
		Short:             "Delete a staged or listed revision",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: c.completeDomains,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRevisionAction(cmd, args, "Discarded",
				func(ctx context.Context, client *surge.Client, auth surge.Auth, domain, rev string) error {
					return client.Discard(ctx, auth, domain, rev)
				})
		},
	}
	return cmd
}

func (c *CLI) runRevisionAction(cmd *cobra.Command, args []string, past string,
	fn func(context.Context, *surge.Client, surge.Auth, string, string) error) error {

	ctx := cmd.Context()
	auth, _, err := c.auth(ctx)
	if err != nil {
		return err
	}
	client, err := c.newClient()
	if err != nil {
		return err
	}
	rev := ""
	if len(args) == 2 {
		rev = args[1]
	}
	if err := fn(ctx, client, auth, args[0], rev); err != nil {
		return err
	}
	if rev != "" {
		printSuccess("%s revision %s of %s", past, rev, StyleHighlight.Render(args[0]))
	} else {
		printSuccess("%s %s", past, StyleHighlight.Render(args[0]))
	}
	return nil
}
