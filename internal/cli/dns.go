package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surge-sh/surge-go/pkg/surge"
)

// dnsCommand creates the dns command group.
func (c *CLI) dnsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Manage DNS records of a custom domain",
	}
	cmd.AddCommand(c.dnsListCommand())
	cmd.AddCommand(c.dnsAddCommand())
	cmd.AddCommand(c.dnsRemoveCommand())
	return cmd
}

func (c *CLI) dnsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "list <domain>",
		Short:             "List DNS records",
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
			records, err := client.DNS(ctx, auth, args[0])
			if err != nil {
				return err
			}
			printDNSTable(args[0], records)
			return nil
		},
	}
}

func (c *CLI) dnsAddCommand() *cobra.Command {
	var (
		priority int
		ttl      int
	)

	cmd := &cobra.Command{
		Use:               "add <domain> <type> <name> <value>",
		Short:             "Add a DNS record",
		Example:           "  surge dns add example.com MX example.com mail.example.com --priority 10",
		Args:              cobra.ExactArgs(4),
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
			record := surge.DNSRecord{
				Type:     args[1],
				Name:     args[2],
				Value:    args[3],
				Priority: priority,
				TTL:      ttl,
			}
			added, err := client.AddDNS(ctx, auth, args[0], record)
			if err != nil {
				return err
			}
			printSuccess("Added %s record %s", added.Type, StyleHighlight.Render(added.Name))
			if added.ID != "" {
				printDetail("id: %s", added.ID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&priority, "priority", 0, "record priority (MX, SRV)")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "record TTL in seconds (0 uses the server default)")
	return cmd
}

func (c *CLI) dnsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <domain> <record-id>",
		Short:             "Remove a DNS record",
		Args:              cobra.ExactArgs(2),
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
			if err := client.RemoveDNS(ctx, auth, args[0], args[1]); err != nil {
				return err
			}
			printSuccess("Removed record %s from %s", args[1], StyleHighlight.Render(args[0]))
			return nil
		},
	}
}

func printDNSTable(domain string, records []surge.DNSRecord) {
	if len(records) == 0 {
		printInfo("No DNS records for %s", domain)
		return
	}
	rows := [][]string{}
	for _, r := range records {
		prio := ""
		if r.Priority > 0 {
			prio = fmt.Sprintf("%d", r.Priority)
		}
		rows = append(rows, []string{r.Type, r.Name, r.Value, prio, r.ID})
	}
	fmt.Println(renderTable([]string{"Type", "Name", "Value", "Prio", "ID"}, rows))
}
