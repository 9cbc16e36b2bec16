package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surge-sh/surge-go/pkg/surge"
)

// sslCommand creates the ssl command group.
func (c *CLI) sslCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssl",
		Short: "Manage TLS certificates of a domain",
	}
	cmd.AddCommand(c.sslListCommand())
	cmd.AddCommand(c.sslUploadCommand())
	cmd.AddCommand(c.sslEncryptCommand())
	return cmd
}

func (c *CLI) sslListCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "list <domain>",
		Short:             "List certificates",
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
			certs, err := client.Certs(ctx, auth, args[0])
			if err != nil {
				return err
			}
			printCertTable(args[0], certs)
			return nil
		},
	}
}

func (c *CLI) sslUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "upload <domain> <pem-file>",
		Short:             "Upload a PEM bundle (certificate chain and key)",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeDomains,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			auth, _, err := c.auth(ctx)
			if err != nil {
				return err
			}
			pem, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			if err := client.UploadSSL(ctx, auth, args[0], pem); err != nil {
				return err
			}
			printSuccess("Uploaded certificate for %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}

func (c *CLI) sslEncryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "encrypt <domain>",
		Short:             "Provision a free automatic certificate",
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
			stream, err := client.Encrypt(ctx, auth, args[0])
			if err != nil {
				return err
			}
			defer stream.Close()

			// Certificate issuance reports its steps on the same event
			// stream a deploy uses.
			return c.consumePlain(ctx, stream)
		},
	}
}

func printCertTable(domain string, certs []surge.Cert) {
	if len(certs) == 0 {
		printInfo("No certificates for %s", domain)
		return
	}
	rows := [][]string{}
	for _, cert := range certs {
		auto := ""
		if cert.AutoRenew {
			auto = iconSuccess
		}
		rows = append(rows, []string{
			cert.Subject,
			cert.Issuer,
			fmt.Sprintf("%d days", cert.ExpInDays),
			auto,
		})
	}
	fmt.Println(renderTable([]string{"Subject", "Issuer", "Expires", "Auto"}, rows))
}
