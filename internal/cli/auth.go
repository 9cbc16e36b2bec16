package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/surge-sh/surge-go/pkg/credentials"
	"github.com/surge-sh/surge-go/pkg/errors"
)

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store an access token",
		Long: `Login exchanges your email and password for an access token and stores
it under ~/.config/surge/credentials/, keyed by API endpoint. Signing in
with an address that has no account yet creates one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if email == "" {
				var err error
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return errors.New(errors.ErrCodeInvalidInput, "email and password are required")
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}
			res, err := client.Login(ctx, email, password)
			if err != nil {
				return err
			}

			store, err := c.credentialStore()
			if err != nil {
				return err
			}
			cred := credentials.New(res.Email, res.Token, c.config().Endpoint)
			if err := store.SaveCredential(ctx, cred); err != nil {
				return err
			}

			printSuccess("Logged in as %s", StyleHighlight.Render(res.Email))
			printNextStep("Publish a project with", "surge publish <dir>")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted if omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted if omitted)")

	return cmd
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.credentialStore()
			if err != nil {
				return err
			}
			if err := store.DeleteCredential(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Logged out of %s", c.config().Endpoint)
			return nil
		},
	}
}

// whoamiCommand creates the whoami command.
func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			auth, cred, err := c.auth(ctx)
			if err != nil {
				return err
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}
			account, err := client.Account(ctx, auth)
			if err != nil {
				// The token may be stale; fall back to the stored email
				// so whoami still answers offline.
				loggerFromContext(ctx).Debug("account lookup failed", "err", err)
				printKeyValue("Email", cred.Email)
				return nil
			}

			printKeyValue("Email", account.Email)
			if account.Plan.Name != "" {
				printKeyValue("Plan", account.Plan.Name)
			}
			return nil
		},
	}
}

// tokenCommand creates the token command.
func (c *CLI) tokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the stored access token",
		Long: `Token prints the raw access token for the configured endpoint, for use
in CI environments via basic auth (token as username, empty password).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cred, err := c.auth(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, cred.Token)
			return nil
		},
	}
}

// =============================================================================
// Prompts
// =============================================================================

// promptLine reads one trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	printInline("%s", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing when stdin is a
// terminal, falling back to a plain line otherwise.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	printInline("%s", prompt)
	raw, err := term.ReadPassword(fd)
	printNewline()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read password")
	}
	return strings.TrimSpace(string(raw)), nil
}
