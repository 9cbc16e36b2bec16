package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/surge-sh/surge-go/pkg/cache"
	"github.com/surge-sh/surge-go/pkg/httputil"
	"github.com/surge-sh/surge-go/pkg/surge"
)

// domainListTTL bounds how stale the completion cache may get.
const domainListTTL = 10 * time.Minute

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:     "list [domain]",
		Aliases: []string{"ls"},
		Short:   "List deployments, or the revisions of one domain",
		Args:    cobra.MaximumNArgs(1),
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

			// Reads are idempotent, so transient failures get retried.
			if len(args) == 1 {
				var revs []surge.Metadata
				err := withSpinner(ctx, "Fetching revisions", func() error {
					return httputil.RetryWithBackoff(ctx, func() error {
						var err error
						revs, err = client.ListDomain(ctx, auth, args[0])
						return err
					})
				})
				if err != nil {
					return err
				}
				printRevisionTable(args[0], revs)
				return nil
			}

			var deploys []surge.Deployment
			err = withSpinner(ctx, "Fetching deployments", func() error {
				return httputil.RetryWithBackoff(ctx, func() error {
					var err error
					deploys, err = client.List(ctx, auth)
					return err
				})
			})
			if err != nil {
				return err
			}
			c.storeDomainList(ctx, cred.Token, deploys, noCache)
			printDeploymentTable(deploys)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not refresh the completion cache")
	return cmd
}

// storeDomainList refreshes the cached domain names used by shell
// completion. Failures only cost completion freshness, so they are
// logged and swallowed.
func (c *CLI) storeDomainList(ctx context.Context, token string, deploys []surge.Deployment, noCache bool) {
	store, err := newCache(noCache)
	if err != nil {
		return
	}
	defer store.Close()

	names := make([]string, len(deploys))
	for i, d := range deploys {
		names[i] = d.Domain
	}
	data, err := json.Marshal(names)
	if err != nil {
		return
	}
	key := cache.DomainListKey(c.config().Endpoint, token)
	if err := store.Set(ctx, key, data, domainListTTL); err != nil {
		loggerFromContext(ctx).Debug("could not cache domain list", "err", err)
	}
}

// cachedDomainList returns the cached domain names, if fresh.
func (c *CLI) cachedDomainList(ctx context.Context, token string) []string {
	store, err := newCache(false)
	if err != nil {
		return nil
	}
	defer store.Close()

	data, ok, err := store.Get(ctx, cache.DomainListKey(c.config().Endpoint, token))
	if err != nil || !ok {
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil
	}
	return names
}

// =============================================================================
// Tables
// =============================================================================

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})
	return t.Render()
}

func printDeploymentTable(deploys []surge.Deployment) {
	if len(deploys) == 0 {
		printInfo("No deployments yet")
		printNextStep("Publish a project with", "surge publish <dir>")
		return
	}

	rows := [][]string{}
	for _, d := range deploys {
		rows = append(rows, []string{
			d.Domain,
			d.PlanName,
			fmt.Sprintf("%d", d.Rev),
			formatSize(d.PublicTotalSize),
			d.TimeAgoInWords,
		})
	}
	fmt.Println(renderTable([]string{"Domain", "Plan", "Rev", "Size", "Published"}, rows))
}

func printRevisionTable(domain string, revs []surge.Metadata) {
	if len(revs) == 0 {
		printInfo("No revisions for %s", domain)
		return
	}

	rows := [][]string{}
	for _, r := range revs {
		rev := fmt.Sprintf("%d", r.Rev)
		if r.Current {
			rev += " " + iconSuccess
		}
		rows = append(rows, []string{
			rev,
			fmt.Sprintf("%d", r.PublicFileCount),
			formatSize(r.PublicTotalSize),
			r.Email,
			r.TimeAgoInWords,
		})
	}
	fmt.Println(renderTable([]string{"Rev", "Files", "Size", "By", "Published"}, rows))
}
