package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/surge-sh/surge-go/pkg/errors"
	"github.com/surge-sh/surge-go/pkg/project"
	"github.com/surge-sh/surge-go/pkg/surge"
)

// publishCommand creates the publish command.
func (c *CLI) publishCommand() *cobra.Command {
	var (
		flagDomain string
		stage      bool
		force      bool
		plain      bool
	)

	cmd := &cobra.Command{
		Use:     "publish [dir]",
		Aliases: []string{"deploy"},
		Short:   "Publish a directory to a domain",
		Long: `Publish uploads a directory of static files and serves it at a domain.

The target domain is taken from --domain, then from a CNAME file in the
project directory, then from the config file; if none is set, a random
*.surge.sh domain is generated. With --stage the upload goes to a
timestamped preview slot instead of the live deployment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			auth, _, err := c.auth(ctx)
			if err != nil {
				return err
			}

			domain := c.resolveDomain(flagDomain, dir)

			client, err := c.newClient()
			if err != nil {
				return err
			}

			opts := surge.PublishOptions{
				Dir:   dir,
				Argv:  os.Args[1:],
				Force: force,
			}

			action := "Publishing"
			publish := client.Publish
			if stage {
				action = "Staging"
				publish = client.PublishWip
			}
			printInfo("%s %s %s %s", action, displayPath(dir), iconArrow, StyleHighlight.Render(domain))

			if stats, err := project.Measure(dir, nil); err == nil {
				printProjectStats(stats.FileCount, stats.TotalSize)
			}
			printNewline()

			stream, err := publish(ctx, auth, domain, opts)
			if err != nil {
				return err
			}
			defer stream.Close()

			if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
				prog := newProgress(loggerFromContext(ctx))
				if err := c.consumePlain(ctx, stream); err != nil {
					return err
				}
				prog.done("Deploy finished")
				return nil
			}
			return c.consumeTUI(ctx, stream)
		},
	}

	cmd.Flags().StringVarP(&flagDomain, "domain", "d", "", "target domain (default: CNAME file, config, generated)")
	cmd.Flags().BoolVar(&stage, "stage", false, "deploy to a timestamped preview slot")
	cmd.Flags().BoolVar(&force, "force", false, "skip server-side overwrite checks")
	cmd.Flags().BoolVar(&plain, "plain", false, "print log lines instead of the progress UI")
	cmd.RegisterFlagCompletionFunc("domain", c.completeDomains)

	return cmd
}

// resolveDomain picks the deploy target: explicit flag, then the
// project's CNAME file, then the configured default, then a generated
// preview name.
func (c *CLI) resolveDomain(flag, dir string) string {
	if flag != "" {
		return flag
	}
	if d := readCNAME(dir); d != "" {
		return d
	}
	if d := c.config().Domain; d != "" {
		return d
	}
	d := surge.GenerateDomain(true)
	printInfo("No domain configured, generated %s", StyleHighlight.Render(d))
	return d
}

// consumePlain drains the event stream as log lines, for pipes and CI.
func (c *CLI) consumePlain(ctx context.Context, stream *surge.EventStream) error {
	logger := loggerFromContext(ctx)
	for {
		ev, err := stream.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Is(err, errors.ErrCodeEvent) {
				// One bad line is not worth aborting a live deploy.
				logger.Warn("skipping undecodable progress event", "err", err)
				continue
			}
			return err
		}
		switch ev.Kind {
		case surge.KindFile:
			printFile(ev.Message)
		case surge.KindProgress:
			if pd, perr := ev.Progress(); perr == nil && pd.End {
				logger.Debug("uploaded", "file", pd.ID, "bytes", pd.Written)
			}
		case surge.KindSuccess:
			printSuccess("%s", ev.Message)
		case surge.KindInfo:
			printDeployInfo(ev)
		case surge.KindError:
			printError("%s", ev.Message)
		default:
			logger.Debug("event", "kind", ev.Kind, "message", ev.Message)
		}
	}
}

// printDeployInfo renders the final info event's URL list.
func printDeployInfo(ev surge.Event) {
	info, err := ev.Info()
	if err != nil {
		return
	}
	printNewline()
	for _, u := range info.URLs {
		printURL(u.Name, u.Domain)
	}
}

// displayPath renders dir relative to $HOME when it lives there.
func displayPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return abs
	}
	rel, err := filepath.Rel(home, abs)
	if err != nil || rel == ".." || filepath.IsAbs(rel) ||
		(len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)) {
		return abs
	}
	return filepath.Join("~", rel)
}
