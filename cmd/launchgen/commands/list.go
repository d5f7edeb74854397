package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"text/tabwriter"

	"git.home.luguber.info/inful/launchgen/internal/diagnostics"
	"git.home.luguber.info/inful/launchgen/internal/generator"
	"git.home.luguber.info/inful/launchgen/internal/metrics"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

// Run prints whatever could be loaded even when resolution fails, then
// returns the failure.
func (l *ListCmd) Run(glob *Global, root *CLI) error {
	s, err := root.Settings()
	if err != nil {
		return err
	}

	r := newRun(s)
	res, genErr := r.generate(glob.ctx(), true)
	diagnostics.LogWarnings(slog.Default(), res.Warnings, true)

	if err := printListing(glob.stdout(), s.Root, res); err != nil {
		return err
	}
	if genErr != nil {
		r.finish(metrics.OutcomeFailed)
		return genErr
	}
	r.finish(metrics.OutcomeValidated)
	return nil
}

func printListing(out io.Writer, root string, res *generator.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "TEMPLATE\tSOURCE\n")
	for _, name := range res.Templates {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", name, relTo(root, res.TemplateSources[name]))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "CONFIGURATION\tEXTENDS\tENABLED\tSOURCE\n")
	for _, f := range res.Entries {
		for _, e := range f.Entries {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%t\t%s[%d]\n", e.Name, e.Extends, e.Enabled, relTo(root, f.Path), e.Location.Index)
		}
	}
	return w.Flush()
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
