package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/launchgen/internal/diagnostics"
	"git.home.luguber.info/inful/launchgen/internal/metrics"
)

// ValidateCmd implements the 'validate' command. It resolves everything the
// generate command would, reports every problem and never writes.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(glob *Global, root *CLI) error {
	s, err := root.Settings()
	if err != nil {
		return err
	}

	r := newRun(s)
	res, err := r.generate(glob.ctx(), true)
	diagnostics.LogWarnings(slog.Default(), res.Warnings, true)
	if err != nil {
		r.finish(metrics.OutcomeFailed)
		return err
	}

	_, _ = fmt.Fprintf(glob.stdout(), "OK: %d template(s), %d configuration file(s), %d entries (%d enabled, %d disabled), %d warning(s)\n",
		len(res.Templates), res.Stats.Files, res.Stats.Entries, res.Stats.Enabled, res.Stats.Disabled, len(res.Warnings))
	r.finish(metrics.OutcomeValidated)
	return nil
}
