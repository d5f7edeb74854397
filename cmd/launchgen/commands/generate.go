package commands

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/launchgen/internal/diagnostics"
	"git.home.luguber.info/inful/launchgen/internal/logfields"
	"git.home.luguber.info/inful/launchgen/internal/metrics"
	"git.home.luguber.info/inful/launchgen/internal/output"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Stdout bool `name:"stdout" help:"Print the document to stdout instead of writing the output file"`
}

func (g *GenerateCmd) Run(glob *Global, root *CLI) error {
	s, err := root.Settings()
	if err != nil {
		return err
	}

	r := newRun(s)
	res, err := r.generate(glob.ctx(), false)
	diagnostics.LogWarnings(slog.Default(), res.Warnings, false)
	if err != nil {
		r.finish(metrics.OutcomeFailed)
		return err
	}

	if g.Stdout {
		data, err := output.Marshal(res.Document)
		if err != nil {
			r.finish(metrics.OutcomeFailed)
			return err
		}
		if _, err := glob.stdout().Write(data); err != nil {
			r.finish(metrics.OutcomeFailed)
			return err
		}
		r.finish(metrics.OutcomeValidated)
		return nil
	}

	writeStart := time.Now()
	written, err := output.WriteFile(s.Output, res.Document)
	r.recorder.ObservePhaseDuration("write", time.Since(writeStart))
	if err != nil {
		r.finish(metrics.OutcomeFailed)
		return err
	}

	if written.Changed {
		slog.Info("Wrote launch configuration",
			logfields.Path(written.Path),
			logfields.Count(len(res.Document.Configurations)))
		r.finish(metrics.OutcomeWritten)
	} else {
		slog.Info("Launch configuration unchanged", logfields.Path(written.Path))
		r.finish(metrics.OutcomeUnchanged)
	}
	return nil
}
