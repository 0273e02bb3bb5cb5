package main

import (
	"context"
	"time"

	"github.com/desertthunder/ccx/internal/formatter"
	"github.com/desertthunder/ccx/internal/repositories"
	"github.com/urfave/cli/v3"
)

// LogList lists recorded verdicts from the local log, newest last.
func (r *Runner) LogList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewVerdictRepository(db)

	criteria := map[string]any{}
	if source := cmd.String("source"); source != "" {
		criteria["source"] = source
	}
	if cmd.Bool("free") {
		criteria["is_free"] = true
	}

	verdicts, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		rows := make([]map[string]any, 0, len(verdicts))
		for _, v := range verdicts {
			rows = append(rows, map[string]any{
				"track_id":   v.TrackID(),
				"name":       v.Name(),
				"artist":     v.Artist(),
				"is_free":    v.IsFree(),
				"confidence": v.Confidence(),
				"source":     v.Source(),
				"checked_at": v.UpdatedAt().Format(time.RFC3339),
			})
		}
		return r.writeJSON(rows, true)
	}

	r.writePlainHeader("Verdict Log")
	if len(verdicts) == 0 {
		r.writePlain("No verdicts recorded.\n")
		return nil
	}

	for i, v := range verdicts {
		r.writePlain("%d. %s — %s\n", i+1, v.Name(), v.Artist())
		r.writePlain("   %s (confidence %.2f) via %s at %s\n",
			formatter.VerdictString(v.IsFree()), v.Confidence(), v.Source(),
			v.UpdatedAt().Format("2006-01-02 15:04"))
	}
	return nil
}

// LogClear removes every recorded verdict.
func (r *Runner) LogClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewVerdictRepository(db)

	cleared, err := repo.Clear()
	if err != nil {
		return err
	}

	r.logger.Infof("cleared %d verdicts", cleared)
	return r.writePlain("✓ Cleared %d verdicts\n", cleared)
}
