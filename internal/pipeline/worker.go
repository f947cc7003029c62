package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bgriffith/docforge/internal/config"
	"github.com/bgriffith/docforge/internal/parser"
	"github.com/bgriffith/docforge/internal/render"
	"github.com/bgriffith/docforge/internal/split"
)

// Worker converts a single document job end to end: parse, split, render.
// Each worker owns the tree it builds, so no locking happens below the job.
type Worker struct {
	log   *slog.Logger
	cfg   config.Config
	stats *Stats
}

func NewWorker(cfg config.Config, stats *Stats, log *slog.Logger) *Worker {
	return &Worker{
		log:   log,
		cfg:   cfg,
		stats: stats,
	}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	start := time.Now()
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, parser.Options{
		PDFFallbackPdftotext: w.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	data := job.FileData()
	doc, err := p.Parse(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetContentHash(ContentHashHex(data))

	// Phase 2: Split
	job.SetStatus(StatusSplitting, "splitting")
	specStr := job.SplitSpec
	if specStr == "" {
		specStr = w.cfg.DefaultSplitSpec
	}
	var results []split.Result
	if specStr == "none" {
		results = []split.Result{split.Whole(doc)}
	} else {
		spec, err := split.ParseSpec(specStr)
		if err != nil {
			log.Error("bad split spec", "spec", specStr, "error", err)
			job.AddError(err.Error())
			job.SetStatus(StatusFailed, "splitting")
			return
		}
		if spec.Strategy == split.StrategyAuto && spec.Words <= 0 {
			spec.Words = w.cfg.DefaultTargetWords
		}
		results, err = split.Run(doc, spec)
		if err != nil {
			log.Error("split failed", "spec", specStr, "error", err)
			job.AddError(fmt.Sprintf("split: %s", err))
			job.SetStatus(StatusFailed, "splitting")
			return
		}
	}
	job.SetTotalParts(len(results))
	log.Info("split document", "spec", specStr, "parts", len(results))

	// Phase 3: Render
	job.SetStatus(StatusRendering, "rendering")
	parts := make([]Part, 0, len(results))
	words := 0
	hadErrors := false
	for _, res := range results {
		if ctx.Err() != nil {
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "rendering")
			return
		}
		md, err := render.Markdown{}.Render(res.Document)
		if err != nil {
			log.Error("render failed", "part", res.Index, "error", err)
			job.AddError(fmt.Sprintf("part %d: %s", res.Index, err))
			hadErrors = true
			continue
		}
		parts = append(parts, Part{
			Index:     res.Index,
			Title:     res.Title,
			Slug:      res.FilenameSlug(),
			WordCount: res.WordCount,
			Markdown:  md,
			Metadata:  res.Metadata,
		})
		job.IncrPartsRendered()
		words += res.WordCount
	}
	job.AddWords(words)
	job.SetParts(parts)

	status := StatusCompleted
	phase := "done"
	switch {
	case hadErrors && len(parts) > 0:
		status = StatusPartial
	case hadErrors:
		status, phase = StatusFailed, "rendering"
	}
	job.SetStatus(status, phase)

	w.stats.RecordJob(len(parts), words, time.Since(start))
	log.Info("conversion complete", "parts", len(parts), "words", words, "status", status)
}
