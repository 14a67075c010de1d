package main

import (
	"log/slog"

	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/bloom"
	"github.com/fwojciec/wetclean/dedup"
	"github.com/fwojciec/wetclean/fs"
	"github.com/fwojciec/wetclean/goquery"
	"github.com/fwojciec/wetclean/pipeline"
	"github.com/fwojciec/wetclean/readability"
	wslog "github.com/fwojciec/wetclean/slog"
	"github.com/fwojciec/wetclean/trafilatura"
	"github.com/fwojciec/wetclean/warc"
)

// htmlBodyLimit caps the decoded size of one HTML response payload.
const htmlBodyLimit = 4 << 20

// newProcessor builds the file processor for cfg, wrapped with logging.
func newProcessor(cfg wetclean.Config, lexicon *wetclean.Lexicon, logger *slog.Logger) wetclean.FileProcessor {
	proc := pipeline.NewProcessor(warc.Opener{}, lexicon, cfg)
	if cfg.ExtractHTML {
		proc.HTML = &warc.HTMLDecoder{Limit: htmlBodyLimit}
		proc.Extractor = wslog.NewLoggingExtractor(newExtractor(cfg.HTMLExtractor), logger)
	}
	return wslog.NewLoggingFileProcessor(proc, logger)
}

// newExtractor returns the HTML extractor named by name.
func newExtractor(name wetclean.ExtractorName) wetclean.Extractor {
	switch name {
	case wetclean.ExtractReadability:
		return readability.NewExtractor()
	case wetclean.ExtractGoquery:
		return goquery.NewExtractor()
	default:
		return trafilatura.NewExtractor()
	}
}

// newHashSet returns the merge hash set selected by cfg, or nil when
// deduplication is disabled.
func newHashSet(cfg wetclean.Config, logger *slog.Logger) wetclean.HashSet {
	if !cfg.DeduplicationEnabled {
		return nil
	}
	if cfg.DedupMode == wetclean.DedupApproximate {
		set := bloom.NewSet(cfg.BloomCapacity, cfg.BloomFalsePositiveRate)
		logger.Debug("bloom filter", "capacity", cfg.BloomCapacity, "fp_rate", cfg.BloomFalsePositiveRate, "bits", set.Cap())
		return set
	}
	return dedup.NewExactSet(0)
}

// newMerger builds the merge stage over scratch, wrapped with logging.
func newMerger(cfg wetclean.Config, scratch wetclean.ScratchStore, keep bool, logger *slog.Logger) wetclean.Merger {
	m := &dedup.Merger{
		Scratch:   scratch,
		Seen:      newHashSet(cfg, logger),
		ChunkSize: cfg.ReadChunkSize,
		Keep:      keep,
	}
	return wslog.NewLoggingMerger(m, logger)
}

// newPipeline wires the full preprocessing pipeline.
func newPipeline(cfg wetclean.Config, lexicon *wetclean.Lexicon, scratchDir string, runs wetclean.RunService, logger *slog.Logger) *pipeline.Pipeline {
	scratch := fs.NewScratchStore(scratchDir)
	return &pipeline.Pipeline{
		Coordinator: &pipeline.Coordinator{
			Worker: &pipeline.Worker{
				Processor: newProcessor(cfg, lexicon, logger),
				Scratch:   scratch,
			},
			Workers: cfg.Workers,
			Policy:  cfg.FailurePolicy,
		},
		Merger: newMerger(cfg, scratch, false, logger),
		Runs:   runs,
	}
}
