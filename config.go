package wetclean

import "path/filepath"

// FailurePolicy decides what the coordinator does when one archive file fails.
type FailurePolicy string

// FailurePolicy constants.
const (
	// FailAbort cancels the whole run on the first failed file.
	FailAbort FailurePolicy = "abort"
	// FailSkip records the failure and keeps processing the other files.
	FailSkip FailurePolicy = "skip"
)

// DedupMode selects the hash set used by the merge stage.
type DedupMode string

// DedupMode constants.
const (
	// DedupExact keeps every 64-bit content hash in memory.
	DedupExact DedupMode = "exact"
	// DedupApproximate uses a fixed-size Bloom filter. A false positive
	// drops a unique document; duplicates are never emitted.
	DedupApproximate DedupMode = "approximate"
)

// ExtractorName selects the library that turns HTML responses into text.
type ExtractorName string

// ExtractorName constants.
const (
	ExtractTrafilatura ExtractorName = "trafilatura"
	ExtractReadability ExtractorName = "readability"
	// ExtractGoquery keeps the text of leaf block elements after dropping
	// scripts, styles, and page chrome. Fastest, least selective.
	ExtractGoquery ExtractorName = "goquery"
)

// Config holds the thresholds and knobs of one pipeline run.
// It is a value type: copies are independent and nothing mutates a Config
// after it has been handed to a component.
type Config struct {
	// Stage 1 and 2 bounds, in characters. Both ends are exclusive.
	MinTextLength int `json:"minTextLength"`
	MaxTextLength int `json:"maxTextLength"`

	EnglishThreshold        float64 `json:"englishThreshold"`
	ContentRatioThreshold   float64 `json:"contentRatioThreshold"`
	PrintableRatioThreshold float64 `json:"printableRatioThreshold"`
	LatinCharThreshold      float64 `json:"latinCharThreshold"`
	UniqueLinesThreshold    float64 `json:"uniqueLinesThreshold"`
	WordDiversityThreshold  float64 `json:"wordDiversityThreshold"`
	AvgWordsMin             float64 `json:"avgWordsMin"`
	AvgWordsMax             float64 `json:"avgWordsMax"`

	// BatchSize is the number of accepted documents buffered before a
	// single write to the scratch file.
	BatchSize            int  `json:"batchSize"`
	DeduplicationEnabled bool `json:"deduplicationEnabled"`

	// MinLineLength is the length a stripped line must exceed to survive
	// boilerplate removal.
	MinLineLength int `json:"minLineLength"`

	// ReadChunkSize is the read size used when streaming scratch files.
	ReadChunkSize int `json:"readChunkSize"`

	// InputPattern is the filename glob used to discover archive files.
	InputPattern string `json:"inputPattern"`

	// Workers bounds parallelism. Zero means available CPUs.
	Workers int `json:"workers"`

	FailurePolicy FailurePolicy `json:"failurePolicy"`

	DedupMode              DedupMode `json:"dedupMode"`
	BloomCapacity          uint      `json:"bloomCapacity"`
	BloomFalsePositiveRate float64   `json:"bloomFalsePositiveRate"`

	// ExtractHTML enables text extraction from HTML response records.
	ExtractHTML   bool          `json:"extractHtml"`
	HTMLExtractor ExtractorName `json:"htmlExtractor"`
}

// DefaultConfig returns a fresh copy of the compiled-in defaults.
func DefaultConfig() Config {
	return Config{
		MinTextLength:           500,
		MaxTextLength:           20000,
		EnglishThreshold:        0.4,
		ContentRatioThreshold:   0.2,
		PrintableRatioThreshold: 0.95,
		LatinCharThreshold:      0.95,
		UniqueLinesThreshold:    0.5,
		WordDiversityThreshold:  0.3,
		AvgWordsMin:             5,
		AvgWordsMax:             50,
		BatchSize:               500,
		DeduplicationEnabled:    true,

		MinLineLength:          60,
		ReadChunkSize:          1 << 20,
		InputPattern:           "*.warc.wet.gz",
		Workers:                0,
		FailurePolicy:          FailAbort,
		DedupMode:              DedupExact,
		BloomCapacity:          10_000_000,
		BloomFalsePositiveRate: 0.001,
		ExtractHTML:            false,
		HTMLExtractor:          ExtractTrafilatura,
	}
}

// Validate returns an error if the configuration is inconsistent.
func (c *Config) Validate() error {
	if c.MinTextLength < 0 {
		return Errorf(EINVALID, "min text length must not be negative")
	}
	if c.MaxTextLength <= c.MinTextLength {
		return Errorf(EINVALID, "max text length must exceed min text length")
	}

	ratios := []struct {
		name  string
		value float64
	}{
		{"english threshold", c.EnglishThreshold},
		{"content ratio threshold", c.ContentRatioThreshold},
		{"printable ratio threshold", c.PrintableRatioThreshold},
		{"latin char threshold", c.LatinCharThreshold},
		{"unique lines threshold", c.UniqueLinesThreshold},
		{"word diversity threshold", c.WordDiversityThreshold},
	}
	for _, r := range ratios {
		if r.value < 0 || r.value > 1 {
			return Errorf(EINVALID, "%s must be between 0 and 1, got %v", r.name, r.value)
		}
	}

	if c.AvgWordsMin < 0 || c.AvgWordsMax <= c.AvgWordsMin {
		return Errorf(EINVALID, "average words per sentence bounds are inconsistent")
	}
	if c.BatchSize <= 0 {
		return Errorf(EINVALID, "batch size must be positive")
	}
	if c.MinLineLength < 0 {
		return Errorf(EINVALID, "min line length must not be negative")
	}
	if c.ReadChunkSize <= 0 {
		return Errorf(EINVALID, "read chunk size must be positive")
	}
	if c.InputPattern == "" {
		return Errorf(EINVALID, "input pattern required")
	}
	if _, err := filepath.Match(c.InputPattern, ""); err != nil {
		return Errorf(EINVALID, "invalid input pattern %q", c.InputPattern)
	}
	if c.Workers < 0 {
		return Errorf(EINVALID, "workers must not be negative")
	}

	switch c.FailurePolicy {
	case FailAbort, FailSkip:
	default:
		return Errorf(EINVALID, "unknown failure policy %q", c.FailurePolicy)
	}

	switch c.DedupMode {
	case DedupExact:
	case DedupApproximate:
		if c.BloomCapacity == 0 {
			return Errorf(EINVALID, "bloom capacity must be positive")
		}
		if c.BloomFalsePositiveRate <= 0 || c.BloomFalsePositiveRate >= 1 {
			return Errorf(EINVALID, "bloom false positive rate must be between 0 and 1")
		}
	default:
		return Errorf(EINVALID, "unknown dedup mode %q", c.DedupMode)
	}

	switch c.HTMLExtractor {
	case ExtractTrafilatura, ExtractReadability, ExtractGoquery:
	default:
		return Errorf(EINVALID, "unknown html extractor %q", c.HTMLExtractor)
	}

	return nil
}
