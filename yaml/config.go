// Package yaml loads and dumps pipeline configuration files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/wetclean"
	"gopkg.in/yaml.v3"
)

// file mirrors wetclean.Config with optional fields so that keys absent from
// the document keep their default values.
type file struct {
	MinTextLength           *int     `yaml:"min_text_length"`
	MaxTextLength           *int     `yaml:"max_text_length"`
	EnglishThreshold        *float64 `yaml:"english_threshold"`
	ContentRatioThreshold   *float64 `yaml:"content_ratio_threshold"`
	PrintableRatioThreshold *float64 `yaml:"printable_ratio_threshold"`
	LatinCharThreshold      *float64 `yaml:"latin_char_threshold"`
	UniqueLinesThreshold    *float64 `yaml:"unique_lines_threshold"`
	WordDiversityThreshold  *float64 `yaml:"word_diversity_threshold"`
	AvgWordsMin             *float64 `yaml:"avg_words_min"`
	AvgWordsMax             *float64 `yaml:"avg_words_max"`
	BatchSize               *int     `yaml:"batch_size"`
	DeduplicationEnabled    *bool    `yaml:"deduplication_enabled"`

	MinLineLength          *int     `yaml:"min_line_length"`
	ReadChunkSize          *int     `yaml:"read_chunk_size"`
	InputPattern           *string  `yaml:"input_pattern"`
	Workers                *int     `yaml:"workers"`
	FailurePolicy          *string  `yaml:"failure_policy"`
	DedupMode              *string  `yaml:"dedup_mode"`
	BloomCapacity          *uint    `yaml:"bloom_capacity"`
	BloomFalsePositiveRate *float64 `yaml:"bloom_false_positive_rate"`
	ExtractHTML            *bool    `yaml:"extract_html"`
	HTMLExtractor          *string  `yaml:"html_extractor"`
}

// LoadConfig reads the YAML file at path over DefaultConfig and validates the
// result. An empty path returns the defaults.
func LoadConfig(path string) (wetclean.Config, error) {
	if path == "" {
		return wetclean.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return wetclean.Config{}, wetclean.Errorf(wetclean.ENOTFOUND, "config file not found: %s", path)
		}
		return wetclean.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return wetclean.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig reads a YAML document from r over DefaultConfig. Unknown keys
// are rejected.
func DecodeConfig(r io.Reader) (wetclean.Config, error) {
	cfg := wetclean.DefaultConfig()

	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return wetclean.Config{}, wetclean.Errorf(wetclean.EINVALID, "parse config: %v", err)
	}
	doc.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return wetclean.Config{}, err
	}
	return cfg, nil
}

// MarshalConfig renders cfg as a YAML document containing every key.
func MarshalConfig(cfg wetclean.Config) ([]byte, error) {
	doc := fromConfig(cfg)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *file) apply(cfg *wetclean.Config) {
	set(&cfg.MinTextLength, f.MinTextLength)
	set(&cfg.MaxTextLength, f.MaxTextLength)
	set(&cfg.EnglishThreshold, f.EnglishThreshold)
	set(&cfg.ContentRatioThreshold, f.ContentRatioThreshold)
	set(&cfg.PrintableRatioThreshold, f.PrintableRatioThreshold)
	set(&cfg.LatinCharThreshold, f.LatinCharThreshold)
	set(&cfg.UniqueLinesThreshold, f.UniqueLinesThreshold)
	set(&cfg.WordDiversityThreshold, f.WordDiversityThreshold)
	set(&cfg.AvgWordsMin, f.AvgWordsMin)
	set(&cfg.AvgWordsMax, f.AvgWordsMax)
	set(&cfg.BatchSize, f.BatchSize)
	set(&cfg.DeduplicationEnabled, f.DeduplicationEnabled)
	set(&cfg.MinLineLength, f.MinLineLength)
	set(&cfg.ReadChunkSize, f.ReadChunkSize)
	set(&cfg.InputPattern, f.InputPattern)
	set(&cfg.Workers, f.Workers)
	if f.FailurePolicy != nil {
		cfg.FailurePolicy = wetclean.FailurePolicy(*f.FailurePolicy)
	}
	if f.DedupMode != nil {
		cfg.DedupMode = wetclean.DedupMode(*f.DedupMode)
	}
	set(&cfg.BloomCapacity, f.BloomCapacity)
	set(&cfg.BloomFalsePositiveRate, f.BloomFalsePositiveRate)
	set(&cfg.ExtractHTML, f.ExtractHTML)
	if f.HTMLExtractor != nil {
		cfg.HTMLExtractor = wetclean.ExtractorName(*f.HTMLExtractor)
	}
}

func fromConfig(cfg wetclean.Config) file {
	policy := string(cfg.FailurePolicy)
	mode := string(cfg.DedupMode)
	extractor := string(cfg.HTMLExtractor)
	return file{
		MinTextLength:           &cfg.MinTextLength,
		MaxTextLength:           &cfg.MaxTextLength,
		EnglishThreshold:        &cfg.EnglishThreshold,
		ContentRatioThreshold:   &cfg.ContentRatioThreshold,
		PrintableRatioThreshold: &cfg.PrintableRatioThreshold,
		LatinCharThreshold:      &cfg.LatinCharThreshold,
		UniqueLinesThreshold:    &cfg.UniqueLinesThreshold,
		WordDiversityThreshold:  &cfg.WordDiversityThreshold,
		AvgWordsMin:             &cfg.AvgWordsMin,
		AvgWordsMax:             &cfg.AvgWordsMax,
		BatchSize:               &cfg.BatchSize,
		DeduplicationEnabled:    &cfg.DeduplicationEnabled,
		MinLineLength:           &cfg.MinLineLength,
		ReadChunkSize:           &cfg.ReadChunkSize,
		InputPattern:            &cfg.InputPattern,
		Workers:                 &cfg.Workers,
		FailurePolicy:           &policy,
		DedupMode:               &mode,
		BloomCapacity:           &cfg.BloomCapacity,
		BloomFalsePositiveRate:  &cfg.BloomFalsePositiveRate,
		ExtractHTML:             &cfg.ExtractHTML,
		HTMLExtractor:           &extractor,
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
