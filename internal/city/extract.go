package city

import (
	"regexp"
	"strings"
)

// DefaultPatterns is the ordered list of natural-language patterns used to
// pull a candidate city name out of a conversational message. Each pattern's
// first capture group holds the candidate. Keywords only match as whole
// words, so "at" inside "what" never anchors a match.
var DefaultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:in|of|for|about|at)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)?)`),
	regexp.MustCompile(`(?i)\b(?:aqi|weather|pollution|air quality)\s+(?:(?:in|of|for|at)\s+)?([a-zA-Z]+(?:\s+[a-zA-Z]+)?)`),
	regexp.MustCompile(`(?i)\b([a-zA-Z]+(?:\s+[a-zA-Z]+)?)\s+(?:aqi|weather|pollution|air quality)\b`),
}

// DefaultStopwords are words that disqualify a pattern candidate. A candidate
// containing any of these is never a city name.
var DefaultStopwords = []string{
	"the", "a", "an", "my", "your", "this", "that",
	"today", "now", "current", "india", "good", "bad", "air", "quality",
}

// ExtractorConfig holds configuration for an Extractor.
type ExtractorConfig struct {
	// Directory is consulted before any pattern matching (required).
	Directory *Directory

	// Patterns overrides DefaultPatterns when non-nil.
	Patterns []*regexp.Regexp

	// Stopwords overrides DefaultStopwords when non-nil.
	Stopwords []string
}

// Extractor pulls a city reference out of free text. Known cities are found
// by containment against the directory first; pattern extraction is the
// fallback for cities the directory has never heard of.
type Extractor struct {
	dir       *Directory
	patterns  []*regexp.Regexp
	stopwords map[string]struct{}
}

// NewExtractor creates an Extractor.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	patterns := cfg.Patterns
	if patterns == nil {
		patterns = DefaultPatterns
	}

	words := cfg.Stopwords
	if words == nil {
		words = DefaultStopwords
	}
	stopwords := make(map[string]struct{}, len(words))
	for _, w := range words {
		stopwords[strings.ToLower(w)] = struct{}{}
	}

	return &Extractor{
		dir:       cfg.Directory,
		patterns:  patterns,
		stopwords: stopwords,
	}
}

// Extract returns the city name referenced in message, or false when no
// plausible candidate is found. Directory, alias and historical matches take
// precedence over pattern extraction.
func (e *Extractor) Extract(message string) (string, bool) {
	lower := strings.ToLower(message)

	for _, entry := range e.dir.entries {
		if strings.Contains(lower, strings.ToLower(entry.Name)) ||
			strings.Contains(lower, strings.ToLower(entry.ID)) {
			return entry.Name, true
		}
	}

	for _, alias := range e.dir.aliases {
		if strings.Contains(lower, strings.ToLower(alias)) {
			return alias, true
		}
	}

	for old, modern := range e.dir.historical {
		if containsWord(lower, old) {
			return modern, true
		}
	}

	for _, pattern := range e.patterns {
		for _, match := range pattern.FindAllStringSubmatch(message, -1) {
			candidate := strings.TrimSpace(match[1])
			if e.accept(candidate) {
				return capitalize(candidate), true
			}
		}
	}

	return "", false
}

// accept rejects candidates that are too short or contain a stopword.
func (e *Extractor) accept(candidate string) bool {
	if len(candidate) < 3 {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(candidate)) {
		if _, stop := e.stopwords[word]; stop {
			return false
		}
	}
	return true
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
