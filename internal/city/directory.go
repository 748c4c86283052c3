package city

import "strings"

// Directory is the read-only set of known cities. It is safe for concurrent
// reads; it is never mutated after construction.
type Directory struct {
	entries    []Identity
	aliases    []string
	historical map[string]string
}

// DirectoryConfig holds configuration for a Directory.
// Zero-value fields fall back to the built-in city data.
type DirectoryConfig struct {
	// Entries is the primary city directory.
	Entries []Identity

	// Aliases are additional known city names without state metadata.
	Aliases []string

	// Historical maps old city names (lowercase) to modern canonical names.
	Historical map[string]string
}

// NewDirectory creates a Directory from the given configuration.
func NewDirectory(cfg DirectoryConfig) *Directory {
	entries := cfg.Entries
	if entries == nil {
		entries = defaultEntries
	}

	aliases := cfg.Aliases
	if aliases == nil {
		aliases = defaultAliases
	}

	historical := cfg.Historical
	if historical == nil {
		historical = defaultHistorical
	}

	return &Directory{
		entries:    entries,
		aliases:    aliases,
		historical: historical,
	}
}

// Entries returns a copy of the primary directory entries.
func (d *Directory) Entries() []Identity {
	entries := make([]Identity, len(d.entries))
	copy(entries, d.entries)
	return entries
}

// Resolve matches a query against the directory. Matching is layered and
// deterministic; the first layer that matches wins:
//  1. case-insensitive substring of a canonical name, or exact id
//  2. substring of a secondary alias (no state metadata)
//  3. historical name, checked as whole-word containment
//
// Returns false when nothing matches; callers then treat the query as an
// ad-hoc city name via Synthesize.
func (d *Directory) Resolve(query string) (Identity, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Identity{}, false
	}

	for _, entry := range d.entries {
		if strings.Contains(strings.ToLower(entry.Name), q) || strings.ToLower(entry.ID) == q {
			return entry, true
		}
	}

	for _, alias := range d.aliases {
		if strings.Contains(strings.ToLower(alias), q) {
			return Identity{ID: strings.ToLower(alias), Name: alias, State: UnknownState}, true
		}
	}

	for old, modern := range d.historical {
		if containsWord(q, old) {
			if entry, ok := d.byName(modern); ok {
				return entry, true
			}
			return Identity{ID: strings.ToLower(modern), Name: modern, State: UnknownState}, true
		}
	}

	return Identity{}, false
}

// Synthesize builds an ad-hoc identity for a query that matched nothing.
func (d *Directory) Synthesize(query string) Identity {
	return Identity{
		ID:    "custom_" + strings.ToLower(query),
		Name:  query,
		State: UnknownState,
	}
}

// byName finds a directory entry by exact canonical name.
func (d *Directory) byName(name string) (Identity, bool) {
	for _, entry := range d.entries {
		if strings.EqualFold(entry.Name, name) {
			return entry, true
		}
	}
	return Identity{}, false
}

// containsWord reports whether s contains w as a whole word.
// Both arguments are expected to be lowercase.
func containsWord(s, w string) bool {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		if field == w {
			return true
		}
	}
	return false
}
