package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Storage keys for the persisted records
const (
	// KeyRecentSearches holds the recent-searches list
	KeyRecentSearches = "recentSearches"

	// KeyCurrentSeason holds the pinned season pointer (or JSON null)
	KeyCurrentSeason = "current-season"
)

// RecordVersion is the schema version written by this build
const RecordVersion = 1

// MaxRecentSearches caps the recent-searches list
const MaxRecentSearches = 10

// RecentSearch is one entry of the recent-searches history.
// Name is a display label only; ID is authoritative.
type RecentSearch struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// Valid reports whether the entry carries a usable show id
func (r RecentSearch) Valid() bool {
	return r.ID > 0
}

// recentSearchRecord is the versioned on-disk envelope
type recentSearchRecord struct {
	Version int            `json:"version"`
	Entries []RecentSearch `json:"entries"`
}

// DecodeRecentSearches parses a stored recent-searches blob.
// Accepts the versioned envelope and the legacy bare array. Anything it
// cannot read yields an empty list.
func DecodeRecentSearches(raw string) []RecentSearch {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil
	}

	var entries []RecentSearch
	if data[0] == '[' {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil
		}
	} else {
		var rec recentSearchRecord
		if err := json.Unmarshal(data, &rec); err != nil || rec.Version != RecordVersion {
			return nil
		}
		entries = rec.Entries
	}

	return normalizeRecent(entries)
}

// EncodeRecentSearches serializes the list in the current envelope format
func EncodeRecentSearches(entries []RecentSearch) (string, error) {
	if entries == nil {
		entries = []RecentSearch{}
	}
	data, err := json.Marshal(recentSearchRecord{Version: RecordVersion, Entries: entries})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PrependRecent moves entry to the front, dropping any entry with the same id,
// and truncates to MaxRecentSearches. The input slice is not modified.
func PrependRecent(list []RecentSearch, entry RecentSearch) []RecentSearch {
	out := make([]RecentSearch, 0, len(list)+1)
	out = append(out, entry)
	for _, e := range list {
		if e.ID != entry.ID {
			out = append(out, e)
		}
	}
	if len(out) > MaxRecentSearches {
		out = out[:MaxRecentSearches]
	}
	return out
}

// RemoveRecent returns the list without entries matching id, and whether anything was removed
func RemoveRecent(list []RecentSearch, id int) ([]RecentSearch, bool) {
	out := make([]RecentSearch, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out, len(out) != len(list)
}

// normalizeRecent drops invalid entries and duplicate ids (first wins), then caps the length
func normalizeRecent(entries []RecentSearch) []RecentSearch {
	seen := make(map[int]bool, len(entries))
	out := make([]RecentSearch, 0, len(entries))
	for _, e := range entries {
		if !e.Valid() || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		e.Name = strings.TrimSpace(e.Name)
		out = append(out, e)
		if len(out) == MaxRecentSearches {
			break
		}
	}
	return out
}

// SeasonPointer identifies the user's pinned season
type SeasonPointer struct {
	ID           int `json:"id"`
	SeasonNumber int `json:"season_number"`
}

// Valid reports whether the pointer references a real show and season number
func (p SeasonPointer) Valid() bool {
	return p.ID > 0 && p.SeasonNumber >= 0
}

// seasonPointerRecord is the on-disk shape. The legacy format stored the
// pointer fields at the top level without a version.
type seasonPointerRecord struct {
	Version      int            `json:"version"`
	Current      *SeasonPointer `json:"current"`
	ID           *int           `json:"id,omitempty"`
	SeasonNumber *int           `json:"season_number,omitempty"`
}

// DecodeSeasonPointer parses a stored current-season blob.
// JSON null, malformed data and invalid pointers all yield nil.
func DecodeSeasonPointer(raw string) *SeasonPointer {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var rec seasonPointerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}

	var p *SeasonPointer
	switch {
	case rec.Version == RecordVersion:
		p = rec.Current
	case rec.Version == 0 && rec.ID != nil && rec.SeasonNumber != nil:
		p = &SeasonPointer{ID: *rec.ID, SeasonNumber: *rec.SeasonNumber}
	}

	if p == nil || !p.Valid() {
		return nil
	}
	return p
}

// EncodeSeasonPointer serializes the pointer. A nil pointer encodes as JSON null.
func EncodeSeasonPointer(p *SeasonPointer) (string, error) {
	if p == nil {
		return "null", nil
	}
	data, err := json.Marshal(seasonPointerRecord{Version: RecordVersion, Current: p})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
