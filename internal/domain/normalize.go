package domain

import (
	"strings"

	"github.com/google/uuid"
)

// WordRecord is a partially-filled word produced by an ingestion channel
// (file parser, term extraction, demo data). Only the term is required;
// enrichment fields are carried through when the source supplies them.
type WordRecord struct {
	Term       string
	Definition string
	Phonetic   string
	Example    string
}

// NormalizeTerms canonicalizes a sequence of raw term strings into
// deduplicated WordItems. See NormalizeRecords for the dedup policy.
func NormalizeTerms(terms []string) []*WordItem {
	records := make([]WordRecord, 0, len(terms))
	for _, t := range terms {
		records = append(records, WordRecord{Term: t})
	}
	return NormalizeRecords(records)
}

// NormalizeRecords canonicalizes raw word records into a deduplicated,
// ordered sequence of WordItems. The dedup key is the case-folded term and
// the first occurrence in input order wins; later duplicates are discarded
// along with their enrichment fields, which keeps the output deterministic.
// Every surviving item gets a fresh ID and a mastery level of zero.
//
// NormalizeRecords never fails: empty, blank-only or fully-duplicate input
// yields an empty slice, which is the caller's signal that ingestion
// produced nothing usable.
func NormalizeRecords(records []WordRecord) []*WordItem {
	seen := make(map[string]struct{}, len(records))
	items := make([]*WordItem, 0, len(records))

	for _, rec := range records {
		term := strings.TrimSpace(rec.Term)
		if term == "" {
			continue
		}

		key := Fold(term)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		items = append(items, &WordItem{
			ID:         uuid.New(),
			Term:       term,
			Definition: strings.TrimSpace(rec.Definition),
			Phonetic:   strings.TrimSpace(rec.Phonetic),
			Example:    strings.TrimSpace(rec.Example),
		})
	}

	return items
}

// DedupWords applies the same first-wins, case-folded dedup policy to
// already-created WordItems without reassigning IDs. Callers may pass
// overlapping sets into a session, so the policy is applied again at
// session start.
func DedupWords(words []*WordItem) []*WordItem {
	seen := make(map[string]struct{}, len(words))
	out := make([]*WordItem, 0, len(words))

	for _, w := range words {
		if w == nil || strings.TrimSpace(w.Term) == "" {
			continue
		}
		key := w.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}

	return out
}
