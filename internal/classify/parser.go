package classify

import (
	"strings"
)

// field identifies one canonical record field during parsing.
type field int

const (
	fieldColumn field = iota
	fieldDescription
	fieldRequirement
	fieldCollectionMethod
	fieldDataSource
	fieldPrimaryPurpose
	fieldLegalBasis
	fieldPersonalData
	fieldPersonalInformation
)

// fieldAliases maps surface labels to canonical fields. Matching is
// substring-based on the lowercased label part of a line, so wordier variants
// ("Legal Basis for processing") still hit. Ordered most-specific first: a
// bare "type" must only match once every longer label has failed.
var fieldAliases = []struct {
	label string
	field field
}{
	{"personal information", fieldPersonalInformation},
	{"personal data", fieldPersonalData},
	{"legal basis", fieldLegalBasis},
	{"data source", fieldDataSource},
	{"collection", fieldCollectionMethod},
	{"description", fieldDescription},
	{"purpose", fieldPrimaryPurpose},
	{"column", fieldColumn},
	{"type", fieldRequirement},
}

// builder accumulates one in-progress record. A fresh builder replaces the
// old one on every flush, so records never alias shared state.
type builder struct {
	rec   Record
	seen  map[field]bool
	dirty bool
}

func newBuilder() *builder {
	return &builder{seen: make(map[field]bool)}
}

func (b *builder) set(f field, value string) {
	b.dirty = true
	b.seen[f] = true
	switch f {
	case fieldColumn:
		b.rec.Column = value
	case fieldDescription:
		b.rec.Description = value
	case fieldRequirement:
		b.rec.Requirement = value
	case fieldCollectionMethod:
		b.rec.CollectionMethod = value
	case fieldDataSource:
		b.rec.DataSource = value
	case fieldPrimaryPurpose:
		b.rec.PrimaryPurpose = value
	case fieldLegalBasis:
		b.rec.LegalBasis = value
	case fieldPersonalData:
		b.rec.PersonalData = value
	case fieldPersonalInformation:
		b.rec.PersonalInformation = value
	}
}

// splitLine splits a labeled line once on its first colon. The value keeps
// any further colons intact ("Legal Basis: GDPR Art. 6: consent").
func splitLine(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func matchField(label string) (field, bool) {
	lower := strings.ToLower(label)
	for _, a := range fieldAliases {
		if strings.Contains(lower, a.label) {
			return a.field, true
		}
	}
	return 0, false
}

// Parse converts a raw model reply into an ordered record sequence. Blank
// lines are the primary record separator. Inside a block, a field showing up
// a second time closes the record in progress and opens a fresh one, which
// covers replies where the model jammed records together without separators
// while keeping field order within a record irrelevant. Unrecognized lines
// are ignored and unobserved fields stay at their empty defaults. Parse
// never fails: worst case it returns an empty slice.
func Parse(raw string) []Record {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var records []Record
	for _, block := range strings.Split(raw, "\n\n") {
		b := newBuilder()
		for _, line := range strings.Split(block, "\n") {
			label, value, ok := splitLine(strings.TrimSpace(line))
			if !ok {
				continue
			}
			f, ok := matchField(label)
			if !ok {
				continue
			}
			if b.seen[f] {
				records = append(records, b.rec)
				b = newBuilder()
			}
			b.set(f, value)
		}
		// Close the record in progress at the block boundary.
		if b.dirty {
			records = append(records, b.rec)
		}
	}
	return records
}
