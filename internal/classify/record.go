// Package classify turns catalog snapshots into privacy classification
// records: it builds the model prompt, calls the classifier backend, and
// parses the free-text reply back into fixed-shape records.
package classify

// Record is the privacy/compliance assessment for one column. Every field
// defaults to the empty string so downstream row construction never has to
// probe for missing keys.
type Record struct {
	Column              string
	Description         string
	Requirement         string // Required/Optional
	CollectionMethod    string
	DataSource          string
	PrimaryPurpose      string
	LegalBasis          string
	PersonalData        string // Yes/No under GDPR
	PersonalInformation string // Yes/No under POPIA
}

// ReportFields is the fixed required field set, in report column order.
var ReportFields = []string{
	"Column",
	"Description",
	"Data Type",
	"Collection Method",
	"Data Source",
	"Primary Purpose",
	"Legal Basis",
	"Personal Data",
	"Personal Information",
}

// Values returns the record's field values aligned with ReportFields.
func (r Record) Values() []string {
	return []string{
		r.Column,
		r.Description,
		r.Requirement,
		r.CollectionMethod,
		r.DataSource,
		r.PrimaryPurpose,
		r.LegalBasis,
		r.PersonalData,
		r.PersonalInformation,
	}
}

// MissingFields reports which required fields the model reply left empty.
func (r Record) MissingFields() []string {
	var missing []string
	for i, v := range r.Values() {
		if v == "" {
			missing = append(missing, ReportFields[i])
		}
	}
	return missing
}

// TableResult is the outcome of classifying one table: either an ordered
// record sequence, or a skip reason when the model call failed. The record
// count need not match the table's column count.
type TableResult struct {
	Table      string
	Records    []Record
	SkipReason string
}

// Skipped reports whether the table was skipped due to a model call failure.
func (t TableResult) Skipped() bool {
	return t.SkipReason != ""
}
