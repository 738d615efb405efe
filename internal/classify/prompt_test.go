package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-privacy-scan/internal/schema"
)

func sampleTable() *schema.Table {
	return &schema.Table{
		Name: "users",
		Columns: []*schema.Column{
			{Name: "id", DataType: "int", IsPK: true, IsAutoInc: true},
			{Name: "email", DataType: "varchar", Length: 255, IsUnique: true, Comment: "login email"},
			{Name: "bio", DataType: "text", IsNullable: true},
		},
		ForeignKeys: []*schema.ForeignKey{
			{Column: "org_id", RefTable: "orgs", RefColumn: "id"},
		},
		Meta: schema.TableMeta{Engine: "InnoDB", Comment: "registered users"},
	}
}

func TestBuildPrompt_ContainsSchemaAndGrammar(t *testing.T) {
	prompt := BuildPrompt(sampleTable())

	assert.Contains(t, prompt, "Table: users")
	assert.Contains(t, prompt, "registered users")
	assert.Contains(t, prompt, "email, varchar(255)")
	assert.Contains(t, prompt, "org_id references orgs.id")

	// The full labeled field set, each on its own line with a colon-space.
	for _, field := range []string{
		"Column: ", "Description: ", "Type: ", "Collection Method: ",
		"Data Source: ", "Primary Purpose: ", "Legal Basis: ",
		"Personal Data: ", "Personal Information: ",
	} {
		assert.Contains(t, prompt, "\n"+field, "missing field label %q", field)
	}

	for _, v := range CollectionMethods {
		assert.Contains(t, prompt, v)
	}
	for _, v := range DataSources {
		assert.Contains(t, prompt, v)
	}
}

func TestBuildPrompt_RequestsBlankLineSeparator(t *testing.T) {
	prompt := BuildPrompt(sampleTable())
	assert.Contains(t, prompt, "blank line")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	table := sampleTable()
	assert.Equal(t, BuildPrompt(table), BuildPrompt(table))
}

func TestBuildPrompt_EmptyTable(t *testing.T) {
	table := &schema.Table{Name: "empty_one"}

	var prompt string
	require.NotPanics(t, func() {
		prompt = BuildPrompt(table)
	})
	assert.Contains(t, prompt, "Table: empty_one")
	assert.Contains(t, prompt, "Columns:")
}

func TestBuildPrompt_FieldOrderMatchesReport(t *testing.T) {
	prompt := BuildPrompt(sampleTable())

	// Labels must appear in the report's field order so the requested grammar
	// stays stable across calls.
	last := -1
	for _, field := range []string{"Column:", "Description:", "Type:", "Collection Method:", "Data Source:", "Primary Purpose:", "Legal Basis:", "Personal Data:", "Personal Information:"} {
		idx := strings.Index(prompt, "\n"+field)
		require.GreaterOrEqual(t, idx, 0, "field %q not found", field)
		assert.Greater(t, idx, last, "field %q out of order", field)
		last = idx
	}
}
