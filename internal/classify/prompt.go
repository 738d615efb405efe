package classify

import (
	"fmt"
	"strings"

	"db-privacy-scan/internal/schema"
)

// Enumerated values the model must choose from. Stable across calls so the
// parser and report always see the same vocabulary.
var (
	CollectionMethods = []string{"USER_PROVIDED", "USER_USAGE_GENERATED", "SYSTEM_USAGE_GENERATED", "SYSTEM_SET", "THIRD_PARTY"}
	DataSources       = []string{"ALL", "VISITORS", "REGISTERED_USERS", "THIRD_PARTY"}
)

// BuildPrompt renders the classification instruction for one table. Pure
// function of the snapshot: same table in, same prompt out. Works for a
// zero-column table (the model is simply given an empty column list).
func BuildPrompt(table *schema.Table) string {
	var sb strings.Builder

	sb.WriteString(`# ROLE AND CONTEXT
You are a Data Protection and Privacy Analysis Assistant with expertise in:
- General Data Protection Regulation of the European Union (GDPR) compliance analysis
- Protection of Personal Information Act (POPIA) (South Africa) requirements
- Database structure evaluation
- Privacy policy development
- Data classification

Note: Your analysis serves as preliminary guidance and should be reviewed by qualified legal counsel.

# INPUT DATA
`)
	sb.WriteString(fmt.Sprintf("Table: %s\n", table.Name))
	if table.Meta.Comment != "" {
		sb.WriteString(fmt.Sprintf("Table comment: %s\n", table.Meta.Comment))
	}
	sb.WriteString("Columns:\n")
	for _, c := range table.Columns {
		sb.WriteString("- ")
		sb.WriteString(describeColumn(c))
		sb.WriteString("\n")
	}
	if len(table.ForeignKeys) > 0 {
		sb.WriteString("Relationships:\n")
		for _, fk := range table.ForeignKeys {
			sb.WriteString(fmt.Sprintf("- %s references %s.%s\n", fk.Column, fk.RefTable, fk.RefColumn))
		}
	}

	sb.WriteString(`
# OUTPUT REQUIREMENTS

For each column analyze and provide exactly these fields, in this order:

Column: [column name]
Description: [clear description of the data being stored in the column max 100 words]
Type: [Required/Optional]
Collection Method: [` + strings.Join(CollectionMethods, "/") + `]
Data Source: [` + strings.Join(DataSources, "/") + `]
Primary Purpose: [clear purpose as to why the data is being gathered max 100 words]
Legal Basis: [relevant GDPR/POPIA basis max 50 words]
Personal Data: [Yes/No (in reference to GDPR)]
Personal Information: [Yes/No (in reference to POPIA)]

## Formatting Rules
1. Each field must start on a new line.
2. No line breaks within field values.
3. Use the exact field names given above.
4. One colon after each field name followed by a single space.
5. Separate the records for different columns with one blank line.
6. No special characters (commas etc); use periods or hyphens where needed.
7. Maintain consistent capitalization.
8. No additional explanations or formatting.

## Analysis Guidelines

### Description Guidelines
- Reference common CMS/LMS table structures such as Wordpress and Moodle
- Consider relationships with other visible columns and the table name
- Be specific and concise
- Focus on data content where possible and not technical aspects

### Legal Classification Guidelines
Base analysis on:
- GDPR Article 4 definition of personal data
- POPIA Chapter 1 definition of personal information
- Purpose limitation principles
- Data minimization requirements

### Purpose Guidelines
- Link to legitimate business functions
- Demonstrate necessity
- Show proportionality
- Identify specific use cases

## OUTPUT VALIDATION
Your response must:
1. Be directly parseable using field name patterns
2. Contain all required fields for every column
3. Follow the exact formatting rules
4. Stay within word limits
5. Use only allowed values for categorical fields
`)

	return sb.String()
}

// describeColumn renders one column's metadata as a single prompt line.
func describeColumn(c *schema.Column) string {
	parts := []string{c.Name, c.DataType}
	if c.Length > 0 {
		parts[1] = fmt.Sprintf("%s(%d)", c.DataType, c.Length)
	}
	if c.IsPK {
		parts = append(parts, "primary key")
	}
	if c.IsUnique && !c.IsPK {
		parts = append(parts, "unique")
	}
	if c.IsAutoInc {
		parts = append(parts, "auto increment")
	}
	if c.IsNullable {
		parts = append(parts, "nullable")
	} else {
		parts = append(parts, "not null")
	}
	if c.Default != "" {
		parts = append(parts, fmt.Sprintf("default %s", c.Default))
	}
	if c.Comment != "" {
		parts = append(parts, fmt.Sprintf("comment %q", c.Comment))
	}
	if c.Meaning != "" && !strings.EqualFold(c.Meaning, c.Name) {
		parts = append(parts, fmt.Sprintf("likely meaning %q", c.Meaning))
	}
	return strings.Join(parts, ", ")
}
