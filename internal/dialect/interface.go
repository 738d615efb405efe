package dialect

// Dialect abstracts database-specific catalog introspection.
// Every query binds the target schema as its single parameter and returns
// rows in the column order the schema analyzer expects.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	GetTablesQuery(schema string) string
	GetColumnsQuery(schema string) string
	GetForeignKeysQuery(schema string) string
	GetTableMetadataQuery(schema string) string

	// Helpers
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
