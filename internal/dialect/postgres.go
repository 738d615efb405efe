package dialect

import (
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) GetTablesQuery(schema string) string {
	// use $1 placeholder
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *PostgresDialect) GetColumnsQuery(schema string) string {
	// Matches the generic column order of the interface.
	// Column comments live in pg_description, so they need the pg_class join;
	// PK/UNIQUE markers come from subqueries against the constraint catalog.
	return `SELECT
    c.table_name,
    c.column_name,
    c.udt_name,
    c.character_maximum_length,
    c.is_nullable,
    c.column_default,
    (SELECT 'PRI' FROM information_schema.table_constraints tc
     JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name
     WHERE tc.constraint_type = 'PRIMARY KEY'
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1) AS COLUMN_KEY,
    CASE WHEN c.column_default LIKE 'nextval%' OR c.is_identity = 'YES' THEN 'auto_increment' ELSE '' END AS EXTRA,
    (SELECT 'UNIQUE' FROM information_schema.table_constraints tc
     JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name
     WHERE tc.constraint_type = 'UNIQUE'
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1) AS IS_UNIQUE,
    col_description(format('%I.%I', c.table_schema, c.table_name)::regclass::oid, c.ordinal_position) AS COMMENT
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) GetForeignKeysQuery(schema string) string {
	return `SELECT kcu.table_name, kcu.constraint_name, kcu.column_name, ccu.table_name AS referenced_table_name, ccu.column_name AS referenced_column_name FROM information_schema.key_column_usage kcu JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name WHERE kcu.table_schema = $1 AND tc.constraint_type = 'FOREIGN KEY'`
}

func (d *PostgresDialect) GetTableMetadataQuery(schema string) string {
	// Postgres keeps no creation/update timestamps in its catalog; those columns come back NULL.
	return `SELECT t.table_name, 'heap', obj_description(format('%I.%I', t.table_schema, t.table_name)::regclass::oid), NULL::text, NULL::text FROM information_schema.tables t WHERE t.table_schema = $1 AND t.table_type = 'BASE TABLE'`
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch t {
	case "int4", "int2":
		return "int"
	case "int8":
		return "bigint"
	case "float4":
		return "float"
	case "float8":
		return "double"
	case "bpchar":
		return "char"
	case "varchar":
		return "varchar"
	default:
		return t
	}
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
