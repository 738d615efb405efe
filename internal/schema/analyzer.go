package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"db-privacy-scan/internal/dialect"
)

// Analyze snapshots the target catalog: table list, columns, declared foreign
// keys, and table-level metadata. Any catalog query failure propagates to the
// caller; there are no retries and no partial results.
func Analyze(db *sql.DB, d dialect.Dialect, schemaName string) ([]*Table, error) {
	target := d.GetSchemaName(schemaName)

	// Normalized (UPPERCASE) keys for case-insensitive lookups (Oracle support)
	tableMap := make(map[string]*Table)
	var tables []*Table

	// --- Step 1: Fetch Tables ---
	rows, err := db.Query(d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		t := &Table{Name: name}
		tableMap[strings.ToUpper(name)] = t
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Fetch Columns ---
	colRows, err := db.Query(d.GetColumnsQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, dType, isNull, cDefault, cKey, extra, isUnique, comment sql.NullString
		var cLen sql.NullString // string for safety across drivers

		if err := colRows.Scan(&tName, &cName, &dType, &cLen, &isNull, &cDefault, &cKey, &extra, &isUnique, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}

		if !tName.Valid || !cName.Valid {
			continue // Skip invalid rows
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		// PK Detection
		isPK := strings.Contains(cKey.String, "PRI") || strings.Contains(cKey.String, "PRIMARY")

		// AutoInc Detection
		isAutoInc := false
		if extra.Valid {
			extraLower := strings.ToLower(extra.String)
			isAutoInc = strings.Contains(extraLower, "auto_increment") ||
				strings.Contains(extraLower, "identity") ||
				strings.Contains(extraLower, "nextval")
		}

		// Unique Detection
		isUniqueCol := false
		if isUnique.Valid {
			isUniqueCol = strings.Contains(isUnique.String, "UNIQUE")
		}

		col := &Column{
			Name:       cName.String,
			DataType:   d.NormalizeType(dType.String),
			IsNullable: isNull.String == "YES" || isNull.String == "Y",
			Default:    strings.TrimSpace(cDefault.String),
			IsPK:       isPK,
			IsAutoInc:  isAutoInc,
			IsUnique:   isUniqueCol,
			Comment:    comment.String,
			Meaning:    ExpandMeaning(cName.String, comment.String),
		}

		// Handle Length safely
		if cLen.Valid && cLen.String != "" {
			var length int
			if _, err := fmt.Sscanf(cLen.String, "%d", &length); err == nil {
				col.Length = length
			} else {
				var fLength float64
				if _, err := fmt.Sscanf(cLen.String, "%f", &fLength); err == nil {
					col.Length = int(fLength)
				}
			}
		}
		t.Columns = append(t.Columns, col)
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	// --- Step 3: Fetch Foreign Keys ---
	fkRows, err := db.Query(d.GetForeignKeysQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var tName, cConst, cName, rTable, rCol sql.NullString
		if err := fkRows.Scan(&tName, &cConst, &cName, &rTable, &rCol); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}

		if !tName.Valid || !rTable.Valid {
			continue
		}
		if t, ok := tableMap[strings.ToUpper(tName.String)]; ok {
			// Keep the referenced table's original-case name when we know it
			refName := rTable.String
			if ref, exists := tableMap[strings.ToUpper(rTable.String)]; exists {
				refName = ref.Name
			}
			t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
				Column:    cName.String,
				RefTable:  refName,
				RefColumn: rCol.String,
			})
		}
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}

	// --- Step 4: Fetch Table Metadata ---
	metaRows, err := db.Query(d.GetTableMetadataQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query table metadata: %w", err)
	}
	defer metaRows.Close()

	for metaRows.Next() {
		var tName, engine, comment, createdAt, updatedAt sql.NullString
		if err := metaRows.Scan(&tName, &engine, &comment, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan table metadata: %w", err)
		}
		if t, ok := tableMap[strings.ToUpper(tName.String)]; ok {
			t.Meta = TableMeta{
				Engine:    engine.String,
				Comment:   comment.String,
				CreatedAt: createdAt.String,
				UpdatedAt: updatedAt.String,
			}
		}
	}
	if err := metaRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table metadata: %w", err)
	}

	return tables, nil
}
