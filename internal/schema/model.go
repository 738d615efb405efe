package schema

// Table is a read-only snapshot of one catalog table, fetched once per run.
type Table struct {
	Name        string
	Columns     []*Column
	ForeignKeys []*ForeignKey
	Meta        TableMeta
}

type Column struct {
	Name       string
	DataType   string
	Length     int
	IsNullable bool
	Default    string
	IsPK       bool
	IsAutoInc  bool
	IsUnique   bool
	Comment    string // catalog comment (MS_Description etc.)
	Meaning    string // hint derived from abbreviations/comments (e.g. "phone", "email")
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// TableMeta carries table-level catalog metadata. Engines without a given
// attribute leave it empty.
type TableMeta struct {
	Engine    string
	Comment   string
	CreatedAt string
	UpdatedAt string
}
