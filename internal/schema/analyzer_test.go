package schema_test

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"db-privacy-scan/internal/dialect"
	"db-privacy-scan/internal/schema"
)

func TestAnalyze_MySQLCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT TABLE_NAME FROM information_schema\.TABLES`).
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).
			AddRow("orders").
			AddRow("users"))

	colRows := sqlmock.NewRows([]string{
		"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE", "CHARACTER_MAXIMUM_LENGTH",
		"IS_NULLABLE", "COLUMN_DEFAULT", "COLUMN_KEY", "EXTRA", "IS_UNIQUE", "COLUMN_COMMENT",
	}).
		AddRow("orders", "id", "INT", nil, "NO", nil, "PRI", "auto_increment", nil, "").
		AddRow("orders", "user_id", "INT", nil, "NO", nil, "MUL", "", nil, "").
		AddRow("users", "id", "INT", nil, "NO", nil, "PRI", "auto_increment", nil, "").
		AddRow("users", "email", "VARCHAR", "255", "NO", nil, "UNI", "", "UNIQUE", "login email").
		AddRow("users", "tel_no", "VARCHAR", "32", "YES", nil, "", "", nil, "")
	mock.ExpectQuery(`SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE`).
		WithArgs("shop").
		WillReturnRows(colRows)

	mock.ExpectQuery(`FROM information_schema\.KEY_COLUMN_USAGE`).
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{
			"TABLE_NAME", "CONSTRAINT_NAME", "COLUMN_NAME", "REFERENCED_TABLE_NAME", "REFERENCED_COLUMN_NAME",
		}).AddRow("orders", "fk_orders_user", "user_id", "users", "id"))

	mock.ExpectQuery(`SELECT TABLE_NAME, ENGINE, TABLE_COMMENT`).
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{
			"TABLE_NAME", "ENGINE", "TABLE_COMMENT", "CREATE_TIME", "UPDATE_TIME",
		}).
			AddRow("users", "InnoDB", "registered users", "2024-01-01 00:00:00", nil).
			AddRow("orders", "InnoDB", "", "2024-01-01 00:00:00", nil))

	tables, err := schema.Analyze(db, dialect.Get("mysql"), "shop")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Name != "orders" || tables[1].Name != "users" {
		t.Errorf("unexpected table order: %s, %s", tables[0].Name, tables[1].Name)
	}

	users := tables[1]
	if len(users.Columns) != 3 {
		t.Fatalf("expected 3 columns on users, got %d", len(users.Columns))
	}

	id := users.Columns[0]
	if !id.IsPK || !id.IsAutoInc || id.IsNullable {
		t.Errorf("users.id flags wrong: %+v", id)
	}
	if id.DataType != "int" {
		t.Errorf("expected normalized type int, got %s", id.DataType)
	}

	email := users.Columns[1]
	if !email.IsUnique || email.Length != 255 || email.Comment != "login email" {
		t.Errorf("users.email not assembled correctly: %+v", email)
	}
	if email.Meaning != "email" {
		t.Errorf("expected comment-derived meaning email, got %q", email.Meaning)
	}

	tel := users.Columns[2]
	if !tel.IsNullable {
		t.Errorf("users.tel_no should be nullable")
	}
	if tel.Meaning != "phone number" {
		t.Errorf("expected abbreviation expansion, got %q", tel.Meaning)
	}

	orders := tables[0]
	if len(orders.ForeignKeys) != 1 {
		t.Fatalf("expected 1 foreign key on orders, got %d", len(orders.ForeignKeys))
	}
	fk := orders.ForeignKeys[0]
	if fk.Column != "user_id" || fk.RefTable != "users" || fk.RefColumn != "id" {
		t.Errorf("unexpected foreign key: %+v", fk)
	}

	if users.Meta.Engine != "InnoDB" || users.Meta.Comment != "registered users" {
		t.Errorf("users metadata not assembled: %+v", users.Meta)
	}
	if users.Meta.CreatedAt != "2024-01-01 00:00:00" {
		t.Errorf("unexpected created timestamp: %q", users.Meta.CreatedAt)
	}
}

func TestAnalyze_TablesQueryFailurePropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT TABLE_NAME FROM information_schema\.TABLES`).
		WithArgs("shop").
		WillReturnError(sqlmock.ErrCancelled)

	if _, err := schema.Analyze(db, dialect.Get("mysql"), "shop"); err == nil {
		t.Fatal("expected catalog failure to propagate")
	}
}
