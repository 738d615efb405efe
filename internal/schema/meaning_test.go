package schema_test

import (
	"testing"

	"db-privacy-scan/internal/schema"
)

func TestExpandMeaning(t *testing.T) {
	cases := []struct {
		colName string
		comment string
		want    string
	}{
		{"tel_no", "", "phone number"},
		{"usr_nm", "", "user name"},
		{"email", "login mail address", "email"},
		{"mobile", "customer mobile phone", "phone"},
		{"created_at", "", "created at"},
		{"plain", "", "plain"},
	}

	for _, c := range cases {
		if got := schema.ExpandMeaning(c.colName, c.comment); got != c.want {
			t.Errorf("ExpandMeaning(%q, %q) = %q, want %q", c.colName, c.comment, got, c.want)
		}
	}
}
