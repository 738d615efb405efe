package schema

import "strings"

var abbreviations = map[string]string{
	// Common Nouns
	"nm": "name", "dt": "date", "no": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "hp": "phone", "ph": "phone",
	"biz": "business", "pwd": "password", "passwd": "password", "pw": "password",
	"img": "image", "msg": "message", "txt": "text", "tit": "title",
	"subj": "subject", "doc": "document", "usr": "user", "emp": "employee",
	"dept": "department", "grp": "group", "cat": "category",
	"loc": "location", "lat": "latitude", "lng": "longitude", "lon": "longitude",
	"zip": "zipcode", "post": "zipcode", "bal": "balance",
	"avg": "average", "uid": "id", "pid": "id",

	// Verbs / Status
	"reg": "registered", "mod": "modified", "del": "deleted", "cre": "created",
	"upd": "updated", "yn": "yesno", "stat": "status", "sts": "status",
	"typ": "type", "val": "value", "ord": "order", "seq": "sequence",
	"idx": "index", "auth": "authority", "flg": "flag",
}

var commentKeywords = []struct {
	keywords []string
	meaning  string
}{
	{[]string{"mobile", "phone"}, "phone"},
	{[]string{"email", "mail"}, "email"},
	{[]string{"address"}, "address"},
	{[]string{"zip", "postal"}, "zipcode"},
	{[]string{"name"}, "name"},
	{[]string{"password"}, "password"},
	{[]string{"date", "time"}, "date"},
	{[]string{"price", "cost"}, "price"},
	{[]string{"count", "qty"}, "count"},
	{[]string{"flag", "yn"}, "yesno"},
	{[]string{"country"}, "country"},
	{[]string{"city"}, "city"},
	{[]string{"ip"}, "ip"},
}

// ExpandMeaning derives a human-readable hint for a column from its catalog
// comment or, failing that, from common column-name abbreviations. The hint is
// surfaced to the classifier prompt, not used programmatically.
func ExpandMeaning(colName, comment string) string {
	c := strings.ToLower(comment)

	// 1. Priority on comment keywords
	if c != "" {
		for _, k := range commentKeywords {
			for _, kw := range k.keywords {
				if strings.Contains(c, kw) {
					return k.meaning
				}
			}
		}
	}

	// 2. Abbreviation expansion on the column name
	parts := strings.Split(strings.ToLower(colName), "_")
	var decodedParts []string
	for _, part := range parts {
		if full, ok := abbreviations[part]; ok {
			decodedParts = append(decodedParts, full)
		} else {
			decodedParts = append(decodedParts, part)
		}
	}

	return strings.Join(decodedParts, " ")
}
