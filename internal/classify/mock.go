package classify

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"db-privacy-scan/internal/schema"
)

// MockClassifier fabricates plausible records without any model call, one per
// column. It backs dry runs so the report pipeline can be exercised without
// credentials or rate limits.
type MockClassifier struct {
	faker *gofakeit.Faker
}

func NewMockClassifier(seed int64) *MockClassifier {
	return &MockClassifier{faker: gofakeit.New(seed)}
}

func (m *MockClassifier) ClassifyTable(ctx context.Context, table *schema.Table) TableResult {
	records := make([]Record, 0, len(table.Columns))
	for _, c := range table.Columns {
		requirement := "Optional"
		if !c.IsNullable {
			requirement = "Required"
		}
		yesNo := "No"
		if m.faker.Bool() {
			yesNo = "Yes"
		}
		records = append(records, Record{
			Column:              c.Name,
			Description:         m.faker.Sentence(8),
			Requirement:         requirement,
			CollectionMethod:    m.faker.RandomString(CollectionMethods),
			DataSource:          m.faker.RandomString(DataSources),
			PrimaryPurpose:      fmt.Sprintf("Placeholder purpose for %s.%s", table.Name, c.Name),
			LegalBasis:          "Dry run - not assessed",
			PersonalData:        yesNo,
			PersonalInformation: yesNo,
		})
	}
	return TableResult{Table: table.Name, Records: records}
}

var _ TableClassifier = (*MockClassifier)(nil)
var _ TableClassifier = (*GeminiClassifier)(nil)
