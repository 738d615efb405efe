package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClassifier_OneRecordPerColumn(t *testing.T) {
	table := sampleTable()
	m := NewMockClassifier(1)

	result := m.ClassifyTable(context.Background(), table)

	assert.False(t, result.Skipped())
	assert.Equal(t, "users", result.Table)
	require.Len(t, result.Records, len(table.Columns))

	for i, rec := range result.Records {
		assert.Equal(t, table.Columns[i].Name, rec.Column)
		assert.Contains(t, CollectionMethods, rec.CollectionMethod)
		assert.Contains(t, DataSources, rec.DataSource)
		assert.Empty(t, rec.MissingFields())
	}

	// Nullable bio is optional, the rest required.
	assert.Equal(t, "Required", result.Records[0].Requirement)
	assert.Equal(t, "Optional", result.Records[2].Requirement)
}
