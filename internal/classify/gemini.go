package classify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"db-privacy-scan/internal/schema"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// TableClassifier produces one classification result per table.
type TableClassifier interface {
	ClassifyTable(ctx context.Context, table *schema.Table) TableResult
}

// GeminiClassifier classifies tables through the Gemini API: one plain-text
// prompt in, one plain-text reply out. No streaming, no structured response
// mode; the reply contract is the line grammar requested by BuildPrompt.
type GeminiClassifier struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClassifier creates a Gemini-backed classifier.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClassifier) Close() error {
	return nil
}

// ClassifyTable sends one prompt for the table and parses the reply. A model
// call failure does not abort the run: the table comes back with a skip
// reason and no records.
func (c *GeminiClassifier) ClassifyTable(ctx context.Context, table *schema.Table) TableResult {
	prompt := BuildPrompt(table)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		c.logger.Warn("model call failed, skipping table",
			zap.String("table", table.Name),
			zap.Error(err))
		return TableResult{Table: table.Name, SkipReason: err.Error()}
	}

	reply := resp.Text()
	if reply == "" {
		c.logger.Warn("empty model reply, skipping table", zap.String("table", table.Name))
		return TableResult{Table: table.Name, SkipReason: "empty model reply"}
	}

	records := Parse(reply)
	c.logger.Debug("parsed model reply",
		zap.String("table", table.Name),
		zap.Int("columns", len(table.Columns)),
		zap.Int("records", len(records)))

	return TableResult{Table: table.Name, Records: records}
}
