package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casha/finance-advisor/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator turns a prompt into narrative text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiOptions configures a GeminiGenerator.
type GeminiOptions struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// DefaultGeminiModel is used when GeminiOptions leaves Model empty.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiGenerator generates insights with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	logger logging.Logger
}

// NewGeminiGenerator creates a Gemini client. Close releases it.
func NewGeminiGenerator(ctx context.Context, opts GeminiOptions, logger logging.Logger) (*GeminiGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	if opts.Temperature > 0 {
		model.SetTemperature(float32(opts.Temperature))
	}
	if opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxOutputTokens))
	}

	return &GeminiGenerator{client: client, model: model, name: opts.Model, logger: logger}, nil
}

// Generate sends prompt to the model and returns the text of the first
// candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	log := g.logger.WithField(logging.FieldModel, g.name)
	log.Debug("Requesting insights from Gemini")

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Warn("Gemini returned no candidates")
		return "", nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
