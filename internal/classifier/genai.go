package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/felinefinder/felinefinder/pkg/formatting"
)

const checkPrompt = `You are an assistant that helps to identify duplicate cat listings.

You are given a new cat submission with the following details:

Location Description: %s
Cat Description: %s

The submitted photo is attached.

Determine if this submission is likely a duplicate of an existing cat listing.
Consider factors such as the cat's appearance, the location where it was found,
and any other relevant details.

Return a boolean value indicating whether the submission is a duplicate and
provide a brief explanation of your reasoning either way.`

var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"is_duplicate": {
			Type:        genai.TypeBoolean,
			Description: "Whether the submitted cat is likely a duplicate of an existing listing.",
		},
		"explanation": {
			Type:        genai.TypeString,
			Description: "Explanation of why the submission is considered a duplicate, or why not.",
		},
	},
	Required: []string{"is_duplicate", "explanation"},
}

type gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Gemini-backed classifier from the given configuration.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &gemini{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.CallTimeoutDuration(),
		logger:  logger.With("system", "classifier"),
	}, nil
}

func (g *gemini) Check(ctx context.Context, in Input) (*Verdict, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(checkPrompt, in.LocationDescription, in.CatDescription)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(in.Photo, in.ContentType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(callCtx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   verdictSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %w", ErrUnavailable, err)
	}

	verdict, err := formatting.Parse[Verdict](resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if verdict.Explanation == "" {
		return nil, fmt.Errorf("%w: response missing explanation", ErrUnavailable)
	}

	g.logger.Info("duplicate check complete",
		"model", g.model,
		"is_duplicate", verdict.IsDuplicate,
	)
	return &verdict, nil
}
