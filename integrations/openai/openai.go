package openai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"
)

// Generator is the OpenAI adapter for post content generation.
type Generator struct {
	apiKey string
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	return &Generator{apiKey: apiKey, model: model}
}

func (g *Generator) Generate(ctx context.Context, req domainEngine.GenerationRequest) (domainEngine.GenerationResult, error) {
	if g.apiKey == "" {
		return domainEngine.GenerationResult{}, pkgError.GenerationError("openai api key is not configured")
	}

	client := openai.NewClient(
		option.WithAPIKey(g.apiKey),
	)

	systemPrompt := domainEngine.BuildSystemPrompt(req.Persona)
	prompt := domainEngine.BuildUserPrompt(req)

	content, err := g.generateOnce(ctx, &client, systemPrompt, prompt)
	if err != nil {
		return domainEngine.GenerationResult{}, err
	}

	if n := utf8.RuneCountInString(content); n < req.MinChars || n > req.MaxChars {
		logrus.Debugf("[OPENAI] Draft of %d chars outside %d-%d, retrying", n, req.MinChars, req.MaxChars)
		retryPrompt := fmt.Sprintf("%s\n\nYour previous draft was %d characters. Rewrite it so it is between %d and %d characters:\n\n%s",
			prompt, n, req.MinChars, req.MaxChars, content)
		if retried, rerr := g.generateOnce(ctx, &client, systemPrompt, retryPrompt); rerr == nil && retried != "" {
			content = retried
		}
		// Bounds are steered through the prompt, not hard-enforced: a draft
		// that still misses after the retry ships as-is rather than burning
		// the occurrence on a GenerationError.
		if n := utf8.RuneCountInString(content); n < req.MinChars || n > req.MaxChars {
			logrus.Warnf("[OPENAI] Accepting draft of %d chars outside %d-%d after retry", n, req.MinChars, req.MaxChars)
		}
	}

	return domainEngine.GenerationResult{Content: content}, nil
}

func (g *Generator) generateOnce(ctx context.Context, client *openai.Client, systemPrompt, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", pkgError.GenerationError(fmt.Sprintf("openai chat completion: %v", err))
	}
	if len(completion.Choices) == 0 {
		return "", pkgError.GenerationError("openai returned no choices")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", pkgError.GenerationError("openai returned an empty response")
	}
	return text, nil
}
