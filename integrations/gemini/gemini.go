package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Generator is the Gemini adapter for post content generation.
type Generator struct {
	apiKey string
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	return &Generator{apiKey: apiKey, model: model}
}

// Generate produces post text for the request. One corrective retry is made
// when the first draft lands outside the requested character bounds.
func (g *Generator) Generate(ctx context.Context, req domainEngine.GenerationRequest) (domainEngine.GenerationResult, error) {
	if g.apiKey == "" {
		return domainEngine.GenerationResult{}, pkgError.GenerationError("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return domainEngine.GenerationResult{}, pkgError.GenerationError(fmt.Sprintf("gemini client: %v", err))
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(domainEngine.BuildSystemPrompt(req.Persona), ""),
	}

	prompt := domainEngine.BuildUserPrompt(req)
	content, err := g.generateOnce(ctx, client, prompt, genConfig)
	if err != nil {
		return domainEngine.GenerationResult{}, err
	}

	if n := utf8.RuneCountInString(content); n < req.MinChars || n > req.MaxChars {
		logrus.Debugf("[GEMINI] Draft of %d chars outside %d-%d, retrying", n, req.MinChars, req.MaxChars)
		retryPrompt := fmt.Sprintf("%s\n\nYour previous draft was %d characters. Rewrite it so it is between %d and %d characters:\n\n%s",
			prompt, n, req.MinChars, req.MaxChars, content)
		if retried, rerr := g.generateOnce(ctx, client, retryPrompt, genConfig); rerr == nil && retried != "" {
			content = retried
		}
		// Bounds are steered through the prompt, not hard-enforced: a draft
		// that still misses after the retry ships as-is rather than burning
		// the occurrence on a GenerationError.
		if n := utf8.RuneCountInString(content); n < req.MinChars || n > req.MaxChars {
			logrus.Warnf("[GEMINI] Accepting draft of %d chars outside %d-%d after retry", n, req.MinChars, req.MaxChars)
		}
	}

	return domainEngine.GenerationResult{Content: content}, nil
}

func (g *Generator) generateOnce(ctx context.Context, client *genai.Client, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", pkgError.GenerationError(fmt.Sprintf("gemini generate: %v", err))
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", pkgError.GenerationError("gemini returned an empty response")
	}
	return text, nil
}
