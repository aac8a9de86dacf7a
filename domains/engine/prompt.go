package engine

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt renders the persona into the instruction both AI
// providers receive.
func BuildSystemPrompt(p Persona) string {
	var b strings.Builder
	b.WriteString("You are a professional social media ghostwriter. ")
	b.WriteString("You write engaging LinkedIn posts in the author's own voice.\n\n")

	if p.Profession != "" {
		fmt.Fprintf(&b, "The author works as: %s.\n", p.Profession)
	}
	if p.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s.\n", p.Industry)
	}
	if p.Tone != "" {
		fmt.Fprintf(&b, "Writing tone: %s.\n", p.Tone)
	}
	if p.Bio != "" {
		fmt.Fprintf(&b, "About the author: %s\n", p.Bio)
	}

	b.WriteString("\nRules:\n")
	b.WriteString("- Write in first person.\n")
	b.WriteString("- No markdown formatting, no asterisks, no hashtag spam.\n")
	b.WriteString("- End with a question or call to action when it fits naturally.\n")
	b.WriteString("- Return only the post text, nothing else.\n")
	return b.String()
}

// BuildUserPrompt renders the topic and length constraints into the user
// message for a single generation call.
func BuildUserPrompt(req GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a LinkedIn post about: %s\n", req.TopicName)
	if req.TopicDetails != "" {
		fmt.Fprintf(&b, "Context: %s\n", req.TopicDetails)
	}
	if req.Instructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.Instructions)
	}
	fmt.Fprintf(&b, "The post must be between %d and %d characters long.", req.MinChars, req.MaxChars)
	return b.String()
}
