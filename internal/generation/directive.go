package generation

import (
	"fmt"
	"strings"

	"draftline/internal/post"
	"draftline/internal/voice"
)

// Persona identifies who the drafts are written as.
type Persona struct {
	Handle      string
	Description string
}

// BuildDirective assembles the system prompt once per batch from the voice
// profile. At most maxExamples examples are included.
func BuildDirective(persona Persona, profile voice.Profile, maxExamples, targetLength int) string {
	var b strings.Builder
	description := strings.TrimSpace(persona.Description)
	if description == "" {
		description = fmt.Sprintf("You are @%s.", persona.Handle)
	}
	b.WriteString(description)

	if tone := strings.TrimSpace(profile.Tone); tone != "" {
		b.WriteString("\n\nYour tone patterns:\n")
		b.WriteString(tone)
	}
	if len(profile.Topics) > 0 {
		b.WriteString("\n\nYour main topics: ")
		b.WriteString(strings.Join(profile.Topics, ", "))
	}
	examples := profile.Examples
	if maxExamples >= 0 && len(examples) > maxExamples {
		examples = examples[:maxExamples]
	}
	if len(examples) > 0 {
		b.WriteString("\n\nExample posts in your voice:\n")
		b.WriteString(strings.Join(examples, "\n---\n"))
	}

	fmt.Fprintf(&b, `

Your task: given a post from another creator, write an ORIGINAL post in your voice that:
1. Takes the core insight or most interesting angle
2. Puts your own spin on it
3. Sounds like you, not a copy
4. Stays under %d characters
5. Does NOT copy phrases from the source`, targetLength)
	return b.String()
}

// UserPrompt is the per-post instruction. The source username and text are
// embedded verbatim.
func UserPrompt(handle string, src post.Post, targetLength int) string {
	return fmt.Sprintf(`Here's a post from @%s:

"%s"

Write an original post in your voice (@%s) inspired by it, under %d characters. Do not reuse phrases from the source. Output only the post text, nothing else.`,
		src.Username, src.Text, handle, targetLength)
}
