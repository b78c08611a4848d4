package imagery

import (
	"fmt"
	"strings"
)

// BuildPrompt combines the character description with the theme.
func BuildPrompt(character string, theme Theme) string {
	elements := "abstract web3 elements"
	if len(theme.Elements) > 0 {
		elements = strings.Join(theme.Elements, ", ")
	}
	prompt := fmt.Sprintf(`Digital art illustration of %s

Scene: %s
Mood: %s
Key elements: %s
Color palette: %s

Style: Modern digital art, vibrant colors, clean lines, slightly cartoonish but detailed.
The image should feel fun, crypto-native, and ready for social media.
Square format, centered composition with the character as the main focus.
No text or words in the image.`,
		strings.TrimSpace(character), theme.Setting, theme.Mood, elements, strings.Join(theme.Colors, ", "))

	switch theme.TimeOfDay {
	case "sunrise":
		prompt += "\nLighting: Warm golden hour light, soft morning glow."
	case "night":
		prompt += "\nLighting: Soft moonlight, twinkling stars, cozy ambient glow."
	}
	return prompt
}
