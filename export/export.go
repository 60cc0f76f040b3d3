// Package export renders a persisted production package as a shareable
// document: a markdown layout and its HTML conversion.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"cineforge/generator"
)

// Markdown lays out the package as one markdown document: screenplay first,
// then shot design and sound design per scene.
func Markdown(title string, pkg generator.ProductionPackage) string {
	var sb strings.Builder
	if title == "" {
		title = "Production Package"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("## Screenplay\n\n```\n")
	sb.WriteString(strings.TrimRight(pkg.Screenplay, "\n"))
	sb.WriteString("\n```\n\n")

	sb.WriteString("## Shot Design\n\n")
	for _, scene := range pkg.ShotDesign {
		fmt.Fprintf(&sb, "### %s — %s\n\n", scene.ID, scene.SceneTitle)
		for _, shot := range scene.Shots {
			fmt.Fprintf(&sb, "- **Shot %d** — %s\n", shot.Number, shot.Description)
			fmt.Fprintf(&sb, "  - Camera: %s, %s\n", shot.CameraAngle, shot.Movement)
			fmt.Fprintf(&sb, "  - Lighting: %s\n", shot.Lighting)
			fmt.Fprintf(&sb, "  - Lens: %s\n", shot.Lens)
			fmt.Fprintf(&sb, "  - Tone: %s, duration %s\n", shot.EmotionalTone, shot.Duration)
			if shot.Notes != "" {
				fmt.Fprintf(&sb, "  - Notes: %s\n", shot.Notes)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Sound Design\n\n")
	for _, scene := range pkg.SoundDesign {
		fmt.Fprintf(&sb, "### %s — %s (%s)\n\n", scene.SceneID, scene.SceneTitle, scene.TimeOfDay)
		fmt.Fprintf(&sb, "- Music: %q — %s (%s, %s, %s)\n",
			scene.Music.Track, scene.Music.Description, scene.Music.Tempo, scene.Music.Key, scene.Music.Mood)
		if scene.Music.Instrumentation != "" {
			fmt.Fprintf(&sb, "- Instrumentation: %s\n", scene.Music.Instrumentation)
		}
		if len(scene.Ambient) > 0 {
			fmt.Fprintf(&sb, "- Ambient: %s\n", strings.Join(scene.Ambient, "; "))
		}
		if len(scene.Foley) > 0 {
			fmt.Fprintf(&sb, "- Foley: %s\n", strings.Join(scene.Foley, "; "))
		}
		if scene.MixingNotes != "" {
			fmt.Fprintf(&sb, "- Mixing: %s\n", scene.MixingNotes)
		}
		fmt.Fprintf(&sb, "- Dialogue: %s", scene.Dialogue.Treatment)
		if scene.Dialogue.Notes != "" {
			fmt.Fprintf(&sb, " (%s)", scene.Dialogue.Notes)
		}
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// HTML converts the markdown layout to HTML.
func HTML(title string, pkg generator.ProductionPackage) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(title, pkg)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
