package generator

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidAction is returned for an unsupported edit action.
	ErrInvalidAction = errors.New("invalid action, use: expand, compress, rewrite, tone")
	// ErrMissingTone is returned when action is "tone" without a tone label.
	ErrMissingTone = errors.New("tone is required for tone action")
)

// Provider edit output shorter than this is treated as a failed attempt.
const minEditLength = 20

// Edit applies one screenplay transformation. The first configured provider
// gets a single bounded attempt; if its output is absent or too short, the
// deterministic local editor answers. A blank script is returned unchanged.
func (c *Chain) Edit(ctx context.Context, script, action, tone string) (string, error) {
	if !ValidAction(action) {
		return "", ErrInvalidAction
	}
	if action == ActionTone && strings.TrimSpace(tone) == "" {
		return "", ErrMissingTone
	}
	if strings.TrimSpace(script) == "" {
		return script, nil
	}

	if len(c.clients) > 0 {
		client := c.clients[0]
		raw, err := client.Complete(ctx, BuildEditPrompt(action, tone, script))
		if err == nil && len(strings.TrimSpace(raw)) > minEditLength {
			log.Printf("[llm] %s script %s succeeded", client.Name(), action)
			return StripFences(raw), nil
		}
		if err != nil {
			log.Printf("[llm] %s script %s failed: %v", client.Name(), action, err)
		}
	}

	log.Printf("[llm] using local fallback for script %s", action)
	return editLocally(script, action, tone), nil
}

func editLocally(script, action, tone string) string {
	switch action {
	case ActionExpand:
		return expandScript(script)
	case ActionCompress:
		return compressScript(script)
	case ActionRewrite:
		return rewriteScript(script)
	case ActionTone:
		return toneScript(script, tone)
	}
	return script
}

func isSceneHeading(s string) bool {
	return strings.HasPrefix(s, "INT.") || strings.HasPrefix(s, "EXT.")
}

// isTransition also covers scene headings; both are kept verbatim.
func isTransition(s string) bool {
	for _, p := range []string{"INT.", "EXT.", "FADE", "CUT", "SMASH"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// isCharacterCue treats a short all-caps line as a character name.
func isCharacterCue(s string) bool {
	return s != "" && len(s) < 40 && s == strings.ToUpper(s) && s != strings.ToLower(s)
}

func expandScript(script string) string {
	lines := strings.Split(script, "\n")
	out := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		out = append(out, line)
		stripped := strings.TrimSpace(line)
		if stripped == "" || isTransition(stripped) {
			continue
		}
		if isCharacterCue(stripped) {
			out = append(out, "(beat)")
		} else if !strings.HasPrefix(stripped, "(") && len(stripped) > 20 {
			out = append(out,
				"",
				"    The moment hangs in the air. Every detail becomes vivid—",
				"    the texture of the light, the subtle sounds, the weight of the silence.",
				"")
		}
	}
	return strings.Join(out, "\n")
}

func compressScript(script string) string {
	lines := strings.Split(script, "\n")
	out := make([]string, 0, len(lines))
	skipNextEmpty := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case isTransition(stripped):
			out = append(out, line)
			skipNextEmpty = false
		case isCharacterCue(stripped):
			out = append(out, line)
			skipNextEmpty = false
		case strings.HasPrefix(stripped, "(") && strings.HasSuffix(stripped, ")"):
			out = append(out, line)
			skipNextEmpty = false
		case stripped == "":
			if !skipNextEmpty {
				out = append(out, line)
				skipNextEmpty = true
			}
		default:
			// Short action lines survive; long descriptions are dropped.
			if len(stripped) < 60 {
				out = append(out, line)
			}
			skipNextEmpty = false
		}
	}
	return strings.Join(out, "\n")
}

// rewriteRules maps weaker wording to stronger wording, applied in order,
// case-insensitively, preserving a leading capital on each replaced token.
var rewriteRules = []struct{ weak, strong string }{
	{"walks", "strides"}, {"says", "declares"}, {"looks", "gazes"},
	{"goes", "moves"}, {"sees", "notices"}, {"gets", "seizes"},
	{"runs", "dashes"}, {"sits", "settles"}, {"stands", "rises"},
	{"slowly", "deliberately"}, {"quickly", "swiftly"}, {"very", "profoundly"},
	{"big", "immense"}, {"small", "minute"}, {"old", "weathered"},
	{"dark", "shadowed"}, {"light", "luminous"}, {"cold", "frigid"},
}

var rewritePatterns = func() []*regexp.Regexp {
	ps := make([]*regexp.Regexp, len(rewriteRules))
	for i, r := range rewriteRules {
		ps[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(r.weak))
	}
	return ps
}()

func rewriteScript(script string) string {
	lines := strings.Split(script, "\n")
	for i, line := range lines {
		for j, rule := range rewriteRules {
			strong := rule.strong
			line = rewritePatterns[j].ReplaceAllStringFunc(line, func(m string) string {
				if m != "" && unicode.IsUpper(rune(m[0])) {
					return strings.ToUpper(strong[:1]) + strong[1:]
				}
				return strong
			})
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// toneLibrary holds atmospheric stage directions inserted after scene
// headings, cycled in order across the document.
var toneLibrary = map[string][]string{
	"Dramatic":    {"The tension is palpable.", "A heavy silence falls.", "The stakes couldn't be higher."},
	"Melancholic": {"A sense of loss permeates the air.", "The light fades, like a dying memory.", "There's an ache that words can't capture."},
	"Tense":       {"Every shadow feels like a threat.", "The silence is deafening.", "Time seems to slow to a crawl."},
	"Hopeful":     {"A glimmer of light breaks through.", "There's a warmth that wasn't there before.", "Something shifts — possibility emerges."},
	"Dark":        {"The darkness is almost tangible.", "Something unsettling lurks beneath the surface.", "The world feels hostile, unforgiving."},
	"Comedic":     {"The timing is perfect — almost too perfect.", "A beat. Then the absurdity of it hits.", "There's an awkward pause that says everything."},
}

func toneScript(script, tone string) string {
	additions, ok := toneLibrary[tone]
	if !ok {
		additions = toneLibrary["Dramatic"]
	}
	lines := strings.Split(script, "\n")
	out := make([]string, 0, len(lines)+8)
	idx := 0
	for _, line := range lines {
		out = append(out, line)
		if isSceneHeading(strings.TrimSpace(line)) {
			out = append(out, "", "    "+additions[idx%len(additions)], "")
			idx++
		}
	}
	return strings.Join(out, "\n")
}
