package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are CineForge AI, an expert cinematic pre-production assistant.
Given a story premise, generate a complete production package in valid JSON with this exact structure:

{
  "screenplay": "<Full screenplay in standard format: INT/EXT., action lines, dialogue>",
  "shot_design": [
    {
      "id": "scene-01",
      "scene_title": "Scene title",
      "shots": [
        {
          "number": 1,
          "description": "Shot description",
          "camera_angle": "e.g. Low Angle / Eye Level / Bird's Eye",
          "movement": "e.g. Static / Dolly In / Pan Right",
          "lighting": "e.g. Natural Golden Hour / High Key / Chiaroscuro",
          "lens": "e.g. 24mm Wide / 85mm Portrait / 400mm Telephoto",
          "emotional_tone": "e.g. Tense / Hopeful / Melancholic",
          "duration": "e.g. 4 seconds",
          "notes": "Optional director note"
        }
      ]
    }
  ],
  "sound_design": [
    {
      "scene_id": "scene-01",
      "scene_title": "Scene title",
      "time_of_day": "Dawn / Morning / Afternoon / Dusk / Night",
      "music": {
        "track": "Track title",
        "description": "Emotional purpose of the music",
        "tempo": "e.g. Andante 72bpm",
        "key": "e.g. D Minor",
        "mood": "e.g. Ominous",
        "instrumentation": "e.g. String quartet, sparse piano"
      },
      "ambient": ["ambient sound 1", "ambient sound 2"],
      "foley": ["foley element 1", "foley element 2"],
      "mixing_notes": "Mixing direction for this scene",
      "dialogue": {
        "treatment": "e.g. Close-mic, intimate",
        "notes": "Any additional dialogue audio notes"
      }
    }
  ]
}

Return ONLY the JSON. No markdown code fences. No explanation.`

// BuildGeneratePrompt builds the production-package prompt for a story premise.
func BuildGeneratePrompt(story string) Prompt {
	return Prompt{
		System: systemPrompt,
		User:   fmt.Sprintf("Story premise:\n\n%s\n\nGenerate the full production package:", story),
	}
}

var editPrompts = map[string]string{
	ActionExpand:   "You are a screenwriting assistant. Take the following screenplay and EXPAND it — add more descriptive action lines, additional dialogue beats, sensory details, and character reactions. Make it at least 50% longer. Keep the same story and characters.\n\nReturn ONLY the expanded screenplay text, no JSON, no markdown fences.",
	ActionCompress: "You are a screenwriting assistant. Take the following screenplay and COMPRESS it — keep only the essential dialogue and key action lines. Remove redundant descriptions, trim long passages, and tighten pacing. Make it about 50% shorter.\n\nReturn ONLY the compressed screenplay text, no JSON, no markdown fences.",
	ActionRewrite:  "You are a screenwriting assistant. Take the following screenplay and REWRITE it — improve the dialogue to sound more natural, strengthen the action lines, vary the sentence structure, and enhance the dramatic impact. Keep the same story and characters.\n\nReturn ONLY the rewritten screenplay text, no JSON, no markdown fences.",
}

const tonePrompt = "You are a screenwriting assistant. Take the following screenplay and REWRITE it to match a %[1]s tone — adjust the dialogue style, action descriptions, pacing, and atmosphere to strongly reflect the %[1]s feeling throughout.\n\nReturn ONLY the modified screenplay text, no JSON, no markdown fences."

// BuildEditPrompt builds the prompt for one edit action over a script.
// Action must be valid; tone is only consulted for ActionTone.
func BuildEditPrompt(action, tone, script string) Prompt {
	instruction := editPrompts[action]
	if action == ActionTone {
		instruction = fmt.Sprintf(tonePrompt, strings.TrimSpace(tone))
	}
	return Prompt{System: instruction, User: "---\n\n" + script}
}
