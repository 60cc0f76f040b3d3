package generator

import "fmt"

// SynthesizePackage builds a fixed two-scene production package around the
// literal story text. It is the terminal tier of the cascade: pure,
// deterministic, and total, so generation always has an answer even with
// zero providers configured. The prose is intentionally generic.
func SynthesizePackage(story string) ProductionPackage {
	screenplay := fmt.Sprintf(`FADE IN:

INT. UNKNOWN LOCATION — NIGHT

%s

The camera slowly pans across the room, revealing the world described above.

CHARACTER
(with determination)
This is where it all begins.

The tension builds as the story unfolds...

SMASH CUT TO:

EXT. OPEN LANDSCAPE — DAY

The world opens up before us. Every detail matters.
Every moment counts.

CHARACTER (CONT'D)
We have to see this through.

FADE TO BLACK.

THE END`, story)

	return ProductionPackage{
		Screenplay: screenplay,
		ShotDesign: []SceneShots{
			{
				ID:         "scene-01",
				SceneTitle: "Opening — Establishing the World",
				Shots: []Shot{
					{
						Number:        1,
						Description:   "Wide establishing shot revealing the primary setting",
						CameraAngle:   "Bird's Eye",
						Movement:      "Slow Crane Down",
						Lighting:      "Low Key, Chiaroscuro",
						Lens:          "24mm Wide",
						EmotionalTone: "Mysterious",
						Duration:      "6 seconds",
						Notes:         "Begin with darkness, slowly reveal the scene",
					},
					{
						Number:        2,
						Description:   "Medium close-up of the protagonist's face, eyes searching",
						CameraAngle:   "Eye Level",
						Movement:      "Slow Push In",
						Lighting:      "Practical Lighting, warm tones",
						Lens:          "85mm Portrait",
						EmotionalTone: "Contemplative",
						Duration:      "4 seconds",
						Notes:         "Capture the internal conflict",
					},
					{
						Number:        3,
						Description:   "Over-the-shoulder shot revealing what the character sees",
						CameraAngle:   "Over the Shoulder",
						Movement:      "Static",
						Lighting:      "Natural, high contrast",
						Lens:          "50mm Standard",
						EmotionalTone: "Tense",
						Duration:      "3 seconds",
						Notes:         "Moment of revelation",
					},
				},
			},
			{
				ID:         "scene-02",
				SceneTitle: "Rising Action — The Conflict Deepens",
				Shots: []Shot{
					{
						Number:        1,
						Description:   "Tracking shot following the character through the environment",
						CameraAngle:   "Low Angle",
						Movement:      "Steadicam Follow",
						Lighting:      "Harsh Overhead",
						Lens:          "35mm Standard",
						EmotionalTone: "Urgent",
						Duration:      "8 seconds",
						Notes:         "Convey urgency and purpose",
					},
					{
						Number:        2,
						Description:   "Close-up of hands interacting with a key object",
						CameraAngle:   "High Angle",
						Movement:      "Static",
						Lighting:      "Focused Pool of Light",
						Lens:          "100mm Macro",
						EmotionalTone: "Intimate",
						Duration:      "3 seconds",
						Notes:         "Detail shot — the tactile moment",
					},
				},
			},
		},
		SoundDesign: []SceneSound{
			{
				SceneID:    "scene-01",
				SceneTitle: "Opening — Establishing the World",
				TimeOfDay:  "Night",
				Music: MusicDetail{
					Track:           "Into the Unknown",
					Description:     "A haunting, minimalist score that builds slowly with anticipation",
					Tempo:           "Adagio 60bpm",
					Key:             "D Minor",
					Mood:            "Ominous, Mysterious",
					Instrumentation: "Solo cello, sparse piano, distant synth pads",
				},
				Ambient: []string{
					"Distant wind howl, low frequency",
					"Subtle room tone with faint mechanical hum",
					"Occasional distant thunder",
				},
				Foley: []string{
					"Soft footsteps on concrete",
					"Fabric rustling — character movement",
					"Paper shuffling, close-mic",
				},
				MixingNotes: "Keep music at -18dB, ambient bed at -24dB. Let silence carry tension. Foley should feel hyper-real.",
				Dialogue: DialogueDetail{
					Treatment: "Close-mic, intimate with slight room reverb",
					Notes:     "Whispered delivery, maintain natural breath sounds",
				},
			},
			{
				SceneID:    "scene-02",
				SceneTitle: "Rising Action — The Conflict Deepens",
				TimeOfDay:  "Day",
				Music: MusicDetail{
					Track:           "Breaking Through",
					Description:     "Driving percussion builds beneath soaring strings",
					Tempo:           "Allegro 132bpm",
					Key:             "E Minor",
					Mood:            "Determined, Urgent",
					Instrumentation: "Full orchestra, taiko drums, electric bass",
				},
				Ambient: []string{
					"Urban street noise — distant traffic, voices",
					"Wind gusts between buildings",
				},
				Foley: []string{
					"Running footsteps — asphalt",
					"Door slam — metallic reverb",
					"Object impact — heavy, resonant",
				},
				MixingNotes: "Music swells to -12dB at peak. Ambient fades under action. Foley punchy and front-center.",
				Dialogue: DialogueDetail{
					Treatment: "Boom mic, slightly off-axis for movement scenes",
					Notes:     "ADR may be needed for running dialogue",
				},
			},
		},
	}
}
