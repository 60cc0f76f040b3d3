package generator

// Shot is one camera setup within a scene.
type Shot struct {
	Number        int    `json:"number"`
	Description   string `json:"description"`
	CameraAngle   string `json:"camera_angle"`
	Movement      string `json:"movement"`
	Lighting      string `json:"lighting"`
	Lens          string `json:"lens"`
	EmotionalTone string `json:"emotional_tone"`
	Duration      string `json:"duration"`
	Notes         string `json:"notes,omitempty"`
}

// SceneShots groups the ordered shots of one scene.
type SceneShots struct {
	ID         string `json:"id"`
	SceneTitle string `json:"scene_title"`
	Shots      []Shot `json:"shots"`
}

// MusicDetail describes the score for one scene.
type MusicDetail struct {
	Track           string `json:"track"`
	Description     string `json:"description"`
	Tempo           string `json:"tempo"`
	Key             string `json:"key"`
	Mood            string `json:"mood"`
	Instrumentation string `json:"instrumentation"`
}

// DialogueDetail describes how dialogue is recorded and treated.
type DialogueDetail struct {
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

// SceneSound is the audio plan for one scene.
type SceneSound struct {
	SceneID     string         `json:"scene_id"`
	SceneTitle  string         `json:"scene_title"`
	TimeOfDay   string         `json:"time_of_day"`
	Music       MusicDetail    `json:"music"`
	Ambient     []string       `json:"ambient"`
	Foley       []string       `json:"foley"`
	MixingNotes string         `json:"mixing_notes"`
	Dialogue    DialogueDetail `json:"dialogue"`
}

// ProductionPackage is the complete pre-production bundle for one story:
// screenplay text plus per-scene shot and sound design. Shot and sound
// scenes are not required to align; providers rarely keep them in sync.
type ProductionPackage struct {
	Screenplay  string       `json:"screenplay"`
	ShotDesign  []SceneShots `json:"shot_design"`
	SoundDesign []SceneSound `json:"sound_design"`
}

// Outcome pairs a package with the tier that produced it. The Provider tag
// is load-bearing: callers persist it and tests assert fallback behavior
// through it.
type Outcome struct {
	Package  ProductionPackage
	Provider string
}

// ProviderTemplate tags outcomes produced by the local synthesizer.
const ProviderTemplate = "template"

// Script edit actions.
const (
	ActionExpand   = "expand"
	ActionCompress = "compress"
	ActionRewrite  = "rewrite"
	ActionTone     = "tone"
)

// ValidAction reports whether a is a supported edit action.
func ValidAction(a string) bool {
	switch a {
	case ActionExpand, ActionCompress, ActionRewrite, ActionTone:
		return true
	}
	return false
}
