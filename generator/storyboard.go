package generator

import "strings"

// Panel ties an image-generation prompt to the shot it illustrates.
type Panel struct {
	SceneID    string `json:"scene_id"`
	SceneTitle string `json:"scene_title"`
	ShotNumber int    `json:"shot_number"`
	Shot       Shot   `json:"shot"`
	Prompt     string `json:"prompt"`
}

// StoryboardPanels flattens a shot design into one panel per shot. Pure
// derivation, no provider involved.
func StoryboardPanels(shotDesign []SceneShots) []Panel {
	panels := make([]Panel, 0)
	for _, scene := range shotDesign {
		for _, shot := range scene.Shots {
			panels = append(panels, Panel{
				SceneID:    scene.ID,
				SceneTitle: scene.SceneTitle,
				ShotNumber: shot.Number,
				Shot:       shot,
				Prompt:     buildStoryboardPrompt(shot, scene.SceneTitle),
			})
		}
	}
	return panels
}

func buildStoryboardPrompt(shot Shot, sceneTitle string) string {
	parts := []string{"cinematic storyboard panel, film production, detailed illustration"}
	if sceneTitle != "" {
		parts = append(parts, sceneTitle)
	}
	if shot.Description != "" {
		parts = append(parts, shot.Description)
	}
	if shot.CameraAngle != "" {
		parts = append(parts, shot.CameraAngle+" angle")
	}
	if shot.Lens != "" {
		parts = append(parts, shot.Lens+" lens feel")
	}
	if shot.EmotionalTone != "" {
		parts = append(parts, shot.EmotionalTone+" mood")
	}
	if shot.Movement != "" {
		parts = append(parts, "camera "+shot.Movement)
	}
	parts = append(parts, "dramatic lighting, 16:9 aspect ratio, movie production art")
	return strings.Join(parts, ", ")
}
