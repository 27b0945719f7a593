package constant

import "ai-music-be/pkg/preference"

// TriggerPreset is a built-in ephemeral overlay shipped with the backend.
type TriggerPreset struct {
	Overlay         preference.Document
	LifetimeSeconds int
}

// Trigger catalog. Creating a trigger without an explicit overlay takes
// the preset for its type; unknown types are rejected.
const (
	TriggerMarathonPlayback = "marathon_playback"
	TriggerLiveMixing       = "live_mixing"
	TriggerEditing          = "editing"
	TriggerLateNight        = "late_night"
)

var TriggerCatalog = map[string]TriggerPreset{
	TriggerMarathonPlayback: {
		Overlay: preference.Document{
			"audio": {
				"crossfade": preference.Number(5),
				"normalize": preference.Boolean(true),
			},
			"generation": {
				"auto_extend": preference.Boolean(true),
			},
		},
		LifetimeSeconds: 6 * 3600,
	},
	TriggerLiveMixing: {
		Overlay: preference.Document{
			"audio": {
				"latency":     preference.Number(10),
				"buffer_size": preference.Number(128),
				"quality":     preference.Categorical("high"),
			},
		},
		LifetimeSeconds: 2 * 3600,
	},
	TriggerEditing: {
		Overlay: preference.Document{
			"audio": {
				"effects": preference.Boolean(false),
				"quality": preference.Categorical("lossless"),
			},
			"interface": {
				"layout": preference.Categorical("wide"),
			},
		},
		LifetimeSeconds: 4 * 3600,
	},
	TriggerLateNight: {
		Overlay: preference.Document{
			"audio": {
				"volume":    preference.Number(30),
				"normalize": preference.Boolean(true),
			},
			"interface": {
				"theme": preference.Categorical("dark"),
			},
		},
		LifetimeSeconds: 8 * 3600,
	},
}
