package assets

import (
	"time"

	"glitchsplash/internal/render"
	"glitchsplash/internal/splash"
)

// Core palette.
const (
	Background  = "#0a0a0f"
	LogoGold    = "#f5c518"
	PromptColor = "#c49e14"
)

// GlitchBlues is the ambient glitch cycle: unresolved cells and background
// static shimmer through these dark blues as the clock advances.
var GlitchBlues = render.Palette{
	"#1a3a5c", "#0d2440", "#1a3a5c",
	"#2d2d4e", "#1a1a3a", "#0d2440",
	"#3a4a6c", "#1a3a5c", "#0d2440",
	"#4a5a7c", "#1a3a5c", "#2d2d4e",
}

// Logo is the block-letter wordmark that every built-in scene resolves to.
var Logo = []string{
	" ██████╗  ██╗      ██╗ ████████╗  ██████╗ ██╗  ██╗",
	"██╔════╝  ██║      ██║ ╚══██╔══╝ ██╔════╝ ██║  ██║",
	"██║  ███╗ ██║      ██║    ██║    ██║      ███████║",
	"██║   ██║ ██║      ██║    ██║    ██║      ██╔══██║",
	"╚██████╔╝ ███████╗ ██║    ██║    ╚██████╗ ██║  ██║",
	" ╚═════╝  ╚══════╝ ╚═╝    ╚═╝     ╚═════╝ ╚═╝  ╚═╝",
}

// Materialize is the full treatment: the viewport floods with static, the
// wordmark fights its way out of the noise, and the leftover static burns
// off before the hold.
func Materialize() splash.SceneSpec {
	return splash.SceneSpec{
		Name: "materialize",
		Art: splash.Art{
			Lines: Logo,
			Color: LogoGold,
		},
		Timing: splash.Timing{
			DelayMin: 5, DelayMax: 20,
			SettleMin: 20, SettleMax: 35,
		},
		Background:     Background,
		Ambient:        GlitchBlues,
		Prompt:         "Press any key to continue...",
		PromptColor:    PromptColor,
		NoiseFill:      0.16,
		NoiseLifeMin:   25,
		NoiseLifeMax:   55,
		NoiseSharpFade: true,
		FloodTicks:     15,
		HoldTicks:      25,
		TickInterval:   60 * time.Millisecond,
	}
}

// Quiet is the restrained variant: no background static, only the letter
// cells themselves glitch while the rest of the screen stays dark.
func Quiet() splash.SceneSpec {
	return splash.SceneSpec{
		Name: "quiet",
		Art: splash.Art{
			Lines: Logo,
			Color: LogoGold,
		},
		Timing: splash.Timing{
			DelayMin: 5, DelayMax: 20,
			SettleMin: 20, SettleMax: 35,
		},
		Background:   Background,
		Ambient:      GlitchBlues,
		Prompt:       "Press any key to continue...",
		PromptColor:  PromptColor,
		HoldTicks:    25,
		TickInterval: 60 * time.Millisecond,
	}
}

// Scenes maps preset names to their constructors, in flag-value form.
var Scenes = map[string]func() splash.SceneSpec{
	"materialize": Materialize,
	"quiet":       Quiet,
}
