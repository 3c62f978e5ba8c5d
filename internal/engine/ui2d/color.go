package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Castle palette.
var (
	ColorPanelBg        = Color{0.09, 0.08, 0.10, 0.92}
	ColorPanelBorder    = Color{0.35, 0.33, 0.38, 1}
	ColorTitleBar       = Color{0.17, 0.15, 0.18, 1}
	ColorButtonNormal   = Color{0.20, 0.17, 0.14, 1}
	ColorButtonHover    = Color{0.32, 0.26, 0.17, 1}
	ColorButtonActive   = Color{0.55, 0.40, 0.17, 1}
	ColorButtonDisabled = Color{0.13, 0.12, 0.13, 1}
	ColorTrack          = Color{0.05, 0.05, 0.07, 1}
	ColorText           = Color{0.91, 0.87, 0.78, 1}
	ColorTextDim        = Color{0.55, 0.52, 0.47, 1}
	ColorHighlight      = Color{0.85, 0.64, 0.25, 1}
)
