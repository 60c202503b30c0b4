package components

import (
	"bytes"
	"html/template"
)

type Color string

const (
	ColorPrimary   Color = "#FFFFFF"
	ColorContrast  Color = "#000000"
	ColorAccent    Color = "#1976D2"
	ColorSecondary Color = "#424242"
	ColorError     Color = "#D32F2F"
	ColorSuccess   Color = "#388E3C"
)

const (
	FontFamily = "Roboto, sans-serif"

	TitleSize    = 24
	SubtitleSize = 18
	BodySize     = 14
	CaptionSize  = 12

	Padding      = 16
	Margin       = 8
	BorderRadius = 8
)

// Palette holds the values the page stylesheet is rendered from.
type Palette struct {
	Primary      Color
	Contrast     Color
	Accent       Color
	Secondary    Color
	Error        Color
	Success      Color
	FontFamily   string
	TitleSize    int
	SubtitleSize int
	BodySize     int
	CaptionSize  int
	Padding      int
	Margin       int
	BorderRadius int
}

func DefaultPalette() Palette {
	return Palette{
		Primary:      ColorPrimary,
		Contrast:     ColorContrast,
		Accent:       ColorAccent,
		Secondary:    ColorSecondary,
		Error:        ColorError,
		Success:      ColorSuccess,
		FontFamily:   FontFamily,
		TitleSize:    TitleSize,
		SubtitleSize: SubtitleSize,
		BodySize:     BodySize,
		CaptionSize:  CaptionSize,
		Padding:      Padding,
		Margin:       Margin,
		BorderRadius: BorderRadius,
	}
}

// Stylesheet renders the palette into the page CSS.
func (p Palette) Stylesheet() template.CSS {
	var buf bytes.Buffer

	must(stylesheet.Execute(&buf, p))

	return template.CSS(buf.String()) //nolint:gosec // rendered from constants
}
