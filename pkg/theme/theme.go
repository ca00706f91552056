package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GaugeTheme is a dark theme with the default gauge teal as primary color.
type GaugeTheme struct{}

var (
	background = color.RGBA{R: 23, G: 23, B: 24, A: 255}
	primary    = color.RGBA{R: 0, G: 150, B: 136, A: 255}
)

func (m GaugeTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return background
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return primary
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (m GaugeTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m GaugeTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m GaugeTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameSeparatorThickness:
		return 0
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameScrollBarSmall:
		return 4
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 24
	}
	return theme.DefaultTheme().Size(name)
}
