package widgets

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/gauge"
)

const TypeArc = "Arc"

var ErrUnknownType = errors.New("unknown gauge type")

// GaugeConfig describes one dashboard gauge. Type defaults to "Arc"; Topic
// is the ebus topic feeding the value.
type GaugeConfig struct {
	Title        string           `json:"title" mapstructure:"title"`
	Type         string           `json:"type" mapstructure:"type"`
	Topic        string           `json:"topic" mapstructure:"topic"`
	MinSize      fyne.Size        `json:"-" mapstructure:"-"`
	TextPosition TextPosition     `json:"textPosition" mapstructure:"textPosition"`
	ColorScale   string           `json:"colorScale" mapstructure:"colorScale"`
	Attributes   gauge.Attributes `json:"attributes" mapstructure:"attributes"`
}

// TextPosition places the label relative to the value text.
type TextPosition int

const (
	TextAtBottom TextPosition = iota
	TextAtTop
	TextAtCenter
)

// EngineConfig builds the engine configuration from the attributes. The
// title is the label when none is set, and a color scale stands in for a
// missing foregroundColor. Dropped color stops are logged, not returned.
func (c *GaugeConfig) EngineConfig() (gauge.Config, error) {
	cfg, err := c.Attributes.Config()
	if err != nil {
		if verr := cfg.Validate(); verr != nil {
			return cfg, fmt.Errorf("gauge %q: %w", c.Title, verr)
		}
		log.Printf("gauge %q: %v", c.Title, err)
	}
	if cfg.Label == "" {
		cfg.Label = c.Title
	}
	if _, ok := c.Attributes.Lookup("foregroundColor"); !ok && c.ColorScale != "" {
		cfg.Foreground = colors.Scheme(colors.StringToColorBlindMode(c.ColorScale), cfg.Min, cfg.Max)
	}
	return cfg, nil
}
