// Package config loads dashboard files: a title, a column count and the list
// of gauges with their attributes. Files may be JSON, YAML or TOML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/roffe/txgauge/pkg/widgets"
	"github.com/spf13/viper"
)

const (
	DefaultTitle   = "txgauge"
	DefaultColumns = 3
	EnvPrefix      = "TXGAUGE"
)

var (
	ErrNoGauges    = errors.New("dashboard has no gauges")
	ErrGaugeIndex  = errors.New("gauge index out of range")
	ErrUnsupported = errors.New("unsupported config format")
)

type Dashboard struct {
	Title   string                `mapstructure:"title" json:"title"`
	Columns int                   `mapstructure:"columns" json:"columns"`
	Gauges  []widgets.GaugeConfig `mapstructure:"gauges" json:"gauges"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", DefaultTitle)
	v.SetDefault("columns", DefaultColumns)
}

// Load reads a dashboard file. The format follows the file extension.
// TXGAUGE_TITLE and TXGAUGE_COLUMNS override the file.
func Load(path string) (*Dashboard, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", filepath.Base(path), err)
	}
	return decode(v)
}

// Read decodes a dashboard in the given format ("json", "yaml", "toml").
func Read(r io.Reader, format string) (*Dashboard, error) {
	switch format {
	case "json", "yaml", "yml", "toml":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, format)
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Dashboard, error) {
	var d Dashboard
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks every gauge configuration and returns all errors joined.
func (d *Dashboard) Validate() error {
	if len(d.Gauges) == 0 {
		return ErrNoGauges
	}
	if d.Columns <= 0 {
		d.Columns = DefaultColumns
	}
	var errs []error
	for i := range d.Gauges {
		if _, err := d.Gauges[i].EngineConfig(); err != nil {
			errs = append(errs, fmt.Errorf("gauges[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Gauge returns the gauge at index i.
func (d *Dashboard) Gauge(i int) (*widgets.GaugeConfig, error) {
	if i < 0 || i >= len(d.Gauges) {
		return nil, fmt.Errorf("%w: %d of %d", ErrGaugeIndex, i, len(d.Gauges))
	}
	return &d.Gauges[i], nil
}

// Topics returns the distinct ebus topics in gauge order.
func (d *Dashboard) Topics() []string {
	seen := make(map[string]bool)
	var topics []string
	for _, g := range d.Gauges {
		if g.Topic == "" || seen[g.Topic] {
			continue
		}
		seen[g.Topic] = true
		topics = append(topics, g.Topic)
	}
	return topics
}

func (d *Dashboard) MarshalJSONString() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
