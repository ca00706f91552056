package gauge

import (
	"fmt"

	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/widgets"
	"github.com/roffe/txgauge/pkg/widgets/arcgauge"
)

// New builds the widget for cfg and feeds it from the bus topic. The returned
// funcs unsubscribe and stop the widget.
func New(cfg *widgets.GaugeConfig, bus *ebus.Bus, opts ...arcgauge.Option) (widgets.IGauge, []func(), error) {
	switch cfg.Type {
	case widgets.TypeArc, "":
		if v, ok := bus.Last(cfg.Topic); ok {
			opts = append([]arcgauge.Option{arcgauge.WithValue(v)}, opts...)
		} else {
			opts = append([]arcgauge.Option{arcgauge.WithValue(cfg.Attributes.Value())}, opts...)
		}
		arc, err := arcgauge.New(cfg, opts...)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Topic == "" {
			return arc, []func(){arc.Close}, nil
		}
		cancel := bus.SubscribeFunc(cfg.Topic, arc.SetValue)
		return arc, []func(){cancel, arc.Close}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", widgets.ErrUnknownType, cfg.Type)
}
