// Package presets keeps named dashboards. Built-in presets are always
// present; user presets are stored as JSON in the fyne preferences.
package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/roffe/txgauge/pkg/config"
)

const preferenceKey = "presets"

var (
	ErrNotFound = errors.New("preset not found")
	ErrSystem   = errors.New("cannot replace system presets")
)

var (
	mu  sync.Mutex
	Map = map[string]string{}
)

var system = map[string]string{
	"Demo": `{"title":"Demo","columns":3,"gauges":[` +
		`{"title":"Arch","topic":"demo.a","attributes":{"max":1000,"append":" rpm","decimals":0}},` +
		`{"title":"Semi","topic":"demo.a","attributes":{"type":"semi","max":1000,"cap":"round","foregroundColor":"#2196F3"}},` +
		`{"title":"Full","topic":"demo.a","attributes":{"type":"full","max":1000,"thick":10,"reverse":true}}]}`,
	"Multi color": `{"title":"Multi color","columns":2,"gauges":[` +
		`{"title":"Gradient","topic":"demo.a","attributes":{"max":1000,"foregroundColor":[` +
		`{"value":0,"color":"#00FF00"},{"value":700,"color":"#FFFF00"},{"value":1000,"color":"#FF0000"}]}},` +
		`{"title":"Steps","topic":"demo.a","attributes":{"max":1000,"type":"semi","foregroundColor":[` +
		`{"value":0,"color":"#00FF00"},{"value":700,"color":"#00FF00"},{"value":700,"color":"#FFFF00"},` +
		`{"value":900,"color":"#FFFF00"},{"value":900,"color":"#FF0000"},{"value":1000,"color":"#FF0000"}]}}]}`,
	"Color blind": `{"title":"Color blind","columns":2,"gauges":[` +
		`{"title":"Universal","topic":"demo.a","colorScale":"Universal","attributes":{"max":1000}},` +
		`{"title":"Tritanopia","topic":"demo.a","colorScale":"Tritanopia","attributes":{"max":1000,"type":"semi"}}]}`,
}

func isSystem(name string) bool {
	for k := range system {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	setDefaults()
	var names []string
	for name := range Map {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Set(name string, d *config.Dashboard) error {
	if isSystem(name) {
		return fmt.Errorf("%w: %s", ErrSystem, name)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := d.MarshalJSONString()
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	Map[name] = data
	return nil
}

func Delete(name string) error {
	if isSystem(name) {
		return fmt.Errorf("%w: %s", ErrSystem, name)
	}
	mu.Lock()
	defer mu.Unlock()
	delete(Map, name)
	return nil
}

func Get(name string) (*config.Dashboard, error) {
	mu.Lock()
	setDefaults()
	data, ok := Map[name]
	mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return config.Read(strings.NewReader(data), "json")
}

func Load(app fyne.App) error {
	mu.Lock()
	defer mu.Unlock()
	presets := app.Preferences().String(preferenceKey)
	if presets != "" {
		if err := json.Unmarshal([]byte(presets), &Map); err != nil {
			setDefaults()
			return err
		}
	}
	setDefaults()
	return nil
}

// Save stores the user presets.
func Save(app fyne.App) error {
	mu.Lock()
	defer mu.Unlock()
	user := make(map[string]string)
	for k, v := range Map {
		if !isSystem(k) {
			user[k] = v
		}
	}
	presets, err := json.Marshal(user)
	if err != nil {
		return err
	}
	app.Preferences().SetString(preferenceKey, string(presets))
	return nil
}

func setDefaults() {
	for k, v := range system {
		Map[k] = v
	}
}
