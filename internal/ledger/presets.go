package ledger

import "strings"

// Preset is a quick-add button.
type Preset struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

var Presets = []Preset{
	{Name: "glass", Label: "Glass", Amount: 250},
	{Name: "bottle", Label: "Bottle", Amount: 500},
	{Name: "large", Label: "Large", Amount: 750},
	{Name: "liter", Label: "Liter", Amount: 1000},
}

func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == strings.ToLower(name) {
			return p, true
		}
	}
	return Preset{}, false
}
