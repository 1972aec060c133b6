package glowpad

import "sort"

type menuAction struct {
	label string
	bind  func(p *Pad) func()
}

var menuActions = map[string]menuAction{
	"offset": {
		label: "Offset",
		bind: func(p *Pad) func() {
			return func() { p.state.StepOffset(p.cfg.OffsetSteps) }
		},
	},
	"offset_back": {
		label: "Offset back",
		bind: func(p *Pad) func() {
			return func() { p.state.StepOffsetBack(p.cfg.OffsetSteps) }
		},
	},
	"brightness": {
		label: "Brightness",
		bind: func(p *Pad) func() {
			return func() { p.state.DimBy(p.cfg.BrightnessStep) }
		},
	},
	"brightness_up": {
		label: "Brightness up",
		bind: func(p *Pad) func() {
			return func() { p.state.BrightenBy(p.cfg.BrightnessStep) }
		},
	},
	"reset": {
		label: "Reset",
		bind: func(p *Pad) func() {
			return p.state.Reset
		},
	},
}

// MenuActions returns the names of the actions usable in Config.Menu.
func MenuActions() []string {
	names := make([]string, 0, len(menuActions))
	for name := range menuActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
