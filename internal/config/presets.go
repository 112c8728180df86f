package config

var Presets = map[string]map[string]*Config{
	"random": {
		"sparse": {
			Scene: "random", Dt: DefaultDt, Duration: 15.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Count: 6, Restitution: 0.8, Gravity: 400,
		},
		"dense": {
			Scene: "random", Dt: DefaultDt, Duration: 15.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Count: 40, Restitution: 0.8, Gravity: 400,
		},
		"weightless": {
			Scene: "random", Dt: DefaultDt, Duration: 30.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Count: 20, Restitution: 1.0, Gravity: 0,
		},
	},
	"grid": {
		"calm": {
			Scene: "grid", Dt: DefaultDt, Duration: 20.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Count: 16, Restitution: 0.5, Gravity: 400,
		},
		"excited": {
			Scene: "grid", Dt: DefaultDt, Duration: 20.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Count: 25, Restitution: 0.95, Gravity: 400,
		},
	},
	"headon": {
		"elastic": {
			Scene: "headon", Dt: DefaultDt, Duration: 10.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Restitution: 1.0,
		},
		"inelastic": {
			Scene: "headon", Dt: DefaultDt, Duration: 10.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Restitution: 0.0,
		},
	},
	"corner": {
		"burst": {
			Scene: "corner", Dt: DefaultDt, Duration: 12.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Count: 15, Restitution: 0.9, Gravity: 400,
		},
	},
	"orbit": {
		"stable": {
			Scene: "orbit", Dt: 1.0 / 120, Duration: 60.0,
			Arena: ArenaConfig{Width: 800, Height: 600},
			Count: 5, Restitution: 1.0,
		},
		"decay": {
			Scene: "orbit", Dt: 1.0 / 120, Duration: 60.0,
			Arena:  ArenaConfig{Width: 800, Height: 600},
			Count:  5,
			Fields: []FieldConfig{{Type: "drag", Coefficient: 0.02}},
		},
	},
}

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
