package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every adjustable constant of the city canvas.
type Tuning struct {
	GridSize   int     `yaml:"grid_size"`
	TileWidth  float64 `yaml:"tile_width"`  // full diamond width in pixels
	TileHeight float64 `yaml:"tile_height"` // full diamond height in pixels

	Window Window `yaml:"window"`
	Input  Input  `yaml:"input"`
	Agent  Agent  `yaml:"agent"`

	HubType             string `yaml:"hub_type"`
	StartingLayout      bool   `yaml:"starting_layout"`
	PersistentPlacement bool   `yaml:"persistent_placement"`
	Seed                int64  `yaml:"seed"` // 0 = seed from the clock

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Input struct {
	DragThreshold  float64 `yaml:"drag_threshold"`
	UIChromeHeight float64 `yaml:"ui_chrome_height"`
	ZoomMin        float64 `yaml:"zoom_min"`
	ZoomMax        float64 `yaml:"zoom_max"`
	ZoomStep       float64 `yaml:"zoom_step"` // zoom change per wheel unit
}

type Agent struct {
	Speed     float64  `yaml:"speed"` // local-space pixels per second
	Lift      float64  `yaml:"lift"`  // vertical offset so the agent stands on the tile
	SpeechMin float64  `yaml:"speech_min_seconds"`
	SpeechMax float64  `yaml:"speech_max_seconds"`
	Variants  int      `yaml:"sprite_variants"`
	Phrases   []string `yaml:"phrases"`
}

// Default returns the tuning used when no file is given.
func Default() Tuning {
	return Tuning{
		GridSize:   8,
		TileWidth:  130,
		TileHeight: 80,
		Window: Window{
			Width:  1280,
			Height: 800,
			Title:  "Iso City",
		},
		Input: Input{
			DragThreshold:  5,
			UIChromeHeight: 140,
			ZoomMin:        0.5,
			ZoomMax:        2.0,
			ZoomStep:       0.1,
		},
		Agent: Agent{
			Speed:     60,
			Lift:      12,
			SpeechMin: 1,
			SpeechMax: 6,
			Variants:  4,
			Phrases: []string{
				"Nice day for a walk!",
				"Where does this road go?",
				"I love this city.",
				"Is that a new building?",
				"Almost home.",
				"Mind the traffic!",
			},
		},
		HubType:        "signature_university",
		StartingLayout: true,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads a YAML file and overlays it onto Default.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate rejects values the engine cannot work with.
func (t Tuning) Validate() error {
	var errs []error
	if t.GridSize < 1 || t.GridSize > 124 {
		errs = append(errs, fmt.Errorf("grid_size %d out of range [1,124]", t.GridSize))
	}
	if t.TileWidth <= 0 || t.TileHeight <= 0 {
		errs = append(errs, fmt.Errorf("tile size %gx%g must be positive", t.TileWidth, t.TileHeight))
	}
	if t.Input.ZoomMin <= 0 || t.Input.ZoomMax < t.Input.ZoomMin {
		errs = append(errs, fmt.Errorf("zoom range [%g,%g] invalid", t.Input.ZoomMin, t.Input.ZoomMax))
	}
	if t.Input.DragThreshold < 0 {
		errs = append(errs, errors.New("drag_threshold must not be negative"))
	}
	if t.Agent.Speed <= 0 {
		errs = append(errs, errors.New("agent speed must be positive"))
	}
	if t.Agent.SpeechMin < 0 || t.Agent.SpeechMax < t.Agent.SpeechMin {
		errs = append(errs, fmt.Errorf("speech interval [%g,%g] invalid", t.Agent.SpeechMin, t.Agent.SpeechMax))
	}
	if len(t.Agent.Phrases) == 0 {
		errs = append(errs, errors.New("agent phrases must not be empty"))
	}
	return errors.Join(errs...)
}
