package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Dim struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type PowerCfg struct {
	BudgetMA float64 `yaml:"budget_ma"`      // 0 disables the global budget
	ChanMA   float64 `yaml:"chan_ma"`        // mA per channel at full scale
	WhiteCap float64 `yaml:"white_cap"`      // max R+G+B per LED, 0..3
	Knee     float64 `yaml:"knee,omitempty"` // fraction of budget where limiting starts, 0 = 0.9
}

type LED struct {
	Dim           Dim      `yaml:"dim"`
	XFlipEveryRow bool     `yaml:"x_flip_every_row"`
	SPI           string   `yaml:"spi,omitempty"`       // port name for spireg, "" = first
	SpeedKHz      int      `yaml:"speed_khz,omitempty"` // 0 = 800 kHz, the WS281x bit rate
	Brightness    float64  `yaml:"brightness"`
	Power         PowerCfg `yaml:"power"`
}

type Serve struct {
	Addr       string `yaml:"addr"`
	ThrottleMs int    `yaml:"throttle_ms"` // min gap between streamed frames
}

type Export struct {
	Dir     string  `yaml:"dir,omitempty"` // PNG sequence directory
	GIF     string  `yaml:"gif,omitempty"` // animated GIF path
	Seconds float64 `yaml:"seconds"`
	FPS     int     `yaml:"fps"`
}

type Config struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	FPS      int    `yaml:"fps"`
	Stars    int    `yaml:"stars"`
	Seed     uint64 `yaml:"seed,omitempty"` // 0 = random every run
	LogLevel string `yaml:"log_level"`
	Sound    bool   `yaml:"sound"`

	Serve  Serve  `yaml:"serve"`
	Export Export `yaml:"export"`
	LED    LED    `yaml:"led"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Width:    800,
		Height:   600,
		FPS:      60,
		Stars:    100,
		LogLevel: "info",
		Serve:    Serve{Addr: ":8080", ThrottleMs: 50},
		Export:   Export{Dir: "frames", Seconds: 100, FPS: 10},
		LED: LED{
			Dim:           Dim{X: 16, Y: 16},
			XFlipEveryRow: true,
			Brightness:    0.5,
			Power:         PowerCfg{BudgetMA: 3000, ChanMA: 20, WhiteCap: 2.2},
		},
	}
}

var (
	ErrDimensions = errors.New("width and height must be positive")
	ErrFPS        = errors.New("fps must be positive")
)

// Validate reports the first setting that cannot be rendered.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrFPS, c.FPS)
	}
	if c.Export.FPS <= 0 {
		return fmt.Errorf("export %w: %d", ErrFPS, c.Export.FPS)
	}
	if c.Stars < 0 {
		return fmt.Errorf("stars must be >= 0: %d", c.Stars)
	}
	if c.LED.Dim.X <= 0 || c.LED.Dim.Y <= 0 {
		return fmt.Errorf("led dim must be positive: %dx%d", c.LED.Dim.X, c.LED.Dim.Y)
	}
	if c.LED.Brightness < 0 || c.LED.Brightness > 1 {
		return fmt.Errorf("led brightness must be in [0,1]: %v", c.LED.Brightness)
	}
	return nil
}

// Load reads path over the defaults, so missing keys keep default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
