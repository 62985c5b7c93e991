package app

import (
	"github.com/coreman2200/funtimes-epochs/internal/config"
	"github.com/coreman2200/funtimes-epochs/internal/render"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

// Core is the wired show: scene, engine, timeline and frame driver.
type Core struct {
	Scene *render.Scene
	Eng   *render.Engine
	TL    *timeline.Safe
	Cond  *Conductor
}

// InitCore builds the show from cfg and attaches drivers to the engine.
func InitCore(cfg *config.Config, drivers ...render.Driver) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sc := render.NewScene(render.NewRand(cfg.Seed))
	sc.Stars = cfg.Stars

	eng, err := render.NewEngine(cfg.Width, cfg.Height, sc, drivers...)
	if err != nil {
		return nil, err
	}
	tl := timeline.NewSafe(nil)
	return &Core{
		Scene: sc,
		Eng:   eng,
		TL:    tl,
		Cond:  NewConductor(eng, tl, cfg.FPS),
	}, nil
}

// Apply hot-swaps the settings that can change while running.
func (c *Core) Apply(cfg *config.Config) {
	c.Cond.Do(func() { c.Scene.Stars = cfg.Stars })
	c.Cond.SetFPS(cfg.FPS)
}
