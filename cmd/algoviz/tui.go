package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/run"
	"github.com/san-kum/algoviz/internal/timing"
	"github.com/san-kum/algoviz/internal/viz"
)

// runTUI starts the interactive visualizer. Logs go to --log-file only,
// since the terminal belongs to the UI.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	arrays, closeStore, err := openArrayStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rng, _ := newRand(cfg.Seed)
	bridge := viz.NewBridge()
	timer := timing.New(timing.WallClock())
	timer.SetSpeed(cfg.Speed)

	ctrl, err := run.New(run.Options{
		Algorithm: cfg.Algorithm,
		Size:      cfg.Size,
		Username:  cfg.Username,
		Layout:    cfg.Layout,
		Timer:     timer,
		Renderer:  bridge,
		Store:     arrays,
		Notifier:  bridge,
		Controls:  bridge,
		Logger:    logger,
		Rand:      rng,
	})
	if err != nil {
		return err
	}

	values, msg, err := initialValues(cfg, rng)
	if err != nil {
		return err
	}
	if values != nil && !engine.IsGraph(cfg.Algorithm) {
		err = ctrl.SetValues(values, msg)
	} else {
		err = ctrl.Generate()
	}
	if err != nil {
		return err
	}

	app := viz.NewApp(ctrl, bridge, cfg.Layout, cfg.Theme, logger)
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()

	ctrl.Cancel()
	bridge.Close()
	return err
}
