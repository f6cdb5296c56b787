// Command deskshelld wires the deskshell package against an in-memory
// fake compositor and drives map/configure/lock sequences modelled on
// spec §8's end-to-end scenarios. It has no real display server
// behind it; it exists to exercise the shell the way a host compositor
// would, without requiring one.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oxwm/deskshell"
	"github.com/oxwm/deskshell/config"
)

func main() {
	configPath := flag.String("config", "", "path to a deskshelld.yaml config file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.DefaultDaemonConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			logger.Error("open config", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg, err = config.ParseDaemonConfig(f)
		f.Close()
		if err != nil {
			logger.Error("parse config", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	comp := newFakeCompositor()
	sh := deskshell.New(comp, deskshell.Options{
		HelperPath:  "", // the demo never launches a real helper binary.
		Screensaver: cfg.Screensaver,
		Logger:      logger,
	})
	defer sh.Destroy()

	runScenarios(sh, comp, logger)
}

// runScenarios plays out the end-to-end scenarios described for this
// kind of shell: toplevel mapping, a fullscreen cycle, and a lock with a
// configured screensaver.
func runScenarios(sh *deskshell.Shell, comp *fakeCompositor, logger *slog.Logger) {
	client := &fakeClient{id: 1, pid: 4242}

	logger.Info("scenario: toplevel mapping")
	surf, shellClient := comp.newClientSurface(client)
	ss, err := sh.GetShellSurface(surf, shellClient)
	if err != nil {
		logger.Error("get_shell_surface", slog.String("error", err.Error()))
		return
	}
	if err := ss.SetToplevel(); err != nil {
		logger.Error("set_toplevel", slog.String("error", err.Error()))
		return
	}
	sh.Map(ss, 100, 100, 0, 0)
	g := ss.Surface().Geometry()
	logger.Info("toplevel mapped", slog.Int("x", g.Min.X), slog.Int("y", g.Min.Y), slog.String("role", ss.Role().String()))

	logger.Info("scenario: fullscreen cycle")
	fsSurf, fsClient := comp.newClientSurface(client)
	fs, err := sh.GetShellSurface(fsSurf, fsClient)
	if err != nil {
		logger.Error("get_shell_surface", slog.String("error", err.Error()))
		return
	}
	out := comp.DefaultOutput()
	if err := fs.SetFullscreen(deskshell.FullscreenScale, 0, out); err != nil {
		logger.Error("set_fullscreen", slog.String("error", err.Error()))
		return
	}
	sh.Configure(fs, 0, 0, 1024, 768)
	sh.Map(fs, 1024, 768, 0, 0)
	fg := fs.Surface().Geometry()
	logger.Info("fullscreen mapped", slog.Int("x", fg.Min.X), slog.Int("y", fg.Min.Y), slog.Bool("has_backdrop", fs.HasBlackBackdrop()))

	logger.Info("scenario: lock with screensaver")
	if cfg := comp.launches; len(cfg) > 0 {
		logger.Debug("launches so far", slog.Any("paths", cfg))
	}
	sh.Lock()
	logger.Info("locked", slog.Bool("locked", sh.Locked()), slog.Int("idle_time", comp.IdleTime()))
	sh.Unlock()
	sh.HelperUnlock()
	logger.Info("unlocked", slog.Bool("locked", sh.Locked()))

	fmt.Println("deskshelld demo scenarios complete")
}
