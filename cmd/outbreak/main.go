package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"

	"github.com/mrchimp/zombies-vs-medics/api"
	"github.com/mrchimp/zombies-vs-medics/audio"
	"github.com/mrchimp/zombies-vs-medics/core"
	"github.com/mrchimp/zombies-vs-medics/engine"
	"github.com/mrchimp/zombies-vs-medics/parameter"
	"github.com/mrchimp/zombies-vs-medics/render"
	"github.com/mrchimp/zombies-vs-medics/status"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "outbreak: %v\n", err)
		os.Exit(2)
	}

	logger, logFile := setupLogging(opts.Debug, opts.LogDir)
	defer func() {
		_ = logger.Sync()
		if logFile != nil {
			logFile.Close()
		}
	}()

	if opts.Headless {
		err = runHeadless(opts, logger)
	} else {
		err = runInteractive(opts, logger)
	}
	if err != nil {
		logger.Error("outbreak failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "outbreak: %v\n", err)
		os.Exit(1)
	}
}

func simOptions(opts options, logger *zap.Logger, reg *status.Registry) []engine.Option {
	out := []engine.Option{engine.WithLogger(logger), engine.WithStatus(reg)}
	if opts.File.Seed != 0 {
		out = append(out, engine.WithRandomSource(vmath.NewFastRand(opts.File.Seed)))
	}
	return out
}

// startServer brings up the observer API when an address is configured, returns a stop func
func startServer(opts options, sim *engine.Simulation, clock *engine.SimulationClock, reg *status.Registry, logger *zap.Logger) (func(), error) {
	if opts.File.HTTP == "" {
		return func() {}, nil
	}
	srv := api.NewServer(opts.File.HTTP, sim, clock, reg, logger)
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("http listen %s: %w", opts.File.HTTP, err)
	}
	return func() {
		if err := srv.Shutdown(); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
	}, nil
}

// runHeadless either steps a fixed number of ticks or plays on the clock until interrupted
func runHeadless(opts options, logger *zap.Logger) error {
	reg := status.NewRegistry()
	sim, err := engine.NewSimulation(opts.File.Config, simOptions(opts, logger, reg)...)
	if err != nil {
		return err
	}
	au := aurora.NewAurora(true)

	if opts.Ticks > 0 && opts.File.HTTP == "" {
		report(os.Stdout, au, runBatch(sim, opts.Ticks))
		return nil
	}

	clock := engine.NewSimulationClock(sim,
		engine.WithClockLogger(logger),
		engine.WithClockStatus(reg),
	)
	t := newTally()
	clock.OnTick(t.Observe)

	stopServer, err := startServer(opts, sim, clock, reg, logger)
	if err != nil {
		return err
	}
	defer stopServer()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	first := sim.Frame(-1)
	initial, runID := first.Counts, first.RunID
	start := time.Now()

	clock.Start()
	clock.Play()

	if opts.Ticks > 0 {
		waitForTick(ctx, sim, clock, uint64(opts.Ticks))
	} else {
		<-ctx.Done()
	}
	clock.Stop()

	final := sim.Frame(-1)
	if final.RunID != runID {
		// Reset over HTTP restarted the run, the initial counts no longer apply
		initial = final.Config.InitialCounts()
	}

	report(os.Stdout, au, runSummary{
		RunID:       final.RunID.String(),
		Ticks:       final.Tick,
		Initial:     initial,
		Final:       final.Counts,
		Transitions: t.Snapshot(),
		Wall:        time.Since(start),
	})
	return nil
}

func waitForTick(ctx context.Context, sim *engine.Simulation, clock *engine.SimulationClock, target uint64) {
	for sim.CurrentTick() < target {
		select {
		case <-ctx.Done():
			return
		case <-clock.Updates():
		}
	}
}

// runInteractive owns the terminal: input, frame pacing and optional audio
func runInteractive(opts options, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	cfg := opts.File.Config
	cols, rows := screen.Size()
	cfg.BoardWidth, cfg.BoardHeight, cfg.ReservedBottom = render.BoardSize(cols, rows, cfg.ResolutionScale)

	reg := status.NewRegistry()
	sim, err := engine.NewSimulation(cfg, simOptions(opts, logger, reg)...)
	if err != nil {
		return err
	}

	clock := engine.NewSimulationClock(sim,
		engine.WithClockLogger(logger),
		engine.WithClockStatus(reg),
	)

	sound := audio.NewSoundManager(logger)
	if opts.File.Sound {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		}
		defer sound.Cleanup()
	}
	clock.OnTick(sound.ObserveTick)

	stopServer, err := startServer(opts, sim, clock, reg, logger)
	if err != nil {
		return err
	}
	defer stopServer()

	clock.Start()
	defer clock.Stop()
	clock.Play()

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	h := &host{
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen),
		sim:      sim,
		clock:    clock,
		sound:    sound,
		tps:      reg.Floats.Get("engine.tps"),
		logger:   logger,
	}

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	dirty := true
	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
			dirty = true

		case <-clock.Updates():
			dirty = true

		case <-frameTicker.C:
			if dirty || h.message != "" {
				h.draw()
				dirty = false
			}
		}
	}
}

// host glues the terminal to the simulation
type host struct {
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	sim      *engine.Simulation
	clock    *engine.SimulationClock
	sound    *audio.SoundManager
	tps      *status.AtomicFloat
	logger   *zap.Logger

	message      string
	messageUntil time.Time
}

func (h *host) flash(msg string) {
	h.message = msg
	h.messageUntil = time.Now().Add(parameter.StatusMessageTimeout)
}

// handleEvent applies one terminal event, false means quit
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch render.KeyAction(ev) {
		case render.ActionQuit:
			return false
		case render.ActionTogglePlay:
			h.clock.Toggle()
		case render.ActionReset:
			h.clock.RequestReset()
			h.flash("reset")
		case render.ActionToggleGraph:
			h.renderer.ToggleGraph()
		case render.ActionToggleSound:
			if !h.sound.IsEnabled() {
				h.flash("sound off, start with -sound")
				break
			}
			h.sound.SetMuted(!h.sound.IsMuted())
			if h.sound.IsMuted() {
				h.flash("muted")
			} else {
				h.flash("sound on")
			}
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.stageResize()
	}
	return true
}

// stageResize refits the staged board to the new terminal, applied on the next reset
// Other staged changes, such as ones made over HTTP, are kept
func (h *host) stageResize() {
	cols, rows := h.screen.Size()
	err := h.sim.UpdateConfig(func(cfg *engine.Config) error {
		w, ht, reserved := render.BoardSize(cols, rows, cfg.ResolutionScale)
		if w == cfg.BoardWidth && ht == cfg.BoardHeight && reserved == cfg.ReservedBottom {
			return errBoardUnchanged
		}
		cfg.BoardWidth, cfg.BoardHeight, cfg.ReservedBottom = w, ht, reserved
		return nil
	})
	switch {
	case errors.Is(err, errBoardUnchanged):
	case err != nil:
		h.logger.Warn("resize rejected", zap.Error(err))
	default:
		h.flash("resized, r to refit")
	}
}

// errBoardUnchanged aborts a resize update that would stage nothing new
var errBoardUnchanged = errors.New("board unchanged")

// draw renders one frame read under a single simulation lock
func (h *host) draw() {
	if h.message != "" && time.Now().After(h.messageUntil) {
		h.message = ""
	}

	f := h.sim.Frame(0)
	h.renderer.RenderFrame(render.Frame{
		Entities:       f.Entities,
		Counts:         f.Counts,
		History:        f.History,
		BoardWidth:     f.Config.BoardWidth,
		BoardHeight:    f.Config.BoardHeight,
		ReservedBottom: f.Config.ReservedBottom,
		Tick:           f.Tick,
		Elapsed:        h.clock.Elapsed(),
		TPS:            h.tps.Get(),
		Playing:        h.clock.IsPlaying(),
		Audio:          h.sound.IsEnabled() && !h.sound.IsMuted(),
		RunID:          f.RunID.String(),
		Message:        h.message,
	})
}
