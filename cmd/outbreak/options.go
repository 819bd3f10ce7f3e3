package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/mrchimp/zombies-vs-medics/config"
	"github.com/mrchimp/zombies-vs-medics/engine"
)

// options is the resolved command line: config file first, then explicitly set flags on top
type options struct {
	File     config.File
	Headless bool
	Ticks    int
	Debug    bool
	LogDir   string
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("outbreak", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML config file layered over the defaults")
		civilians  = fs.Int("civilians", 0, "Initial civilians")
		zombies    = fs.Int("zombies", 0, "Initial zombies")
		medics     = fs.Int("medics", 0, "Initial medics")
		corpses    = fs.Int("corpses", 0, "Initial corpses")
		scale      = fs.Int("scale", 0, "Resolution scale: terminal pixels per board unit divisor")
		seed       = fs.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
		grid       = fs.Bool("grid", false, "Use the spatial grid for neighbor queries")
		clustered  = fs.Bool("clustered", false, "Scatter agents in noise-shaped settlements")
		headless   = fs.Bool("headless", false, "Run without a terminal UI")
		ticks      = fs.Int("ticks", 0, "Headless: ticks to run then report, 0 runs until interrupted")
		httpAddr   = fs.String("http", "", "Serve the observer API on this address")
		sound      = fs.Bool("sound", false, "Play audio cues for transitions")
		debug      = fs.Bool("debug", false, "Write debug logs to "+logDir+"/"+logFileName)
	)

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	file := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return options{}, err
		}
		file = loaded
	}

	// Only flags given on the command line override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "civilians":
			file.NumCivilians = *civilians
		case "zombies":
			file.NumZombies = *zombies
		case "medics":
			file.NumMedics = *medics
		case "corpses":
			file.NumCorpses = *corpses
		case "scale":
			file.ResolutionScale = *scale
		case "seed":
			file.Seed = *seed
		case "grid":
			file.SpatialGrid = *grid
		case "clustered":
			if *clustered {
				file.Placement = engine.PlacementClustered
			} else {
				file.Placement = engine.PlacementUniform
			}
		case "http":
			file.HTTP = *httpAddr
		case "sound":
			file.Sound = *sound
		}
	})

	if err := file.Config.Validate(); err != nil {
		return options{}, err
	}
	if *ticks < 0 {
		return options{}, fmt.Errorf("ticks must not be negative, got %d", *ticks)
	}

	return options{
		File:     file,
		Headless: *headless,
		Ticks:    *ticks,
		Debug:    *debug,
		LogDir:   logDir,
	}, nil
}
