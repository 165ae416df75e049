// Command dieordare plays Die or Dare games in the terminal: two humans,
// one human against a computer, or two computers battling for the stats.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/config"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/replay"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/session"
)

func main() {
	humans := flag.Int("humans", 1, "number of human players (0, 1, or 2)")
	var quiet bool
	flag.BoolVar(&quiet, "quiet", false, "suppress command-line output")
	flag.BoolVar(&quiet, "q", false, "suppress command-line output (shorthand)")
	var repeat int
	flag.IntVar(&repeat, "repeat", 1, "number of games to play")
	flag.IntVar(&repeat, "r", 1, "number of games to play (shorthand)")
	saveAll := flag.Bool("save-all", false, "save all command-line output to a JSON file")
	saveResultOnly := flag.Bool("save-result-only", false, "save only the result to a JSON file")
	exportDir := flag.String("export-dir", "json", "directory for exported JSON replays")
	configPath := flag.String("config", "", "path to a YAML config file")
	dbPath := flag.String("db", "", "path to a SQLite replay store (optional)")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if err := run(*humans, quiet, repeat, *saveAll, *saveResultOnly,
		*exportDir, *configPath, *dbPath, *seed, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "dieordare:", err)
		os.Exit(1)
	}
}

func run(humans int, quiet bool, repeat int, saveAll, saveResultOnly bool,
	exportDir, configPath, dbPath string, seed uint64, verbose bool) error {
	// A local .env may carry DOD_* overrides; absence is fine.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else if quiet {
		log.SetLevel(logrus.WarnLevel)
	}

	if saveAll && saveResultOnly {
		return fmt.Errorf("--save-all and --save-result-only are mutually exclusive")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	var store *replay.Store
	if dbPath != "" {
		store, err = replay.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := session.Options{
		Humans:         humans,
		Quiet:          quiet,
		SaveAll:        saveAll,
		SaveResultOnly: saveResultOnly,
		ExportDir:      exportDir,
	}
	for i := 0; i < repeat; i++ {
		runner := session.New(cfg, opts, logrus.NewEntry(log), rng)
		runner.Store = store
		if !quiet {
			if repeat > 1 {
				fmt.Printf("Game #%d\n", i+1)
			}
			runner.Renderer.Banner()
		}
		if err := runner.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}
