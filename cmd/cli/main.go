package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/minaorangina/mancala/board"
	"github.com/minaorangina/mancala/config"
	"github.com/minaorangina/mancala/engine"
	"github.com/minaorangina/mancala/game"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// the terminal is for the players; only warnings get logged
	log := zap.NewNop().Sugar()
	if cfg.DevLogging {
		if log, err = config.NewLogger(true); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer log.Sync()
	}

	in := bufio.NewReader(os.Stdin)
	nameA := askName(in, "Player 1")
	nameB := askName(in, "Player 2")

	opts := game.Opts{StrictOwnership: cfg.StrictOwnership}
	if cfg.StartBoard != "" {
		b, err := board.Parse(cfg.StartBoard, nameA, nameB)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		opts.Pits = b.Pits()
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID: "cli",
		Game:   game.NewMancala(opts),
		Logger: log,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, name := range []string{nameA, nameB} {
		p := engine.NewCLIPlayer(engine.NewID(), name, in, os.Stdout, ge)
		if err := ge.AddPlayer(p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := ge.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "Could not start game:", err)
		os.Exit(1)
	}

	<-ge.Done()

	if ge.PlayState() != engine.Finished {
		fmt.Println("Game abandoned.")
		os.Exit(1)
	}
}

func askName(in *bufio.Reader, fallback string) string {
	fmt.Printf("%s, what's your name? ", fallback)
	line, _ := in.ReadString('\n')
	if name := strings.TrimSpace(line); name != "" {
		return name
	}
	return fallback
}
