// Command perft checks a move generator against the known perft counts of the
// standard starting position and reports nodes per second at each depth.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chess-perft/engines"
	"chess-perft/verify"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "perft:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	engine   string
	cpuProf  string
	memProf  string
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   "perft",
		Short: "Verify move generation against known perft counts",
		Long: `Perft counts the leaf positions reachable from the standard starting
position at depths 0 through 8, timing each depth and comparing the count with
the known value. A depth that takes longer than 30s ends the run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(stderr, f.logLevel)
			if err != nil {
				return err
			}
			eng, err := engines.ByName(f.engine)
			if err != nil {
				return err
			}
			log.Info().Str("engine", eng.Name()).Msg("starting perft verification")

			stop, err := startCPUProfile(f.cpuProf)
			if err != nil {
				return err
			}
			ms, err := verify.Verify(cmd.OutOrStdout(), log, verify.StandardTable(), eng)
			stop()
			if err != nil {
				return err
			}

			var mismatches int
			for _, m := range ms {
				if !m.Match {
					mismatches++
				}
			}
			log.Info().
				Int("depths", len(ms)).
				Int("mismatches", mismatches).
				Msg("perft verification finished")

			return writeHeapProfile(f.memProf)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.engine, "engine", engines.Default,
		"move generator: "+strings.Join(engines.Names(), ", "))
	pf.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.Flags().StringVar(&f.cpuProf, "cpuprofile", "", "write CPU profile to file during run")
	root.Flags().StringVar(&f.memProf, "memprofile", "", "write heap profile to file after run")

	root.AddCommand(newDivideCmd(&f))
	return root
}

func newDivideCmd(f *rootFlags) *cobra.Command {
	var (
		fen   string
		depth int
	)
	cmd := &cobra.Command{
		Use:   "divide",
		Short: "Print per-move node counts at the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cmd.ErrOrStderr(), f.logLevel)
			if err != nil {
				return err
			}
			eng, err := engines.ByName(f.engine)
			if err != nil {
				return err
			}

			start := time.Now()
			div, err := eng.Divide(fen, depth)
			if err != nil {
				return err
			}
			total, err := engines.WriteDivide(cmd.OutOrStdout(), div)
			if err != nil {
				return err
			}
			log.Debug().
				Str("engine", eng.Name()).
				Int("depth", depth).
				Uint64("nodes", total).
				Dur("elapsed", time.Since(start)).
				Msg("divide finished")
			return nil
		},
	}
	cmd.Flags().StringVar(&fen, "fen", engines.StartFEN, "FEN string (defaults to initial position)")
	cmd.Flags().IntVar(&depth, "depth", 0, "perft depth (required, > 0)")
	_ = cmd.MarkFlagRequired("depth")
	return cmd
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().
		Logger(), nil
}

func startCPUProfile(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating cpuprofile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}, nil
}

func writeHeapProfile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating memprofile: %w", err)
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}
	return nil
}
