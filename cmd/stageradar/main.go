// Command stageradar scores leads and analyzes artists from JSON on
// stdin, writing JSON results to stdout. Logs go to stderr so output
// stays pipeable.
//
//	stageradar score   < leads.json    > scored.json
//	stageradar analyze < metrics.json  > report.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stageradar/stageradar"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run0())
}

func run0() int {
	level := slog.LevelInfo
	if os.Getenv("STAGERADAR_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, os.Args[1:]); err != nil {
		slog.Error("fatal error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: stageradar <score|analyze> [flags]")
	}
	cmd, args := args[0], args[1:]

	eng, err := stageradar.New(stageradar.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("stageradar starting", "version", version, "command", cmd)

	switch cmd {
	case "score":
		return runScore(ctx, eng, args)
	case "analyze":
		return runAnalyze(ctx, eng, args)
	default:
		return fmt.Errorf("unknown command %q (want score or analyze)", cmd)
	}
}

// runScore reads a JSON array of candidate leads from stdin and writes
// the scored list, best first, filtered to the minimum grade.
func runScore(ctx context.Context, eng *stageradar.Engine, args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	minGrade := fs.String("min-grade", "F", "lowest grade to keep (A+, A, B+, B, C, D, F)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var leads []stageradar.Candidate
	if err := decodeStdin(&leads); err != nil {
		return fmt.Errorf("read leads: %w", err)
	}

	scored, err := eng.ScoreAll(ctx, leads)
	if err != nil {
		return err
	}
	kept := scored[:0]
	for _, sl := range scored {
		if sl.Result.Grade.AtLeast(stageradar.Grade(*minGrade)) {
			kept = append(kept, sl)
		}
	}
	return encodeStdout(kept)
}

// runAnalyze reads one artist metrics object from stdin and writes the
// full intelligence report.
func runAnalyze(ctx context.Context, eng *stageradar.Engine, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	force := fs.Bool("force", false, "bypass the report cache")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var metrics stageradar.ArtistMetrics
	if err := decodeStdin(&metrics); err != nil {
		return fmt.Errorf("read metrics: %w", err)
	}

	report, err := eng.AnalyzeArtist(ctx, metrics, *force)
	if err != nil {
		return err
	}
	return encodeStdout(report)
}

func decodeStdin(v any) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func encodeStdout(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
