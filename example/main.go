package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theflywheel/uhash"
)

type Options struct {
	Count    int    `short:"n" long:"count" default:"10" description:"number of random keys to insert"`
	Config   string `short:"c" long:"config" description:"TOML file with table settings"`
	Seed     uint64 `short:"s" long:"seed" description:"seed for the keys and the hash parameters, 0 draws a random one"`
	Quiet    bool   `short:"q" long:"quiet" description:"print counts only, without table dumps"`
	LogLevel string `short:"l" long:"loglevel" default:"info" description:"set the logging level [debug, info, warn, error]"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	tableOpts := []uhash.Option{uhash.WithLogger(logger)}
	if opts.Config != "" {
		cfg, err := uhash.LoadConfig(opts.Config)
		if err != nil {
			logger.Fatal("failed to load config", zap.Error(err))
		}
		tableOpts = append(tableOpts, cfg.Options()...)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	tableOpts = append(tableOpts, uhash.WithSeed(seed, ^seed))

	h, err := uhash.NewInteger[int32, int](tableOpts...)
	if err != nil {
		logger.Fatal("failed to create table", zap.Error(err))
	}
	logger.Info("table created", zap.Uint64("seed", seed), zap.Stringer("table", h))

	rng := rand.New(rand.NewPCG(seed, seed))
	keys := make([]int32, 0, opts.Count)
	for len(keys) < opts.Count {
		key := int32(rng.Int64N(math.MaxUint32+1) + math.MinInt32)
		if h.Contains(key) {
			continue
		}
		keys = append(keys, key)

		fmt.Printf("\nInserting the element with value: %d\n", len(keys)-1)
		if err := h.Set(key, len(keys)-1); err != nil {
			logger.Fatal("insert failed", zap.Int32("key", key), zap.Error(err))
		}
		report(h, opts.Quiet, logger)
	}

	for i, key := range keys {
		fmt.Printf("\nChanging the element with key %d to value: %d\n", key, 100+i)
		if err := h.Set(key, 100+i); err != nil {
			logger.Fatal("update failed", zap.Int32("key", key), zap.Error(err))
		}
		report(h, opts.Quiet, logger)
	}

	for _, key := range keys {
		val, err := h.Remove(key)
		if err != nil {
			logger.Fatal("remove failed", zap.Int32("key", key), zap.Error(err))
		}
		fmt.Printf("\nRemoved element with value: %d\n", val)
		fmt.Printf("Elements left in the table: %d\n", h.Len())
		fmt.Printf("Size of the table: %d\n", h.Size())
		if !opts.Quiet {
			dump(os.Stdout, h, logger)
		}
	}

	s := h.Stats()
	logger.Info("example completed",
		zap.Int("grows", s.Grows),
		zap.Int("shrinks", s.Shrinks),
		zap.Int("rehashed", s.Rehashed))
}

func report(h *uhash.Table[int32, int], quiet bool, logger *zap.Logger) {
	fmt.Printf("Elements in the table: %d\n", h.Len())
	if !quiet {
		dump(os.Stdout, h, logger)
	}
}

// dump writes the table to w and logs a failed write.
func dump(w io.Writer, h *uhash.Table[int32, int], logger *zap.Logger) bool {
	if err := h.Dump(w); err != nil {
		logger.Error("failed to dump table", zap.Int("len", h.Len()), zap.Error(err))
		return false
	}
	return true
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
