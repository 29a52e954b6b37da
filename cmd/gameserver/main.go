// Package main provides the game server binary: the room/round
// orchestration core behind a WebSocket gateway.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/config"
	"github.com/wordrush/wordrush/internal/game/dictionary"
	"github.com/wordrush/wordrush/internal/game/room"
	"github.com/wordrush/wordrush/internal/game/words"
	"github.com/wordrush/wordrush/internal/game/wordsource"
	"github.com/wordrush/wordrush/internal/gateway"
	"github.com/wordrush/wordrush/internal/observability"
	"github.com/wordrush/wordrush/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	rnd := words.NewCryptoSource()

	wordsStart := time.Now()
	source, err := wordsource.NewStatic(
		cfg.Words.DictionaryFile,
		cfg.Words.SourceWordsFile,
		cfg.Words.RiddlesFile,
		rnd,
	)
	if err != nil {
		logger.Fatal("loading word source", zap.Error(err))
	}
	logger.Info("word source loaded",
		zap.Int("dictionary_words", source.DictionarySize()),
		zap.Duration("elapsed", time.Since(wordsStart)),
	)

	checker := dictionary.NewLookupChecker(
		source,
		cfg.Dictionary.LookupURL,
		cfg.Dictionary.LookupTimeout,
		logger,
	)

	registry := room.NewRegistry(rnd, logger)
	engine := room.NewEngine(source, checker, rnd, logger)
	gw := gateway.New(cfg.Server.Addr(), cfg.Server.ShutdownTimeout, registry, engine, logger)

	logger.Info("starting game server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Duration("startup", time.Since(start)),
	)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("gateway", gw)
	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("lifecycle", zap.Error(err))
	}
}
