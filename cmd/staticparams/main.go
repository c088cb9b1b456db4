package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/cms"
	"pacificair.org/pacificair-web/internal/config"
	"pacificair.org/pacificair-web/internal/staticparams"
)

// Lists the site paths worth prerendering, as JSON on stdout. Runs at build
// time, so it exits zero even when the CMS is unreachable: an empty list is
// a valid answer.
func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client := cms.NewClient(cfg.GraphQLURL, log)
	params := staticparams.New(client, log, cfg.Dev).Enumerate(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(params); err != nil {
		log.Error("encode params", zap.Error(err))
		os.Exit(1)
	}
}
