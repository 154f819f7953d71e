package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"xactscope/internal/catalog"
	"xactscope/internal/config"
	"xactscope/internal/scope"
	"xactscope/internal/server"
	"xactscope/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	setupLogging(cfg)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		addr := fs.String("addr", cfg.HTTPAddr, "listen address")
		_ = fs.Parse(os.Args[2:])

		svc := loadService(ctx, cfg, db)
		var rec server.Recorder
		if cfg.LookupLog {
			rec = db
		}
		must(server.New(svc, rec).ListenAndServe(ctx, *addr))
	case "catalog:sync":
		src, err := catalog.NewSource(ctx, cfg, db)
		must(err)
		count, err := catalog.NewSyncService(db, src).Sync(ctx)
		must(err)
		fmt.Printf("catalog sync complete source=%s rows=%d\n", src.Name(), count)
	case "catalog:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", filepath.Join(cfg.OutputDir, "catalog.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		src, err := catalog.NewSource(ctx, cfg, db)
		must(err)
		c, err := catalog.Load(ctx, src)
		must(err)
		must(catalog.Export(c.Items(), cfg.SheetTab, *out))
		fmt.Printf("exported %d items to %s\n", c.Len(), *out)
	case "lookup":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "free-text line item")
		quantity := fs.String("quantity", "", "quantity (default 1)")
		action := fs.String("action", "", "action (default +)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		svc := loadService(ctx, cfg, db)
		res := svc.Lookup(scope.Request{Input: *input, Quantity: *quantity, Action: *action})
		blob, err := json.MarshalIndent(res, "", "  ")
		must(err)
		fmt.Println(string(blob))
	case "lookups:recent":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "number of entries")
		_ = fs.Parse(os.Args[2:])
		entries, err := db.ListRecentLookups(*limit)
		must(err)
		for _, e := range entries {
			fmt.Printf("%s %-8s matches=%d related=%d qty=%s action=%s input=%q\n", e.CreatedAt, e.Status, e.Matches, e.Related, e.Quantity, e.Action, e.Input)
		}
	default:
		usage()
		os.Exit(1)
	}
}

// loadService reads the catalog once; any failure here is fatal.
func loadService(ctx context.Context, cfg config.Config, db *storage.DB) *scope.Service {
	src, err := catalog.NewSource(ctx, cfg, db)
	must(err)
	c, err := catalog.Load(ctx, src)
	must(err)
	if c.Len() == 0 {
		log.WithField("source", src.Name()).Warn("catalog loaded with no usable rows")
	}
	log.WithFields(log.Fields{"source": src.Name(), "items": c.Len()}).Info("catalog loaded")
	return scope.NewService(c, cfg.ResultLimit)
}

func setupLogging(cfg config.Config) {
	if strings.EqualFold(cfg.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func usage() {
	fmt.Println("usage: xactscope <command>")
	fmt.Println("commands:")
	fmt.Println("  serve [--addr=:8080]")
	fmt.Println("  catalog:sync")
	fmt.Println("  catalog:export [--out=./out/catalog.xlsx]")
	fmt.Println("  lookup --input=... [--quantity=1] [--action=+]")
	fmt.Println("  lookups:recent [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
