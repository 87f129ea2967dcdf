// Command kiosk-menu prints the restaurant menu as the kiosk would show it,
// seeding the backend first when its menu is empty.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/bluebite-kiosk/internal/backend"
	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
	"github.com/xenking/bluebite-kiosk/pkg/money"
)

func main() {
	var (
		backendURL string
		category   string
		timeout    time.Duration
	)

	flag.StringVar(&backendURL, "backend-url", "", "restaurant backend base URL (or KIOSK_BACKEND_URL, VITE_BACKEND_URL, BACKEND_URL env)")
	flag.StringVar(&category, "category", menu.AllCategories, "only print items of this category")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "backend request timeout")
	flag.Parse()

	for _, key := range []string{"KIOSK_BACKEND_URL", "VITE_BACKEND_URL", "BACKEND_URL"} {
		if backendURL != "" {
			break
		}
		backendURL = os.Getenv(key)
	}
	if backendURL == "" {
		backendURL = "http://localhost:8000"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Stdout, backendURL, category, timeout); err != nil {
		slog.Error("menu failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, backendURL, category string, timeout time.Duration) error {
	client, err := backend.New(backendURL, backend.WithTimeout(timeout))
	if err != nil {
		return errors.Wrap(err, "create backend client")
	}

	slog.Info("loading menu", slog.String("backend", client.BaseURL()))
	items, err := menu.LoadOrSeed(ctx, client)
	if err != nil {
		return err
	}
	if !menu.HasCategory(items, category) {
		return errors.Errorf("unknown category %q, have %v", category, menu.Tabs(items))
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, it := range menu.Filter(items, category) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID(), it.Name, it.Category, money.FormatUSD(it.Price))
	}
	return tw.Flush()
}
