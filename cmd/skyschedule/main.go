package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/skyschedule/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	addr := flag.String("addr", "", "Sky Q box IP address (prompted for when unset)")
	port := flag.Int("port", 0, "device port (optional, defaults to 9006)")
	limit := flag.Int("limit", 0, "PVR window size (optional, defaults to 50)")
	format := flag.String("format", "", "output format: lines, json, table or speech")
	watchMode := flag.Bool("watch", false, "keep today's schedule on screen")
	pollSeconds := flag.Int("poll", 0, "watch refresh interval in seconds (optional, defaults to 60s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Address:    *addr,
		Port:       *port,
		Limit:      *limit,
		Format:     *format,
		Watch:      *watchMode,
		PollEvery:  *pollSeconds,
		Stdin:      os.Stdin,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "skyschedule: %v\n", err)
		if app.IsUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}
