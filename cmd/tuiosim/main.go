package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/tuioctl/internal/logging"
	"github.com/danmuck/tuioctl/internal/transport"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("scenario", "", "TOML scenario file (orbit demo when empty)")
	target := flag.String("target", "", "override the destination host:port")
	cursors := flag.Int("cursors", 3, "demo cursor count")
	steps := flag.Int("steps", 200, "demo frame count")
	flag.Parse()

	logging.ConfigureRuntime()

	sc := demoScenario(*cursors, *steps)
	if *path != "" {
		loaded, err := loadScenario(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tuiosim: %v\n", err)
			os.Exit(1)
		}
		sc = loaded
	}
	if *target != "" {
		sc.target = *target
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := play(ctx, sc, transport.Send); err != nil {
		fmt.Fprintf(os.Stderr, "tuiosim: %v\n", err)
		os.Exit(1)
	}
}

type sendFunc func(ctx context.Context, addr string, payload []byte) error

func play(ctx context.Context, sc scenario, send sendFunc) error {
	log.Info().
		Str("target", sc.target).
		Int("frames", len(sc.frames)).
		Int("loops", sc.loops).
		Dur("interval", sc.interval).
		Msg("tuiosim playing")

	fseq := int32(0)
	for loop := 0; loop < sc.loops; loop++ {
		for _, f := range sc.frames {
			fseq++
			buf, err := sc.packet(f, fseq)
			if err != nil {
				return err
			}
			if err := send(ctx, sc.target, buf); err != nil {
				return err
			}
			if sc.interval <= 0 {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(sc.interval):
			}
		}
	}
	log.Info().Int32("frames_sent", fseq).Msg("tuiosim done")
	return nil
}
