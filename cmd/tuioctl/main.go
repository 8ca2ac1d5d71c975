package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/tuioctl/internal/admin"
	"github.com/danmuck/tuioctl/internal/config"
	"github.com/danmuck/tuioctl/internal/logging"
	"github.com/danmuck/tuioctl/internal/stream"
	"github.com/danmuck/tuioctl/internal/transport"
	"github.com/danmuck/tuioctl/internal/tuio"
	"github.com/rs/zerolog/log"
)

func main() {
	var fl flags
	flag.StringVar(&fl.configPath, "config", "", "path to tuioctl TOML config (defaults when empty)")
	flag.IntVar(&fl.port, "port", 0, "override the UDP port")
	flag.BoolVar(&fl.filter, "filter", false, "drop cursor messages once blobs are seen")
	flag.StringVar(&fl.adminAddr, "admin", "", "override the admin HTTP listen address")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) { fl.set(f.Name) })

	logging.ConfigureRuntime()
	cfg, err := loadConfig(fl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tuioctl: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tuioctl: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := transport.ListenRetry(ctx, cfg.ListenAddr(), cfg.BindRetry())
	if err != nil {
		return err
	}
	client := tuio.NewClientWithListener(cfg.ClientOptions(), ln)
	defer client.Close()
	client.AddListener(eventLogger{})

	adminErr := make(chan error, 1)
	adminDone := make(chan struct{})
	if cfg.AdminEnabled() {
		hub := stream.NewHub(cfg.StreamBuffer)
		client.AddListener(hub)
		srv := admin.New("tuioctl", cfg.AdminAddr, cfg.CorsOrigins, client, hub)
		go func() {
			defer close(adminDone)
			if err := srv.Serve(ctx); err != nil {
				adminErr <- fmt.Errorf("admin server: %w", err)
				stop()
			}
		}()
	} else {
		close(adminDone)
	}

	log.Info().
		Int("port", cfg.Port).
		Bool("profile_filtering", cfg.ProfileFiltering).
		Str("admin", cfg.AdminAddr).
		Msg("tuioctl ready")

	if err := client.Run(ctx); err != nil {
		return err
	}
	stop()
	<-adminDone
	select {
	case err := <-adminErr:
		return err
	default:
		log.Info().Msg("tuioctl stopped")
		return nil
	}
}
