// Command catalogd serves a plant catalog over the plants API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"herbalsearch/internal/catalog"
	"herbalsearch/internal/domain"
)

func main() {
	addr := flag.String("addr", ":5000", "Listen address")
	data := flag.String("data", "", "Catalog file (.json or .xlsx); the built-in sample when empty")
	rps := flag.Float64("rate", 0, "Requests per second across all clients; 0 disables limiting")
	burst := flag.Int("burst", 10, "Requests allowed above the rate in a burst")
	flag.Parse()

	if err := run(*addr, *data, catalog.WithRateLimit(*rps, *burst)); err != nil {
		log.Printf("catalogd: %v", err)
		os.Exit(1)
	}
}

func run(addr, data string, opts ...catalog.ServerOption) error {
	plants, err := loadPlants(data)
	if err != nil {
		return err
	}
	cat, err := catalog.New(plants)
	if err != nil {
		return fmt.Errorf("failed to index catalog: %w", err)
	}
	defer cat.Close()
	log.Printf("loaded %d plants", cat.Len())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           catalog.NewServer(cat, opts...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func loadPlants(path string) ([]domain.Plant, error) {
	if path == "" {
		return catalog.Sample()
	}
	plants, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(plants) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	return plants, nil
}
