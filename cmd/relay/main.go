package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/JackWithOneEye/weatherglass/internal/config"
	"github.com/JackWithOneEye/weatherglass/internal/database"
	"github.com/JackWithOneEye/weatherglass/internal/relay"
	"github.com/JackWithOneEye/weatherglass/internal/serialport"
	"github.com/JackWithOneEye/weatherglass/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.NewConfig()
	dbs, err := database.NewDatabaseService(cfg)
	if err != nil {
		log.Fatalf("could not open database: %s", err)
	}
	defer dbs.Close()

	port, err := serialport.Open(cfg)
	if err != nil {
		log.Fatalf("%s", err)
	}
	log.Printf("reading from %s at %d baud", cfg.SerialPort(), cfg.BaudRate())

	for _, f := range server.CheckAssets(ctx, os.DirFS(cfg.AssetDir())) {
		log.Printf("asset %s will not load: %s", f.Path, f.Err)
	}

	hub := relay.NewHub()
	r := relay.NewRelay(hub, dbs)
	go r.Run(ctx)

	readErr := make(chan error, 1)
	go func() {
		readErr <- serialport.ReadLines(ctx, port, func(line string) {
			if err := r.Submit(ctx, relay.LineReceived{Text: line, At: time.Now()}); err != nil {
				log.Printf("dropped line %q: %s", line, err)
			}
		})
	}()

	s := server.NewServer(ctx, cfg, dbs, hub, r)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case err := <-errChan:
		log.Printf("could not serve: %v", err)
	case err := <-readErr:
		log.Printf("serial port closed: %v", err)
	case sig := <-sigChan:
		log.Printf("terminating: %v", sig)
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel2()

	s.Shutdown(ctx2)
	cancel()
	if err := port.Close(); err != nil {
		log.Printf("could not close serial port: %s", err)
	}
}
