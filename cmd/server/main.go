package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"chess-rules/game"
	"chess-rules/server"
)

func main() {
	log.SetFlags(0)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	envFile := flag.String("env", ".env", "Optional dotenv file with CHESS_* settings")
	addr := flag.String("addr", "", "Listen address (overrides CHESS_ADDR)")
	quiet := flag.Bool("quiet", false, "Disable the access log")
	flag.Parse()

	env, err := GetEnv(*envFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		env.Addr = *addr
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(env.LogLevel)); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := []server.Option{
		server.WithLogger(logger.With("package", "server")),
		server.WithAllowedOrigins(env.AllowedOrigins...),
	}
	if *quiet {
		opts = append(opts, server.WithAccessLog(nil))
	}
	srv := server.New(game.NewRegistry(), opts...)

	httpServer := &http.Server{
		Handler:     srv.Handler(),
		ReadTimeout: time.Second * 10,
		Addr:        env.Addr,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on http://%v", env.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		log.Printf("failed to serve: %v", err)
	case sig := <-sigs:
		log.Printf("terminating: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
