// Command chess-server hosts chess games: a REST API with long-polling, a
// line-protocol socket host for one shared game, an optional game viewer and
// an optional SQLite archive.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netchess/cmd/chess-server/cli"
	"netchess/internal/board"
	"netchess/internal/client/display"
	"netchess/internal/server/http"
	"netchess/internal/server/processor"
	"netchess/internal/server/service"
	"netchess/internal/server/storage"
	"netchess/internal/server/webserver"
	"netchess/internal/transport/tcp"

	"github.com/chzyer/readline"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Stdout, os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		tcpHost     = flag.String("tcp-host", "localhost", "Socket host address")
		tcpPort     = flag.Int("tcp-port", 9000, "Socket host port (0 disables the socket host)")
		fen         = flag.String("fen", board.StartingFEN, "Starting position of the socket host's game")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, request log, WAL)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
		useConsole  = flag.Bool("console", false, "Interactive console for the socket host's game")

		// Viewer flags
		serve   = flag.Bool("serve", false, "Enable the web game viewer")
		webHost = flag.String("web-host", "localhost", "Viewer host")
		webPort = flag.Int("web-port", 9090, "Viewer port")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}
	if *useConsole && *tcpPort == 0 {
		log.Fatal("Error: -console needs the socket host (-tcp-port must not be 0)")
	}

	if *pidPath != "" {
		cleanup, err := managePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Storage (optional)
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing persistent storage at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("Warning: failed to close storage cleanly: %v", err)
			}
		}()
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Service and processor
	svc := service.New(store)
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go svc.RunCleanupJob(cleanupCtx, service.CleanupJobInterval, service.IdleGameTTL)

	proc := processor.New(svc)

	// 3. REST API
	cfg := http.DefaultConfig(*dev)
	app := http.NewFiberApp(proc, svc, cfg)
	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("Rate Limit: %d requests/second per IP", cfg.RateLimit)
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// 4. Socket host (optional)
	var host *tcp.Host
	if *tcpPort != 0 {
		var err error
		host, err = tcp.NewHost(proc, *fen)
		if err != nil {
			log.Fatalf("Failed to create socket host: %v", err)
		}
		tcpAddr := fmt.Sprintf("%s:%d", *tcpHost, *tcpPort)
		if err := host.Listen(tcpAddr); err != nil {
			log.Fatalf("Socket host listen error: %v", err)
		}
		log.Printf("Socket host listening on: %s (game %s)", host.Addr(), host.GameID())

		go func() {
			if err := host.Serve(); err != nil && !errors.Is(err, tcp.ErrHostClosed) {
				log.Printf("Socket host error: %v", err)
			}
		}()
	}

	// 5. Viewer (optional)
	if *serve {
		webAddr := fmt.Sprintf("%s:%d", *webHost, *webPort)
		apiURL := fmt.Sprintf("http://%s", apiAddr)

		go func() {
			log.Printf("Viewer listening on: http://%s (API %s)", webAddr, apiURL)
			if err := webserver.Start(*webHost, *webPort, apiURL); err != nil {
				log.Printf("Viewer error: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if *useConsole {
		go func() {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          display.Prompt("host"),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				log.Printf("Console unavailable: %v", err)
				return
			}
			defer rl.Close()
			// Log lines must not tear the prompt
			log.SetOutput(rl.Stderr())
			c := &console{host: host, out: rl.Stdout()}
			c.run(rl)
			log.SetOutput(os.Stderr)
		}()
	}

	<-quit
	log.Println("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("api: %w", err))
	}
	if host != nil {
		if err := host.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := proc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("processor: %w", err))
	}

	cleanupCancel()

	if err := svc.Shutdown(gracefulShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("service: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		log.Printf("Shutdown errors: %v", err)
	}
	log.Println("Servers exited")
}
