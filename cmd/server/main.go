// Command variantgo-server starts the board game server: REST API,
// WebSocket view broadcasts, and an MCP stdio or HTTP endpoint so an
// agent can sit in a seat.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	gomcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/variantgo/server/api"
	"github.com/variantgo/server/game/config"
	"github.com/variantgo/server/game/room"
	"github.com/variantgo/server/transport/mcpserver"
	"github.com/variantgo/server/transport/ws"
)

const appName = "variantgo-server"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: error loading .env file: %v", err)
	}

	cmd := &cli.Command{
		Name:  appName,
		Usage: "run the board game room server",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port"},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
			&cli.StringFlag{Name: "config-dir", Value: defaultConfigDir(), Usage: "directory containing room templates"},
			&cli.StringFlag{Name: "rooms-dir", Value: "rooms", Usage: "directory for persisted room state"},
			&cli.BoolFlag{Name: "ngrok", Value: false, Usage: "expose the server through an ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain"},
		},
		Commands: []*cli.Command{
			{
				Name:  "stdio-mcp",
				Usage: "run an MCP server over stdio instead of HTTP",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					rooms, templates, err := initializeManagers(cmd)
					if err != nil {
						return err
					}
					srv := mcpserver.NewServer(rooms, templates)
					log.Println("MCP stdio server ready")
					return gomcpserver.ServeStdio(srv.MCPServer())
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runHTTPServer(ctx, cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultConfigDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "configs"
}

func initializeManagers(cmd *cli.Command) (*room.Manager, *config.Manager, error) {
	templates, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	persistence, err := room.NewFilePersistence(cmd.String("rooms-dir"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create room persistence: %w", err)
	}

	rooms := room.NewManagerWithPersistence(persistence)
	if err := rooms.LoadPersistedSessions(); err != nil {
		log.Printf("warning: failed to load persisted rooms: %v", err)
	}

	go roomCleanupRoutine(rooms)

	return rooms, templates, nil
}

func roomCleanupRoutine(rooms *room.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if removed := rooms.CleanupExpiredSessions(24 * time.Hour); removed > 0 {
			log.Printf("cleaned up %d expired rooms", removed)
		}
	}
}

func runHTTPServer(ctx context.Context, cmd *cli.Command) error {
	rooms, templates, err := initializeManagers(cmd)
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()

	apiServer := api.NewServer(rooms, templates, hub)
	mcpSrv := mcpserver.NewServer(rooms, templates)

	mux := http.NewServeMux()
	mux.Handle("/", apiServer)
	mux.HandleFunc("/mcp", mcpHTTPHandler(mcpSrv))

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?room=<room_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if ngrokEnabled(cmd) {
		wg.Add(1)
		go runNgrokTunnel(runCtx, cmd, mux, &wg)
	}

	sig := <-stop
	log.Printf("received signal: %v, shutting down", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("server stopped")
	return nil
}

// mcpHTTPHandler exposes an MCP server over a single HTTP POST endpoint,
// for agents that speak MCP over HTTP rather than stdio.
func mcpHTTPHandler(srv *mcpserver.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := srv.MCPServer().HandleMessage(r.Context(), body)

		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "failed to marshal response", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

func ngrokEnabled(cmd *cli.Command) bool {
	if cmd.Bool("ngrok") {
		return true
	}
	enabled := os.Getenv("NGROK_ENABLED")
	return enabled == "true" || enabled == "1"
}

func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler, wg *sync.WaitGroup) {
	defer wg.Done()

	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		log.Println("warning: ngrok enabled but no auth token provided")
		return
	}

	domain := cmd.String("ngrok-domain")
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("failed to start ngrok tunnel: %v", err)
		return
	}
	defer tun.Close()

	log.Printf("ngrok tunnel established: %s", tun.URL())

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("ngrok server error: %v", err)
	}
}
