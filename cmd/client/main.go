package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yourusername/shithead-client/internal/client/connection"
	"github.com/yourusername/shithead-client/internal/client/lobbies"
	"github.com/yourusername/shithead-client/internal/client/session"
	"github.com/yourusername/shithead-client/internal/client/ui"
)

func main() {
	// .env provides defaults; flags win
	_ = godotenv.Load()

	serverURL := flag.String("server", envOr("SHITHEAD_SERVER_URL", "ws://localhost:7522"), "WebSocket server URL")
	playerName := flag.String("name", os.Getenv("SHITHEAD_USERNAME"), "Preferred display name (server assigns one if empty)")
	pollInterval := flag.Duration("poll", lobbies.DefaultPollInterval, "Lobby list refresh interval")
	logFile := flag.String("log", "shithead-client.log", "Log file path (the TUI owns the terminal)")
	flag.Parse()

	logger, err := buildLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	state := session.NewState()
	connMgr := connection.NewManager(*serverURL, connection.DialWebsocket, logger.Named("connection"))
	sess := session.New(connMgr, state, logger.Named("session"))
	sess.Attach()

	if *playerName != "" {
		// dropped now (not connected yet), but remembered and applied
		// after the handshake
		sess.SetUsername(*playerName)
	}

	poller := lobbies.NewPoller(connMgr, logger.Named("lobbies"))

	connMgr.Connect() // failures feed the reconnect loop
	defer connMgr.Close()

	p := tea.NewProgram(ui.NewModel(connMgr, sess, poller, *pollInterval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func buildLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
