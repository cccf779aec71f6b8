package main

import (
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/charmbracelet/vscroll/internal/cmd"
)

const defaultProfileAddr = "localhost:6060"

func main() {
	if addr := profileAddr(os.Getenv("VSCROLL_PROFILE")); addr != "" {
		go serveProfile(addr)
	}
	cmd.Execute()
}

// profileAddr maps VSCROLL_PROFILE to the address pprof listens on: any
// host:port is used as is, other non-empty values select the default.
func profileAddr(v string) string {
	switch {
	case v == "" || v == "0" || strings.EqualFold(v, "false"):
		return ""
	case strings.Contains(v, ":"):
		return v
	}
	return defaultProfileAddr
}

func serveProfile(addr string) {
	slog.Info("Serving pprof", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("Failed to serve pprof", "addr", addr, "error", err)
	}
}
