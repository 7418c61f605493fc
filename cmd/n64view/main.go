package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "net/http/pprof" // profiling

	"n64view/internal/n64view/cmd"
	"n64view/internal/n64view/log"
)

// N64VIEW_PROFILE=1 serves pprof on localhost:6060; any other value is
// taken as the listen address.
func profileAddr() string {
	switch v := os.Getenv("N64VIEW_PROFILE"); v {
	case "", "0":
		return ""
	case "1":
		return "localhost:6060"
	default:
		return v
	}
}

func main() {
	defer log.RecoverPanic("main", func() {
		slog.Error("Application terminated due to unhandled panic")
		os.Exit(2)
	})

	if addr := profileAddr(); addr != "" {
		go func() {
			slog.Info("Serving pprof", "addr", addr)
			if httpErr := http.ListenAndServe(addr, nil); httpErr != nil {
				slog.Error("Failed to pprof listen", "error", httpErr)
			}
		}()
	}

	cmd.Execute()
}
