package main

import (
	"log/slog"
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("memprobe failed", "error", err)
		os.Exit(1)
	}
}
