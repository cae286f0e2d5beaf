package main

import (
	"log/slog"
	"os"

	"github.com/danielhkuo/coastcamdb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		slog.Error("coastcamdb failed", "error", err)
		os.Exit(1)
	}
}
