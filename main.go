package main

import (
	"fmt"
	"os"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/app"
)

func main() {
	application, err := app.NewApp(config.CONFIG_PATH, config.ENV_PATH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
