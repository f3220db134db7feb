// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	"github.com/ikigain/ForestOS/internal/config"
	"github.com/ikigain/ForestOS/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

// @title ForestOS API
// @version 1.0.0
// @description Plant care backend: catalog, owned plants, sensors, watering and alerts.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey DeviceAuth
// @in header
// @name Authorization
func main() {
	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	// Initialize version info
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting ForestOS API v%s", nuts.GetVersion())

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create and start server
	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen before the logo is drawn.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"    ______                     __  ____  _____",
		"   / ____/___  ________  _____/ /_/ __ \\/ ___/",
		"  / /_  / __ \\/ ___/ _ \\/ ___/ __/ / / /\\__ \\ ",
		" / __/ / /_/ / /  /  __(__  ) /_/ /_/ /___/ / ",
		"/_/    \\____/_/   \\___/____/\\__/\\____//____/  ",
		"..........................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
