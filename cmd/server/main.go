package main

import (
	"os"

	"intake-assistant/backend/internal/app"
)

// @title           Intake Assistant API
// @version         1.0
// @description     Chat, provider lookup and booking endpoints behind the intake widget.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
