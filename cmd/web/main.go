package main

import "safetyconnect_backend/internal/app"

func main() {
	app.Run()
}
