package main

import "rapporteur_backend/internal/app"

func main() {
	app.Run()
}
