package main

import "github.com/CGECHAGA/week-8-assignment/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustListenAndServeHTTP()
}
