package main

import "rentals/cli"

// @title Rentals API
// @version 1.0
// @description Apartment rental marketplace: public search and booking, admin management.
// @BasePath /api/v1
func main() {
	cli.Execute()
}
