package main

import "github.com/slidelens/slidelens/internal/server"

func main() {
	server.Run(server.DEFAULT_CONFIG_PATH)
}
