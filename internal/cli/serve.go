package cli

import "github.com/slidelens/slidelens/internal/server"

var serve = server.Run
