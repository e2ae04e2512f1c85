package main

import (
	"os"

	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/utils/log"
)

// checks the external tools of the image before the server is started
func main() {
	config_path := "conf/config.yaml"
	if len(os.Args) > 1 {
		config_path = os.Args[1]
	}

	err := static.InitConfig(config_path)
	if err != nil {
		log.Panic("failed to init config: %v", err)
	}

	err = service.CheckDependencies(static.GetSlideLensGlobalConfigurations())
	if err != nil {
		log.Panic("dependency check failed: %v", err)
	}

	log.Info("poppler dependencies checked successfully")
}
