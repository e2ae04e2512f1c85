package integrationtests_test

import (
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/utils/log"
)

func init() {
	err := static.InitConfig("")
	if err != nil {
		log.Panic("failed to init config: %v", err)
	}
	log.SetShowLog(false)
}
