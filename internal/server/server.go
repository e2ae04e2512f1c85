package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slidelens/slidelens/internal/controller"
	"github.com/slidelens/slidelens/internal/janitor"
	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/utils/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const DEFAULT_CONFIG_PATH = "conf/config.yaml"

// InitConfig loads the configuration and points the logger at its file.
func InitConfig(path string) {
	err := static.InitConfig(path)
	if err != nil {
		log.Panic("failed to init config: %v", err)
	}

	config := static.GetSlideLensGlobalConfigurations()
	stdout := true
	if config.Log.Stdout != nil {
		stdout = *config.Log.Stdout
	}
	log.Init(log.Options{
		Path:       config.Log.Path,
		Level:      config.Log.Level,
		MaxSizeMB:  config.Log.MaxSizeMB,
		MaxBackups: config.Log.MaxBackups,
		MaxAgeDays: config.Log.MaxAgeDays,
		Stdout:     stdout,
	})
	log.Info("config init success")
}

func initServer(svc *service.Service) *http.Server {
	config := static.GetSlideLensGlobalConfigurations()
	if !config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(otelgin.Middleware("slidelens"))

	controller.Setup(r, svc)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.App.Host, config.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func initJanitor() *janitor.Janitor {
	config := static.GetSlideLensGlobalConfigurations()
	j, err := janitor.New(
		config.TempDir, config.Janitor.Schedule,
		time.Duration(config.Janitor.MaxAge)*time.Second,
	)
	if err != nil {
		log.Error("failed to init janitor: %v", err)
		return nil
	}
	j.Start()
	return j
}

// Run serves the api until SIGINT or SIGTERM.
func Run(config_path string) {
	InitConfig(config_path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown_tracing, err := initTracing(ctx)
	if err != nil {
		log.Error("failed to init tracing: %v", err)
	}

	if err := service.CheckDependencies(static.GetSlideLensGlobalConfigurations()); err != nil {
		log.Warn("dependency check: %v", err)
	}

	svc, err := service.New(ctx, static.GetSlideLensGlobalConfigurations())
	if err != nil {
		log.Panic("failed to init service: %v", err)
	}

	j := initJanitor()
	srv := initServer(svc)

	go func() {
		log.Info("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdown_ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown_ctx); err != nil {
		log.Error("server shutdown: %v", err)
	}
	if j != nil {
		j.Stop()
	}
	if err := svc.Close(); err != nil {
		log.Error("close service: %v", err)
	}
	if shutdown_tracing != nil {
		if err := shutdown_tracing(shutdown_ctx); err != nil {
			log.Error("tracing shutdown: %v", err)
		}
	}
}
