package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/slidelens/slidelens/internal/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing(t *testing.T) {
	config := types.SlideLensGlobalConfigurations{}
	static.SetSlideLensGlobalConfigurations(config)
	shutdown, err := initTracing(context.Background())
	require.NoError(t, err)
	assert.Nil(t, shutdown)

	config.Tracing.Exporter = TRACING_EXPORTER_STDOUT
	static.SetSlideLensGlobalConfigurations(config)
	shutdown, err = initTracing(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	config.Tracing.Exporter = "zipkin"
	static.SetSlideLensGlobalConfigurations(config)
	_, err = initTracing(context.Background())
	assert.Error(t, err)
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "app:\n  port: 9100\nlog:\n  path: " + filepath.Join(dir, "slidelens.log") + "\n  stdout: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	InitConfig(path)
	t.Cleanup(func() { log.Init(log.Options{Stdout: true}) })
	assert.Equal(t, 9100, static.GetSlideLensGlobalConfigurations().App.Port)
	assert.FileExists(t, filepath.Join(dir, "slidelens.log"))
}
