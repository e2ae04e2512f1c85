package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(eng *gin.Engine, method string, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	eng.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	eng := gin.New()
	eng.Use(Auth("secret"))
	eng.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	assert.Equal(t, http.StatusUnauthorized, serve(eng, "GET", "/", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(eng, "GET", "/", map[string]string{"X-Api-Key": "wrong"}).Code)
	assert.Equal(t, http.StatusOK, serve(eng, "GET", "/", map[string]string{"X-Api-Key": "secret"}).Code)

	open := gin.New()
	open.Use(Auth(""))
	open.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	assert.Equal(t, http.StatusOK, serve(open, "GET", "/", nil).Code)
}

func TestCors(t *testing.T) {
	eng := gin.New()
	eng.Use(Cors())
	eng.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := serve(eng, "OPTIONS", "/", map[string]string{
		"Origin":                         "http://localhost:3000",
		"Access-Control-Request-Headers": "content-type",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "content-type", w.Header().Get("Access-Control-Allow-Headers"))

	w = serve(eng, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMaxRequest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	eng := gin.New()
	eng.Use(MaxRequest(1))
	eng.GET("/", func(c *gin.Context) {
		if c.Query("block") != "" {
			close(entered)
			<-release
		}
		c.String(http.StatusOK, "ok")
	})

	wg := sync.WaitGroup{}
	wg.Add(1)
	var first *httptest.ResponseRecorder
	go func() {
		defer wg.Done()
		first = serve(eng, "GET", "/?block=1", nil)
	}()
	<-entered

	rejected := serve(eng, "GET", "/", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rejected.Code)
	assert.Contains(t, rejected.Body.String(), "Too many requests")

	close(release)
	wg.Wait()
	require.NotNil(t, first)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, serve(eng, "GET", "/", nil).Code)
}

func TestMaxWorker(t *testing.T) {
	eng := gin.New()
	eng.Use(MaxWorker(2))
	eng.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(eng, "GET", "/", nil).Code)
	}
}
