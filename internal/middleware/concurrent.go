package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/slidelens/slidelens/internal/metrics"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/slidelens/slidelens/internal/utils/log"
)

func MaxWorker(max int) gin.HandlerFunc {
	log.Info("setting max workers to %d", max)
	sem := make(chan struct{}, max)

	return func(c *gin.Context) {
		select {
		case sem <- struct{}{}:
		case <-c.Request.Context().Done():
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, types.ErrorResponse(-503, "request cancelled while waiting for a worker"))
			return
		}
		metrics.WorkersInUse.Inc()
		defer func() {
			<-sem
			metrics.WorkersInUse.Dec()
		}()
		c.Next()
	}
}

type MaxRequestIface struct {
	current int
	lock    *sync.Mutex
}

func MaxRequest(max int) gin.HandlerFunc {
	log.Info("setting max requests to %d", max)
	m := &MaxRequestIface{
		current: 0,
		lock:    &sync.Mutex{},
	}

	return func(c *gin.Context) {
		m.lock.Lock()
		if m.current >= max {
			m.lock.Unlock()
			metrics.RequestsRejectedTotal.Inc()
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse(-503, "Too many requests"))
			c.Abort()
			return
		}
		m.current++
		metrics.RequestsInFlight.Inc()
		m.lock.Unlock()

		defer func() {
			m.lock.Lock()
			m.current--
			metrics.RequestsInFlight.Dec()
			m.lock.Unlock()
		}()
		c.Next()
	}
}
