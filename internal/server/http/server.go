package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/calderhq/syncline/internal/metrics"
	"github.com/calderhq/syncline/internal/runtime"
	"github.com/calderhq/syncline/internal/server/http/controllers"
	changefeedsvc "github.com/calderhq/syncline/internal/services/changefeed"
	logpkg "github.com/calderhq/syncline/pkg/log"
)

type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

// New builds the HTTP server around the runtime. logger and m may be nil.
func New(rt *runtime.Runtime, logger logpkg.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("http"))
	}
	svc := changefeedsvc.NewWithLogger(rt, logger.With(logpkg.Component("changefeed")), m)

	mux := http.NewServeMux()
	registry := controllers.NewControllerRegistry(rt, svc)
	registry.RegisterAllRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	var limiter *rate.Limiter
	if cfg := rt.Config(); cfg.PollRatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.PollRatePerSec), cfg.PollBurst)
	}

	handler := rateLimit(limiter, mux)
	handler = logging(logger, m, handler)
	handler = requestID(handler)
	handler = cors(handler)

	s := &Server{rt: rt, logger: logger, srv: &http.Server{Handler: handler}}
	return s
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http server listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}
