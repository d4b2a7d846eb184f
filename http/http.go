// Package http hosts the optional admin endpoint of a refinement run: health
// and version handlers, Prometheus metrics, pprof and a websocket stream of
// refinement progress.
package http

import (
	"context"
	"net/http"
	"net/http/pprof"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func ListenAndServe(ctx context.Context, servers ...*http.Server) {
	go func() {
		<-ctx.Done()

		for _, s := range servers {
			if err := s.Shutdown(context.Background()); err != nil {
				logs.Warn(errors.Newf("shutting down the server failed").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}
	}()

	var wg sync.WaitGroup

	for _, s := range servers {
		wg.Add(1)

		go func(s *http.Server) {
			defer wg.Done()

			logs.WithTag("addr", s.Addr).Info("starting server")

			switch err := s.ListenAndServe(); err {
			case nil, http.ErrServerClosed, context.Canceled:
				logs.WithTag("addr", s.Addr).Info("stopping server")

			default:
				logs.Warn(errors.Newf("server stopped").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}(s)
	}

	wg.Wait()
}

// NewAdminMux returns the handler served on the admin address. ready reports
// whether the refinement has started; progress streams insertions to
// connected websocket clients.
func NewAdminMux(version string, ready func() bool, progress *ProgressBroadcaster) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HandleHealthCheck)
	mux.HandleFunc("/ready", HandleReadyCheck(ready))
	mux.HandleFunc("/version", HandleVersion(version))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/progress", progress.Handler())

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}
