package server

import (
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/iota-uz/certificates-backend/pkg/application"
)

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewHTTPServer(app application.Application, middlewares []mux.MiddlewareFunc, opts Options) *HTTPServer {
	return &HTTPServer{
		controllers: app.Controllers(),
		middlewares: middlewares,
		opts:        opts,
	}
}

type HTTPServer struct {
	controllers []application.Controller
	middlewares []mux.MiddlewareFunc
	opts        Options
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.middlewares...)
	for _, controller := range s.controllers {
		controller.Register(r)
	}
	return r
}

func (s *HTTPServer) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

func (s *HTTPServer) Start(socketAddress string) error {
	srv := &http.Server{
		Addr:         socketAddress,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}
	return srv.ListenAndServe()
}
