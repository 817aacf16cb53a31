package xhttp

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/valyala/fasthttp"
)

type Router = router.Router
type RequestCtx = fasthttp.RequestCtx
type RequestHandler = fasthttp.RequestHandler
type MiddlewareFunc = func(next RequestHandler) RequestHandler

const (
	StatusOK                  = fasthttp.StatusOK
	StatusCreated             = fasthttp.StatusCreated
	StatusBadRequest          = fasthttp.StatusBadRequest
	StatusUnauthorized        = fasthttp.StatusUnauthorized
	StatusForbidden           = fasthttp.StatusForbidden
	StatusNotFound            = fasthttp.StatusNotFound
	StatusInternalServerError = fasthttp.StatusInternalServerError
)

func StatusText(code int) string { return fasthttp.StatusMessage(code) }

type ServerOption struct {
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	MaxRequestBodySize int
	Concurrency        int
}

var DefaultServerOption = ServerOption{
	ReadTimeout:        time.Millisecond * 2500,
	WriteTimeout:       time.Millisecond * 2500,
	IdleTimeout:        time.Second * 10,
	MaxRequestBodySize: 4 * 1024 * 1024,
	Concurrency:        30_000,
}

type Server struct {
	Server      *fasthttp.Server
	Router      *Router
	middlewares []MiddlewareFunc
}

func NewServer(opt ServerOption) *Server {
	return &Server{
		Server: &fasthttp.Server{
			ReadTimeout:        opt.ReadTimeout,
			WriteTimeout:       opt.WriteTimeout,
			IdleTimeout:        opt.IdleTimeout,
			MaxRequestBodySize: opt.MaxRequestBodySize,
			Concurrency:        opt.Concurrency,
		},
		Router: router.New(),
	}
}

// Use appends a middleware. Middlewares wrap the router handler in reverse
// registration order, so the first registered runs outermost.
func (s *Server) Use(m MiddlewareFunc) {
	s.middlewares = append(s.middlewares, m)
}

func (s *Server) ListenAndServe(addr string) error {
	h := s.Router.Handler
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	s.Server.Handler = h

	logger.Info("[xhttp] listening", "addr", addr)
	return s.Server.ListenAndServe(addr)
}

func (s *Server) Shutdown() {
	if err := s.Server.Shutdown(); err != nil {
		logger.Error("[xhttp] shutdown error", "error", err)
	}
}
