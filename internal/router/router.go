package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/apiresponse/api/handler"
)

type Handlers struct {
	Codes     *apiHandler.CodeHandler
	Responses *apiHandler.ResponseHandler
	Health    *apiHandler.HealthHandler
}

// New wires the routes. middleware wraps every handler, outermost first.
func New(handlers Handlers, middleware ...func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	wrap := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		for i := len(middleware) - 1; i >= 0; i-- {
			h = middleware[i](h)
		}
		return h
	}

	r.GET("/health", wrap(handlers.Health.Check))

	r.GET("/api/v1/codes", wrap(handlers.Codes.List))
	r.GET("/api/v1/codes/{code}", wrap(handlers.Codes.Get))
	r.POST("/api/v1/responses", wrap(handlers.Responses.Make))

	r.NotFound = wrap(handlers.Responses.NotFound)

	return r
}
