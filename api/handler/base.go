package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/pkg/httpcontext"
	appLogger "github.com/fastygo/apiresponse/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	builder *builder.Builder
	logger  *zap.Logger
}

func newBaseHandler(b *builder.Builder, adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, builder: b, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// respond writes a built response using its own status and encoding.
func (h baseHandler) respond(ctx *fasthttp.RequestCtx, resp builder.Response) {
	body, err := resp.Body()
	if err != nil {
		h.logger.Error("failed to encode envelope", zap.Error(err), zap.Int("api_code", int(resp.Envelope.Code)))
		ctx.Error(http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(resp.HTTPStatus)
	ctx.SetBody(body)
}

// respondMake builds p and writes it, falling back to respondError.
func (h baseHandler) respondMake(ctx *fasthttp.RequestCtx, stdCtx context.Context, p builder.Params) {
	resp, err := h.builder.Make(p)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respond(ctx, resp)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	status, code := mapError(err)
	log := appLogger.WithRequestID(stdCtx, h.logger)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Error(err))
	}

	resp, buildErr := h.builder.Make(builder.Params{
		Subject:    builder.ByCode(code),
		Message:    err.Error(),
		HTTPStatus: status,
	})
	if buildErr != nil {
		log.Error("failed to build error envelope", zap.Error(buildErr))
		ctx.Error(http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.respond(ctx, resp)
}

// mapError turns a domain error into an HTTP status and a reserved API code.
// Argument errors come from client input on these endpoints; anything else is
// a server fault.
func mapError(err error) (int, domain.ApiCode) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid),
		domain.IsDomainError(err, domain.ErrCodeInvalidArgumentType),
		domain.IsDomainError(err, domain.ErrCodeCodeOutOfBounds):
		return http.StatusBadRequest, domain.CodeExValidationException
	case domain.IsDomainError(err, domain.ErrCodeUnknownCode),
		domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, domain.CodeExHTTPNotFound
	default:
		return http.StatusInternalServerError, domain.CodeExUncaughtException
	}
}
