package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/apiresponse/api/transport"
	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	started time.Time
}

func NewHealthHandler(b *builder.Builder, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(b, adapter, logger),
		started:     time.Now(),
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondMake(ctx, stdCtx, builder.Params{
		Success:    true,
		Subject:    builder.ByCode(domain.CodeOK),
		HTTPStatus: http.StatusOK,
		Data: transport.HealthView{
			Status:     "ok",
			Registered: h.builder.Registry().Len(),
			Uptime:     time.Since(h.started).Round(time.Second).String(),
		},
	})
}
