package handler

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/apiresponse/api/transport"
	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/pkg/httpcontext"
)

type ResponseHandler struct {
	baseHandler
}

func NewResponseHandler(b *builder.Builder, adapter *httpcontext.Adapter, logger *zap.Logger) *ResponseHandler {
	return &ResponseHandler{baseHandler: newBaseHandler(b, adapter, logger)}
}

// @Summary Build an envelope from a request description
// @Tags responses
// @Router /api/v1/responses [post]
func (h *ResponseHandler) Make(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.MakeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, stdCtx, domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err))
		return
	}

	params, err := req.Params()
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMake(ctx, stdCtx, params)
}

// NotFound answers unknown routes with the reserved not-found envelope.
func (h *ResponseHandler) NotFound(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondMake(ctx, stdCtx, builder.Params{
		Subject:    builder.ByCode(domain.CodeExHTTPNotFound),
		HTTPStatus: fasthttp.StatusNotFound,
	})
}
