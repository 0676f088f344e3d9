package handler

import (
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/apiresponse/api/transport"
	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/pkg/httpcontext"
)

type CodeHandler struct {
	baseHandler
}

func NewCodeHandler(b *builder.Builder, adapter *httpcontext.Adapter, logger *zap.Logger) *CodeHandler {
	return &CodeHandler{baseHandler: newBaseHandler(b, adapter, logger)}
}

// @Summary List registered API codes
// @Tags codes
// @Router /api/v1/codes [get]
func (h *CodeHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reg := h.builder.Registry()
	h.respondMake(ctx, stdCtx, builder.Params{
		Success: true,
		Subject: builder.ByCode(domain.CodeOK),
		Data: transport.CatalogView{
			MinUserCode: reg.MinUserCode(),
			MaxCode:     reg.MaxCode(),
			Codes:       reg.Entries(),
		},
	})
}

// @Summary Render the envelope of a single API code
// @Tags codes
// @Router /api/v1/codes/{code} [get]
func (h *CodeHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	raw, _ := ctx.UserValue("code").(string)
	code, err := strconv.Atoi(raw)
	if err != nil {
		h.respondError(ctx, stdCtx, domain.Errorf(domain.ErrCodeInvalidArgumentType, "code %q is not an integer", raw))
		return
	}

	success := true
	if v := ctx.QueryArgs().Peek("success"); len(v) > 0 {
		success, err = strconv.ParseBool(string(v))
		if err != nil {
			h.respondError(ctx, stdCtx, domain.WrapError(domain.ErrCodeInvalid, "success must be a boolean", err))
			return
		}
	}

	h.respondMake(ctx, stdCtx, builder.Params{
		Success: success,
		Subject: builder.ByCode(domain.ApiCode(code)),
	})
}
