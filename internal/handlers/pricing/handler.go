package pricing

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"courtside/infras/otel"
	"courtside/internal/domains/pricing/service"
	"courtside/shared/constant"
	"courtside/shared/failure"
	"courtside/shared/validator"
	"courtside/transport/http/response"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Get("/quote", handler.GetQuote)
		routerGroup.Get("/catalog", handler.GetCatalog)
	})
}

// GetQuote prices a prospective selection without touching any draft. The
// time parameter repeats once per slot; courts is the court count.
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	query := r.URL.Query()

	date := query.Get(constant.RequestParamDate)
	if err := validator.ValidateVar(date, "required,datetime=2006-01-02"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("invalid quote date")

		response.WithError(w, r, err)

		return
	}

	courtCount := 1
	if raw := query.Get(constant.RequestParamCourt); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			fail := failure.BadRequestFromString(fmt.Sprintf("invalid court count %q", raw))
			scope.TraceError(fail)
			log.Error().Str("courts", raw).Msg("invalid quote court count")

			response.WithError(w, r, fail)

			return
		}

		courtCount = parsed
	}

	response.WithJSON(w, http.StatusOK, handler.service.Quote(ctx, date, query[constant.RequestParamTime], courtCount))
}

// GetCatalog returns the slot catalog and rate table the quote is built from.
func (handler *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCatalog")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Catalog(ctx))
}
