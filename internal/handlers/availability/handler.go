package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"courtside/infras/otel"
	"courtside/internal/domains/availability/model/dto"
	"courtside/internal/domains/availability/service"
	"courtside/shared/constant"
	"courtside/shared/validator"
	"courtside/transport/http/response"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAvailability)
	})
}

// GetAvailability lists the booked slot keys for one date.
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	if err := validator.ValidateVar(date, "required,datetime=2006-01-02"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("invalid availability date")

		response.WithError(w, r, err)

		return
	}

	handler.service.Refresh(ctx, date)

	response.WithJSON(w, http.StatusOK, dto.FromKeys(date, handler.service.BookedKeys(ctx, date)))
}
