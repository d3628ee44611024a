package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"courtside/infras/otel"
	"courtside/internal/domains/booking/model/dto"
	"courtside/internal/domains/booking/service"
	"courtside/shared/constant"
	"courtside/shared/validator"
	"courtside/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/drafts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDraft)
		routerGroup.Get("/{id}", handler.GetDraft)
		routerGroup.Put("/{id}/date", handler.SelectDate)
		routerGroup.Post("/{id}/court-count", handler.AdjustCourtCount)
		routerGroup.Post("/{id}/times", handler.ToggleTime)
		routerGroup.Post("/{id}/courts", handler.ToggleCourt)
		routerGroup.Post("/{id}/submit", handler.Submit)
	})
}

// CreateDraft opens a fresh booking draft and returns its id.
func (handler *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDraft")
	defer scope.End()

	draft, err := handler.service.CreateDraft(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking draft")

		response.WithError(w, r, err)

		return
	}

	scope.AddEvent("Booking draft created " + draft.DraftID)

	response.WithJSON(w, http.StatusCreated, draft)
}

// GetDraft returns the current state of a draft, including its running total.
func (handler *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDraft")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	draft, err := handler.service.GetDraft(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("draftID", id).Msg("failed to get booking draft")

		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, draft)
}

// SelectDate sets the draft's booking date, clearing its selections.
func (handler *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectDate")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SelectDateRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, r, err)

		return
	}

	draft, err := handler.service.SelectDate(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("draftID", id).Msg("failed to select booking date")

		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, draft)
}

// AdjustCourtCount steps the draft's court count up or down by one.
func (handler *Handler) AdjustCourtCount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdjustCourtCount")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CourtCountRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, r, err)

		return
	}

	draft, err := handler.service.AdjustCourtCount(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("draftID", id).Msg("failed to adjust court count")

		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, draft)
}

// ToggleTime selects or deselects one time slot on the draft.
func (handler *Handler) ToggleTime(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleTime")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ToggleTimeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, r, err)

		return
	}

	draft, err := handler.service.ToggleTime(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("draftID", id).Msg("failed to toggle time slot")

		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, draft)
}

// ToggleCourt selects or deselects one court on the draft.
func (handler *Handler) ToggleCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ToggleCourtRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, r, err)

		return
	}

	draft, err := handler.service.ToggleCourt(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("draftID", id).Msg("failed to toggle court")

		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, draft)
}

// Submit writes the draft's selections to the booking ledger.
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Submit(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("draftID", id).Msg("failed to submit booking")

		response.WithError(w, r, err)

		return
	}

	scope.AddEvent("Booking submitted from draft " + id)

	response.WithJSON(w, http.StatusCreated, booking)
}
