package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"standsdir/internal/directory/models"
	"standsdir/internal/directory/service"
	"standsdir/internal/location"
	id "standsdir/pkg/domain"
	dErrors "standsdir/pkg/domain-errors"
	"standsdir/pkg/platform/httputil"
	"standsdir/pkg/platform/middleware/admin"
	"standsdir/pkg/platform/middleware/request"
	"standsdir/pkg/requestcontext"
)

// Service is the directory behaviour the HTTP layer depends on.
type Service interface {
	Resolve(ctx context.Context, req location.Request, limit int) (*models.Listing, error)
	Debug(ctx context.Context, req location.Request) (*models.DebugReport, error)
	GlobalPages(ctx context.Context, kind models.PageKind) ([]models.GlobalPage, error)
	SubmitLead(ctx context.Context, cmd service.SubmitLeadCommand) (*models.Lead, *models.RoutingResult, error)
	RouteLead(ctx context.Context, leadID id.LeadID) (*models.RoutingResult, error)
	Analytics(ctx context.Context) (*models.RoutingAnalytics, error)
}

// Handler serves the directory listing, lead intake and operator routes.
type Handler struct {
	svc        Service
	logger     *slog.Logger
	adminToken string
	readMW     []func(http.Handler) http.Handler
	leadMW     []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithReadMiddleware wraps the public listing route.
func WithReadMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.readMW = append(h.readMW, mw...)
	}
}

// WithLeadMiddleware wraps public lead intake.
func WithLeadMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.leadMW = append(h.leadMW, mw...)
	}
}

func New(svc Service, logger *slog.Logger, adminToken string, opts ...Option) *Handler {
	h := &Handler{svc: svc, logger: logger, adminToken: adminToken}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts public routes directly and operator routes behind the
// admin token.
func (h *Handler) Register(r chi.Router) {
	r.With(h.readMW...).Get("/builders", h.handleListBuilders)
	r.With(h.leadMW...).Post("/leads", h.handleSubmitLead)

	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Get("/admin/debug/location-builders", h.handleDebugLocation)
		r.Get("/admin/global-pages", h.handleGlobalPages)
		r.Post("/admin/leads/{id}/route", h.handleRouteLead)
		r.Get("/admin/routing/analytics", h.handleAnalytics)
	})
}

func (h *Handler) handleListBuilders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := parseListBuildersQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	listing, err := h.svc.Resolve(ctx, q.Request(), q.Limit)
	if err != nil {
		h.fail(ctx, w, "failed to resolve builders", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListBuildersResponse(listing))
}

func (h *Handler) handleDebugLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	report, err := h.svc.Debug(ctx, location.Request{Country: q.Get("country"), City: q.Get("city")})
	if err != nil {
		h.fail(ctx, w, "debug resolution failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleGlobalPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, err := parsePageKind(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pages, err := h.svc.GlobalPages(ctx, kind)
	if err != nil {
		h.fail(ctx, w, "failed to build global pages", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GlobalPagesResponse{Type: kind, Pages: pages})
}

func (h *Handler) handleSubmitLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[SubmitLeadRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	lead, routing, err := h.svc.SubmitLead(ctx, req.Command())
	if err != nil {
		h.fail(ctx, w, "failed to submit lead", err)
		return
	}
	h.logger.InfoContext(ctx, "lead accepted",
		"lead_id", lead.ID.String(),
		"assignments", routing.AssignmentsCreated,
		"client_ip", request.ClientIP(r),
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusCreated, SubmitLeadResponse{
		LeadID:      lead.ID,
		Status:      lead.Status,
		CreatedAt:   lead.CreatedAt,
		Routing:     routing,
		Assignments: len(lead.Assignments),
	})
}

func (h *Handler) handleRouteLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leadID, err := id.ParseLeadID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.svc.RouteLead(ctx, leadID)
	if err != nil {
		h.fail(ctx, w, "failed to route lead", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	analytics, err := h.svc.Analytics(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to compute routing analytics", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, analytics)
}

// fail logs internal errors at error level and client errors at info, then
// writes the error envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelInfo
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
