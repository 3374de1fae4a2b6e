package consultation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/domain/appointment"
	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleClinician))
	g.POST("/consultations", h.Create)
	g.GET("/consultations", h.List)
	g.GET("/consultations/:id", h.Get)
	g.PUT("/consultations/:id", h.Update)
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotesRequired):
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": map[string]string{"current_notes": ErrNotesRequired.Error()},
		})
	// Completing a visit closes the appointment; if its status changed
	// underneath (a scheduler cancelled it), that surfaces here.
	case errors.Is(err, ErrAlreadyRecorded), errors.Is(err, ErrAppointmentNotOpen),
		errors.Is(err, appointment.ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAppointmentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	caller := auth.FromContext(c.Request().Context())
	record, err := h.svc.Create(c.Request().Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, Present(record, caller))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	caller := auth.FromContext(c.Request().Context())
	record, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Present(record, caller))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	caller := auth.FromContext(c.Request().Context())
	record, err := h.svc.Update(c.Request().Context(), caller, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Present(record, caller))
}

func (h *Handler) List(c echo.Context) error {
	caller := auth.FromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	records, total, err := h.svc.List(c.Request().Context(), caller, pg.Limit, pg.Offset)
	if err != nil {
		return writeError(c, err)
	}
	views := make([]View, 0, len(records))
	for _, r := range records {
		views = append(views, Present(r, caller))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(views, total, pg.Limit, pg.Offset))
}
