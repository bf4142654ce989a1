package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/institutpi/events-api/internal/core/ports"
)

// EventHandler serves the public event catalogue and the admin CRUD.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// ListPublic handles GET /api/events — upcoming published events.
//
// @Summary      List upcoming published events
// @Tags         events
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  eventListResponse
// @Router       /api/events [get]
func (h *EventHandler) ListPublic(c echo.Context) error {
	return h.listPublic(c, false)
}

// ListArchive handles GET /api/events/archive — past published events.
//
// @Summary      List past published events
// @Tags         events
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  eventListResponse
// @Router       /api/events/archive [get]
func (h *EventHandler) ListArchive(c echo.Context) error {
	return h.listPublic(c, true)
}

func (h *EventHandler) listPublic(c echo.Context, archive bool) error {
	limit, offset := pagination(c)
	list, err := h.events.ListPublic(c.Request().Context(), ports.ListEventsInput{
		Archive: archive,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventListResponse{Events: list.Events, Total: list.Total})
}

// GetBySlug handles GET /api/events/:slug — a single published event.
//
// @Summary      Get a published event by slug
// @Tags         events
// @Produce      json
// @Param        slug  path      string  true  "Event slug"
// @Success      200   {object}  domain.Event
// @Failure      404   {object}  map[string]string
// @Router       /api/events/{slug} [get]
func (h *EventHandler) GetBySlug(c echo.Context) error {
	event, err := h.events.GetPublic(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Calendar handles GET /api/events/:id/calendar — iCalendar download.
//
// @Summary      Download the event as an .ics file
// @Tags         events
// @Produce      text/calendar
// @Param        id   path      string  true  "Event ID"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]string
// @Router       /api/events/{id}/calendar [get]
func (h *EventHandler) Calendar(c echo.Context) error {
	file, err := h.events.Calendar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", file.Content)
}

// AdminList handles GET /api/admin/events — events of any status.
//
// @Summary      List events (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(draft, published, cancelled)
// @Param        limit   query     int     false  "Page size"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  eventListResponse
// @Failure      401     {object}  map[string]string
// @Router       /api/admin/events [get]
func (h *EventHandler) AdminList(c echo.Context) error {
	limit, offset := pagination(c)
	list, err := h.events.AdminList(c.Request().Context(), ports.ListEventsInput{
		Status: c.QueryParam("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventListResponse{Events: list.Events, Total: list.Total})
}

// AdminGet handles GET /api/admin/events/:id.
//
// @Summary      Get an event by ID (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/events/{id} [get]
func (h *EventHandler) AdminGet(c echo.Context) error {
	event, err := h.events.AdminGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Create handles POST /api/admin/events.
//
// @Summary      Create an event
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.events.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Update handles PUT /api/admin/events/:id — partial update.
//
// @Summary      Update an event
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	if err := h.events.Update(c.Request().Context(), id, toUpdateInput(req)); err != nil {
		return err
	}

	event, err := h.events.AdminGet(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/admin/events/:id.
//
// @Summary      Delete an event and its registrations
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Event ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /api/admin/stats — the dashboard aggregates.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  map[string]string
// @Router       /api/admin/stats [get]
func (h *EventHandler) Stats(c echo.Context) error {
	stats, err := h.events.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// pagination reads limit/offset query parameters, tolerating garbage.
func pagination(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
