package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/ledger/internal/model"
	"github.com/umalmyha/ledger/internal/service"
	"github.com/umalmyha/ledger/internal/validation"
	"github.com/umalmyha/ledger/internal/view"
)

const dashboardTemplate = "dashboard"

type dashboardPage struct {
	service.Page
	Statuses []model.Status
}

// DashboardHandler translates dashboard form posts into ledger transitions.
// Every mutating endpoint redirects back to the dashboard.
type DashboardHandler struct {
	ledger *service.Ledger
	logger logrus.FieldLogger
}

func NewDashboardHandler(ledger *service.Ledger, logger logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{ledger: ledger, logger: logger}
}

// Register mounts dashboard routes
func (h *DashboardHandler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/search", h.Search)
	e.POST("/page", h.Page)
	e.POST("/page-size", h.PageSize)
	e.POST("/selection/toggle", h.Toggle)
	e.POST("/selection/toggle-all", h.ToggleAll)
	e.POST("/selection/clear", h.ClearSelection)
	e.POST("/dialog/open", h.OpenDialog)
	e.POST("/dialog/cancel", h.CancelDialog)
	e.POST("/dialog/submit", h.SubmitDialog)
	e.POST("/customers/delete", h.Delete)
	e.POST("/notifications/retry", h.Retry)
	e.POST("/notifications/dismiss", h.Dismiss)
}

func (h *DashboardHandler) Index(c echo.Context) error {
	if err := h.ledger.EnsureLoaded(c.Request().Context()); err != nil {
		// failure is recorded as notification and rendered
		h.logger.WithError(err).Warn("dashboard rendered without customers")
	}
	return h.render(c, http.StatusOK)
}

func (h *DashboardHandler) Search(c echo.Context) error {
	return h.dispatch(c, view.SetQuery{Query: c.FormValue("q")})
}

func (h *DashboardHandler) Page(c echo.Context) error {
	page, err := formInt(c, "page")
	if err != nil {
		return err
	}
	return h.dispatch(c, view.SetPage{Page: page})
}

func (h *DashboardHandler) PageSize(c echo.Context) error {
	size, err := formInt(c, "size")
	if err != nil {
		return err
	}
	return h.dispatch(c, view.SetPageSize{Size: size})
}

func (h *DashboardHandler) Toggle(c echo.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return h.dispatch(c, view.ToggleSelection{ID: id})
}

func (h *DashboardHandler) ToggleAll(c echo.Context) error {
	if err := h.ledger.ToggleAllVisible(); err != nil {
		return err
	}
	return redirect(c)
}

func (h *DashboardHandler) ClearSelection(c echo.Context) error {
	return h.dispatch(c, view.ClearSelection{})
}

func (h *DashboardHandler) OpenDialog(c echo.Context) error {
	h.ledger.OpenPrimary()
	return redirect(c)
}

func (h *DashboardHandler) CancelDialog(c echo.Context) error {
	h.ledger.CancelDialog()
	return redirect(c)
}

func (h *DashboardHandler) SubmitDialog(c echo.Context) error {
	var in validation.FormInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.ledger.Submit(c.Request().Context(), in); err != nil {
		var pldErr *validation.PayloadError
		if errors.As(err, &pldErr) {
			return h.render(c, http.StatusUnprocessableEntity)
		}
		return err
	}
	return redirect(c)
}

func (h *DashboardHandler) Delete(c echo.Context) error {
	h.ledger.DeleteSelected(c.Request().Context())
	return redirect(c)
}

func (h *DashboardHandler) Retry(c echo.Context) error {
	if _, err := h.ledger.Retry(c.Request().Context()); err != nil {
		return err
	}
	return redirect(c)
}

func (h *DashboardHandler) Dismiss(c echo.Context) error {
	h.ledger.Dismiss()
	return redirect(c)
}

func (h *DashboardHandler) dispatch(c echo.Context, a view.Action) error {
	if err := h.ledger.Dispatch(a); err != nil {
		return err
	}
	return redirect(c)
}

func (h *DashboardHandler) render(c echo.Context, code int) error {
	return c.Render(code, dashboardTemplate, dashboardPage{
		Page:     h.ledger.Page(),
		Statuses: model.Statuses(),
	})
}

func redirect(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func formInt(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
