package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/ledger/internal/model"
	"github.com/umalmyha/ledger/internal/service"
	"github.com/umalmyha/ledger/internal/view"
)

type listQuery struct {
	Query    string `query:"q"`
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
}

type customerPage struct {
	Items      []model.Customer `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	TotalRows  int              `json:"totalRows"`
}

type newCustomer struct {
	Name        string       `json:"name" validate:"filled"`
	Description string       `json:"description" validate:"filled"`
	Status      model.Status `json:"status" validate:"customerstatus"`
	Rate        float64      `json:"rate"`
	Balance     float64      `json:"balance"`
	Deposit     float64      `json:"deposit"`
}

type updateCustomer struct {
	Name        *string       `json:"name" validate:"omitempty,filled"`
	Description *string       `json:"description" validate:"omitempty,filled"`
	Status      *model.Status `json:"status" validate:"omitempty,customerstatus"`
	Rate        *float64      `json:"rate"`
	Balance     *float64      `json:"balance"`
	Deposit     *float64      `json:"deposit"`
}

type deleteCustomers struct {
	IDs []string `json:"ids"`
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	ledger *service.Ledger
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(ledger *service.Ledger) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{ledger: ledger}
}

// GetAll lists customers
// @Summary     List customers
// @Description Returns filtered page of customers in insertion order
// @Tags        customers
// @Produce     json
// @Param       q        query    string false "Search text"
// @Param       page     query    int    false "Page number"
// @Param       pageSize query    int    false "Page size" Enums(5, 10, 15, 20, 30, 40, 50)
// @Success     200      {object} customerPage
// @Failure     400      {object} echo.HTTPError
// @Failure     500      {object} echo.HTTPError
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actions := []view.Action{view.SetQuery{Query: q.Query}}
	if q.PageSize != 0 {
		actions = append(actions, view.SetPageSize{Size: q.PageSize})
	}
	actions = append(actions, view.SetPage{Page: q.Page})

	s := view.NewState()
	for _, a := range actions {
		next, err := view.Reduce(s, a)
		if err != nil {
			return err
		}
		s = next
	}

	snapshot, err := h.ledger.Query(c.Request().Context(), s)
	if err != nil {
		return err
	}

	items := make([]model.Customer, 0, len(snapshot.Rows))
	for _, r := range snapshot.Rows {
		items = append(items, r.Customer)
	}

	return c.JSON(http.StatusOK, customerPage{
		Items:      items,
		Page:       snapshot.Page,
		PageSize:   snapshot.PageSize,
		TotalPages: snapshot.TotalPages,
		TotalRows:  snapshot.TotalRows,
	})
}

// Post creates new customer
// @Summary     New Customer
// @Description Creates new customer with assigned id
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       newCustomer body     newCustomer true "Data for new customer"
// @Success     201         {object} model.Customer
// @Failure     400         {object} echo.HTTPError
// @Failure     500         {object} echo.HTTPError
// @Router      /api/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	outcome := h.ledger.Create(c.Request().Context(), model.NewCustomer{
		Name:        strings.TrimSpace(nc.Name),
		Description: strings.TrimSpace(nc.Description),
		Status:      nc.Status,
		Rate:        nc.Rate,
		Balance:     nc.Balance,
		Deposit:     nc.Deposit,
	})
	if outcome.Failed() {
		return outcome.Err
	}

	return c.JSON(http.StatusCreated, outcome.Customer)
}

// Put updates customer
// @Summary     Update Customer
// @Description Overwrites provided fields of existing customer
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       id             path     string         true "Customer id"
// @Param       updateCustomer body     updateCustomer true "Customer data"
// @Success     200            {object} model.Customer
// @Failure     400            {object} echo.HTTPError
// @Failure     404            {object} echo.HTTPError
// @Failure     500            {object} echo.HTTPError
// @Router      /api/customers/{id} [put]
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	var uc updateCustomer
	if err := c.Bind(&uc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&uc); err != nil {
		return err
	}

	outcome := h.ledger.Update(c.Request().Context(), c.Param("id"), model.PatchCustomer{
		Name:        trimmed(uc.Name),
		Description: trimmed(uc.Description),
		Status:      uc.Status,
		Rate:        uc.Rate,
		Balance:     uc.Balance,
		Deposit:     uc.Deposit,
	})
	if outcome.Failed() {
		return outcome.Err
	}

	return c.JSON(http.StatusOK, outcome.Customer)
}

// Delete deletes customers
// @Summary     Delete customers by ids
// @Description Deletes customers with provided ids, unknown ids are ignored
// @Tags        customers
// @Accept      json
// @Param       deleteCustomers body deleteCustomers true "Customer ids"
// @Success     204 "Successful status code"
// @Failure     400 {object} echo.HTTPError
// @Failure     500 {object} echo.HTTPError
// @Router      /api/customers [delete]
func (h *CustomerHTTPHandler) Delete(c echo.Context) error {
	var dc deleteCustomers
	if err := c.Bind(&dc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if outcome := h.ledger.Delete(c.Request().Context(), dc.IDs); outcome.Failed() {
		return outcome.Err
	}
	return c.NoContent(http.StatusNoContent)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)
	return &t
}
