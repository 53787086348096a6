package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/ledger/internal/model"
	"github.com/umalmyha/ledger/internal/repository"
	"github.com/umalmyha/ledger/internal/service"
	"github.com/umalmyha/ledger/internal/validation"
)

type handlersTestSuite struct {
	suite.Suite
	e      *echo.Echo
	ledger *service.Ledger
}

func (s *handlersTestSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	v, err := validation.New()
	s.Require().NoError(err)

	renderer, err := NewTemplateRenderer()
	s.Require().NoError(err, "templates must be parsed")

	rps := repository.NewSlotCustomerRepository(
		repository.NewMemorySlot(repository.DefaultSlotName),
		repository.WithLatency(0, 0),
		repository.WithLogger(logger),
	)
	s.ledger = service.NewLedger(rps, v, service.WithLogger(logger))

	s.e = echo.New()
	s.e.Validator = v
	s.e.Renderer = renderer
	s.e.HTTPErrorHandler = HTTPErrorHandler(logger)

	NewDashboardHandler(s.ledger, logger).Register(s.e)

	api := NewCustomerHTTPHandler(s.ledger)
	s.e.GET("/api/customers", api.GetAll)
	s.e.POST("/api/customers", api.Post)
	s.e.PUT("/api/customers/:id", api.Put)
	s.e.DELETE("/api/customers", api.Delete)
}

func (s *handlersTestSuite) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlersTestSuite) form(target string, values url.Values) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, target, strings.NewReader(values.Encode()), echo.MIMEApplicationForm)
}

func (s *handlersTestSuite) json(method, target, body string) *httptest.ResponseRecorder {
	return s.do(method, target, strings.NewReader(body), echo.MIMEApplicationJSON)
}

func (s *handlersTestSuite) createCustomer(name string, balance string) model.Customer {
	rec := s.json(http.MethodPost, "/api/customers",
		`{"name":"`+name+`","description":"Retail","status":"Open","rate":1,"balance":`+balance+`,"deposit":0}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var c model.Customer
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func (s *handlersTestSuite) TestEmptyDashboard() {
	rec := s.do(http.MethodGet, "/", nil, "")
	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(rec.Body.String(), "No Data Found")
	s.Assert().Contains(rec.Body.String(), "Add customer")
}

func (s *handlersTestSuite) TestAddCustomerThroughDialog() {
	s.T().Log("open dialog - redirected back to dashboard with add form")
	{
		rec := s.form("/dialog/open", url.Values{})
		s.Assert().Equal(http.StatusSeeOther, rec.Code)
		s.Assert().Equal("/", rec.Header().Get(echo.HeaderLocation))

		body := s.do(http.MethodGet, "/", nil, "").Body.String()
		s.Assert().Contains(body, "Add Customer")
		s.Assert().Contains(body, `name="rate" type="number" step="0.01" value="0"`)
	}

	s.T().Log("invalid submit - dialog stays open with inline errors")
	{
		rec := s.form("/dialog/submit", url.Values{
			"name": {""}, "description": {"Hardware"}, "status": {"Open"},
			"rate": {"x"}, "balance": {"0"}, "deposit": {"0"},
		})
		s.Assert().Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Assert().Contains(rec.Body.String(), "Name is required")
		s.Assert().Contains(rec.Body.String(), "Rate must be a number")
	}

	s.T().Log("valid submit - customer listed with formatted amounts")
	{
		rec := s.form("/dialog/submit", url.Values{
			"name": {"Acme"}, "description": {"Hardware"}, "status": {"Due"},
			"rate": {"12"}, "balance": {"1234.5"}, "deposit": {"-3"},
		})
		s.Assert().Equal(http.StatusSeeOther, rec.Code)

		body := s.do(http.MethodGet, "/", nil, "").Body.String()
		s.Assert().Contains(body, "Acme")
		s.Assert().Contains(body, "badge-due")
		s.Assert().Contains(body, "$1,234.50")
		s.Assert().Contains(body, `class="positive"`)
		s.Assert().Contains(body, "-$3.00")
		s.Assert().Contains(body, "1-1 of 1")
		s.Assert().NotContains(body, `role="dialog"`)
	}
}

func (s *handlersTestSuite) TestSelectionSwitchesPrimaryAction() {
	c := s.createCustomer("Globex", "10")

	rec := s.form("/selection/toggle", url.Values{"id": {c.ID}})
	s.Require().Equal(http.StatusSeeOther, rec.Code)

	body := s.do(http.MethodGet, "/", nil, "").Body.String()
	s.Assert().Contains(body, "Update customer")
	s.Assert().Contains(body, "1 selected")
	s.Assert().Contains(body, `aria-checked="true" aria-label="Select all"`)

	s.form("/dialog/open", url.Values{})
	body = s.do(http.MethodGet, "/", nil, "").Body.String()
	s.Assert().Contains(body, "Update Customer")
	s.Assert().Contains(body, `value="Globex"`)

	s.form("/dialog/cancel", url.Values{})
	s.form("/customers/delete", url.Values{})

	body = s.do(http.MethodGet, "/", nil, "").Body.String()
	s.Assert().Contains(body, "No Data Found")
	s.Assert().Contains(body, "Add customer")
}

func (s *handlersTestSuite) TestPaginationForms() {
	for i := 0; i < 6; i++ {
		s.createCustomer("Customer", "0")
	}

	rec := s.form("/page-size", url.Values{"size": {"5"}})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.form("/page", url.Values{"page": {"2"}})

	body := s.do(http.MethodGet, "/", nil, "").Body.String()
	s.Assert().Contains(body, "6-6 of 6")

	rec = s.form("/page-size", url.Values{"size": {"7"}})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)

	rec = s.form("/page", url.Values{"page": {"abc"}})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlersTestSuite) TestRetryWithoutNotification() {
	rec := s.form("/notifications/retry", url.Values{})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlersTestSuite) TestAPIList() {
	s.createCustomer("Acme", "1")
	s.createCustomer("Globex", "2")
	s.createCustomer("Initech", "3")

	rec := s.do(http.MethodGet, "/api/customers?q=GLO&pageSize=5", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var page customerPage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	s.Assert().Equal(1, page.TotalRows)
	s.Assert().Equal(5, page.PageSize)
	s.Assert().Equal("Globex", page.Items[0].Name)

	rec = s.do(http.MethodGet, "/api/customers?pageSize=7", nil, "")
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlersTestSuite) TestAPIValidation() {
	rec := s.json(http.MethodPost, "/api/customers", `{"name":" ","description":"d","status":"Closed"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var body struct {
		Errors []validation.Violation `json:"errors"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Assert().Contains(body.Errors, validation.Violation{Field: "name", Message: "Name is required"})
	s.Assert().Contains(body.Errors, validation.Violation{Field: "status", Message: "Status must be one of Open, Inactive, Paid, Due"})
}

func (s *handlersTestSuite) TestAPIUpdateAndDelete() {
	c := s.createCustomer("Acme", "1")

	rec := s.json(http.MethodPut, "/api/customers/"+c.ID, `{"status":"Paid"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var updated model.Customer
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Assert().Equal(c.ID, updated.ID)
	s.Assert().Equal(model.StatusPaid, updated.Status)
	s.Assert().Equal("Acme", updated.Name, "omitted fields must be kept")

	rec = s.json(http.MethodPut, "/api/customers/unknown", `{"status":"Paid"}`)
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	rec = s.json(http.MethodDelete, "/api/customers", `{"ids":["`+c.ID+`","unknown"]}`)
	s.Assert().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/customers", nil, "")
	s.Assert().Contains(rec.Body.String(), `"totalRows":0`)
}

func (s *handlersTestSuite) TestAPITrimsText() {
	rec := s.json(http.MethodPost, "/api/customers", `{"name":"  Pad  ","description":" Retail ","status":"Open"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created model.Customer
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Assert().Equal("Pad", created.Name)
	s.Assert().Equal("Retail", created.Description)

	rec = s.json(http.MethodPut, "/api/customers/"+created.ID, `{"name":"  Padded  "}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var updated model.Customer
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Assert().Equal("Padded", updated.Name)
	s.Assert().Equal("Retail", updated.Description)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(handlersTestSuite))
}
