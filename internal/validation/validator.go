package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
	"github.com/umalmyha/ledger/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	tagFilled         = "filled"
	tagCustomerStatus = "customerstatus"
	tagAmount         = "amount"
)

// Violation describes single invalid field
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError holds field-level violations in field declaration order
type PayloadError struct {
	violations []Violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range e.violations {
		buff.WriteString(err.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

func (e *PayloadError) Violation(v Violation) {
	e.violations = append(e.violations, v)
}

func (e *PayloadError) Violations() []Violation {
	return e.violations
}

// Fields maps field name to its first violation message
func (e *PayloadError) Fields() map[string]string {
	fields := make(map[string]string, len(e.violations))
	for _, v := range e.violations {
		if _, ok := fields[v.Field]; !ok {
			fields[v.Field] = v.Message
		}
	}
	return fields
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []Violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// FormInput is raw customer form input as typed by user
type FormInput struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Status      string `json:"status" form:"status"`
	Rate        string `json:"rate" form:"rate"`
	Balance     string `json:"balance" form:"balance"`
	Deposit     string `json:"deposit" form:"deposit"`
}

// BlankForm returns defaults of add form
func BlankForm() FormInput {
	return FormInput{
		Status:  string(model.StatusOpen),
		Rate:    "0",
		Balance: "0",
		Deposit: "0",
	}
}

// FormFromCustomer returns update form filled with customer current values
func FormFromCustomer(c model.Customer) FormInput {
	return FormInput{
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		Rate:        formatNumber(c.Rate),
		Balance:     formatNumber(c.Balance),
		Deposit:     formatNumber(c.Deposit),
	}
}

type customerRecord struct {
	Name        string `json:"name" validate:"filled"`
	Description string `json:"description" validate:"filled"`
	Status      string `json:"status" validate:"customerstatus"`
	Rate        string `json:"rate" validate:"amount"`
	Balance     string `json:"balance" validate:"amount"`
	Deposit     string `json:"deposit" validate:"amount"`
}

// Validator validates payloads and translates violations to english messages
type Validator struct {
	validator  *validator.Validate
	translator ut.Translator
}

func New() (*Validator, error) {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("missing en translations")
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations - %w", err)
	}

	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{tag: tagFilled, fn: isFilled, message: "{0} is required"},
		{tag: tagCustomerStatus, fn: isCustomerStatus, message: "{0} must be one of " + statusList()},
		{tag: tagAmount, fn: isAmount, message: "{0} must be a number"},
	}

	for _, r := range rules {
		if err := v.RegisterValidation(r.tag, r.fn); err != nil {
			return nil, fmt.Errorf("failed to register %s validation - %w", r.tag, err)
		}

		if err := v.RegisterTranslation(r.tag, trans, registerMessage(r.tag, r.message), translateMessage(r.tag)); err != nil {
			return nil, fmt.Errorf("failed to register %s translation - %w", r.tag, err)
		}
	}

	return &Validator{validator: v, translator: trans}, nil
}

// Validate implements echo.Validator
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// Customer validates raw form input and coerces it to typed customer data
func (v *Validator) Customer(in FormInput) (model.NewCustomer, error) {
	rec := customerRecord{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Status:      strings.TrimSpace(in.Status),
		Rate:        in.Rate,
		Balance:     in.Balance,
		Deposit:     in.Deposit,
	}

	if err := v.Validate(&rec); err != nil {
		return model.NewCustomer{}, err
	}

	// numbers were already verified by validation
	rate, _ := parseNumber(rec.Rate)
	balance, _ := parseNumber(rec.Balance)
	deposit, _ := parseNumber(rec.Deposit)

	return model.NewCustomer{
		Name:        rec.Name,
		Description: rec.Description,
		Status:      model.Status(rec.Status),
		Rate:        rate,
		Balance:     balance,
		Deposit:     deposit,
	}, nil
}

func (v *Validator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]Violation, 0)}
	for _, e := range ve {
		pldErr.Violation(Violation{
			Field:   e.Field(),
			Message: e.Translate(v.translator),
		})
	}
	return pldErr
}

func registerMessage(tag string, msg string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, msg, true)
	}
}

func translateMessage(tag string) validator.TranslationFunc {
	title := cases.Title(language.English)
	return func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T(tag, title.String(fe.Field()))
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func isFilled(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isCustomerStatus(fl validator.FieldLevel) bool {
	return model.Status(fl.Field().String()).Valid()
}

func isAmount(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		_, err := parseNumber(field.String())
		return err == nil
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

// parseNumber coerces text to number, blank text is zero
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func statusList() string {
	statuses := model.Statuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
