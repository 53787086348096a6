package view

import (
	"github.com/umalmyha/ledger/internal/model"
	"github.com/umalmyha/ledger/internal/validation"
)

// DialogMode is the state of add/update dialog
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreate
	DialogUpdate
)

func (m DialogMode) String() string {
	switch m {
	case DialogCreate:
		return "create"
	case DialogUpdate:
		return "update"
	default:
		return "closed"
	}
}

// Dialog holds add/update form state. Opening always starts from fresh form values.
type Dialog struct {
	Mode     DialogMode
	TargetID string
	Form     validation.FormInput
	Errors   map[string]string
}

func ClosedDialog() Dialog {
	return Dialog{Mode: DialogClosed}
}

// OpenCreate opens dialog with blank defaults
func OpenCreate() Dialog {
	return Dialog{Mode: DialogCreate, Form: validation.BlankForm()}
}

// OpenUpdate opens dialog filled with customer current values
func OpenUpdate(c model.Customer) Dialog {
	return Dialog{Mode: DialogUpdate, TargetID: c.ID, Form: validation.FormFromCustomer(c)}
}

func (d Dialog) Open() bool {
	return d.Mode != DialogClosed
}

// Rejected keeps dialog open with submitted input and inline field errors
func (d Dialog) Rejected(in validation.FormInput, errs map[string]string) Dialog {
	d.Form = in
	d.Errors = errs
	return d
}

func (d Dialog) Title() string {
	if d.Mode == DialogUpdate {
		return "Update Customer"
	}
	return "Add Customer"
}

func (d Dialog) SubmitLabel() string {
	if d.Mode == DialogUpdate {
		return "Update"
	}
	return "Add"
}
