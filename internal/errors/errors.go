package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

type BusinessErr struct {
	target  string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

func (e *BusinessErr) Target() string {
	return e.target
}

func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

func NewBusinessErr(target string, msg string) error {
	return &BusinessErr{
		target:  target,
		message: msg,
	}
}

// EntryNotFoundErr is raised when mutation target is absent from collection
type EntryNotFoundErr struct {
	message string
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

func NewEntryNotFoundErr(msg string) *EntryNotFoundErr {
	return &EntryNotFoundErr{message: msg}
}

func IsNotFound(err error) bool {
	var nfErr *EntryNotFoundErr
	return errors.As(err, &nfErr)
}

// StorageDecodeErr means persisted data can't be decoded, callers treat slot as empty
type StorageDecodeErr struct {
	slot string
	err  error
}

func (e *StorageDecodeErr) Error() string {
	return fmt.Sprintf("failed to decode data stored in slot %s - %v", e.slot, e.err)
}

func (e *StorageDecodeErr) Unwrap() error {
	return e.err
}

func NewStorageDecodeErr(slot string, err error) *StorageDecodeErr {
	return &StorageDecodeErr{slot: slot, err: err}
}
