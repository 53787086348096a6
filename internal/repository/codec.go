package repository

import (
	"encoding/json"
	"fmt"

	"github.com/umalmyha/ledger/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes customers collection to slot bytes and back
type Codec interface {
	Encode([]model.Customer) ([]byte, error)
	Decode([]byte) ([]model.Customer, error)
}

type jsonCodec struct{}

// JSONCodec stores collection as JSON array
func JSONCodec() Codec {
	return jsonCodec{}
}

func (jsonCodec) Encode(customers []model.Customer) ([]byte, error) {
	return json.Marshal(customers)
}

func (jsonCodec) Decode(data []byte) ([]model.Customer, error) {
	var customers []model.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

type msgpackCodec struct{}

// MsgpackCodec stores collection as msgpack array
func MsgpackCodec() Codec {
	return msgpackCodec{}
}

func (msgpackCodec) Encode(customers []model.Customer) ([]byte, error) {
	return msgpack.Marshal(customers)
}

func (msgpackCodec) Decode(data []byte) ([]model.Customer, error) {
	var customers []model.Customer
	if err := msgpack.Unmarshal(data, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CodecByName resolves codec by its config name
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec(), nil
	case "msgpack":
		return MsgpackCodec(), nil
	default:
		return nil, fmt.Errorf("unknown storage codec %q", name)
	}
}
