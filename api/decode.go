package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"time"

	"eventize/models"
)

// DecodeFailure sub-classifies JSON decode errors for diagnostics.
// Every class surfaces to callers as DataParsing.
type DecodeFailure int

const (
	DecodeGeneric DecodeFailure = iota
	DecodeDataCorrupted
	DecodeKeyNotFound
	DecodeTypeMismatch
)

// FetchDecoded performs one GET against u and decodes the JSON body into T.
func FetchDecoded[T any](ctx context.Context, c *HTTPClient, u *url.URL, caller string) (T, error) {
	var zero T
	body, err := c.get(ctx, u, caller)
	if err != nil {
		return zero, err
	}
	return DecodeBytes[T](body, caller)
}

// DecodeBytes decodes pre-fetched bytes with the same semantics as FetchDecoded.
func DecodeBytes[T any](data []byte, caller string) (T, error) {
	var out T
	if len(data) == 0 {
		return out, logged(caller, newError(InvalidResponse, errors.New("empty response body")))
	}
	if err := decodeInto(data, &out, caller); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func decodeInto(data []byte, out interface{}, caller string) error {
	if err := json.Unmarshal(data, out); err != nil {
		logDecodeError(caller, err)
		return newError(DataParsing, err)
	}
	return nil
}

// ClassifyDecodeError maps a json.Unmarshal error onto a DecodeFailure.
func ClassifyDecodeError(err error) DecodeFailure {
	var keyErr *models.KeyNotFoundError
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var corruptErr *models.DataCorruptedError
	var timeErr *time.ParseError

	switch {
	case errors.As(err, &keyErr):
		return DecodeKeyNotFound
	case errors.As(err, &typeErr):
		return DecodeTypeMismatch
	case errors.As(err, &syntaxErr), errors.As(err, &corruptErr), errors.As(err, &timeErr):
		return DecodeDataCorrupted
	default:
		return DecodeGeneric
	}
}

func logDecodeError(caller string, err error) {
	switch ClassifyDecodeError(err) {
	case DecodeKeyNotFound:
		var keyErr *models.KeyNotFoundError
		errors.As(err, &keyErr)
		log.Printf("[%s] Key Not Found: %s", caller, keyErr.Key)
	case DecodeTypeMismatch:
		var typeErr *json.UnmarshalTypeError
		errors.As(err, &typeErr)
		log.Printf("[%s] Type Mismatch: field %q expected %s, got %s", caller, typeErr.Field, typeErr.Type, typeErr.Value)
	case DecodeDataCorrupted:
		log.Printf("[%s] Data Corrupted: %v", caller, err)
	default:
		log.Printf("[%s] Decoding Error: %v", caller, err)
	}
}
