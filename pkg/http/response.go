package xhttp

import (
	"bytes"
	"encoding/json"
	"errors"
)

const (
	EnvelopeSuccess = "success"
	EnvelopeError   = "error"
)

var ErrEmptyBody = errors.New("request body is empty")

// Envelope is the shape of every JSON response body.
type Envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ReadJSON decodes the request body into dst and rejects unknown fields and
// trailing data.
func ReadJSON(ctx *RequestCtx, dst any) error {
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func WriteJSON(ctx *RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		status = StatusInternalServerError
		b = []byte(`{"status":"error","message":"server error"}`)
	}
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func WriteSuccess(ctx *RequestCtx, status int, message string, data any) {
	WriteJSON(ctx, status, Envelope{Status: EnvelopeSuccess, Message: message, Data: data})
}

func WriteError(ctx *RequestCtx, status int, message string) {
	WriteJSON(ctx, status, Envelope{Status: EnvelopeError, Message: message})
}

func WriteFieldErrors(ctx *RequestCtx, status int, message string, fields map[string]string) {
	WriteJSON(ctx, status, Envelope{Status: EnvelopeError, Message: message, Errors: fields})
}
