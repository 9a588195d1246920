// Package jsend builds and renders JSend response envelopes.
package jsend

import (
	"maps"

	pkgerrors "github.com/veerakumarak/jsend/pkg/errors"
)

// Envelope is implemented only by Response. Renderers accept it so that a
// single non-generic method can render any payload type.
type Envelope interface {
	variant() body
}

// body is the closed set of JSend variants: successBody, failBody and
// errorBody. Each one knows its own status and wire layout.
type body interface {
	status() Status
	render(w *objectWriter) error
}

// Response is an immutable JSend envelope. Build one with the constructors in
// this package; the zero value is an empty success.
//
// Maps handed to a constructor are copied. Values inside them are not deep
// copied, so pointer payloads still share their referents with the caller.
type Response[T any] struct {
	body body
}

type successBody[T any] struct {
	data map[string]T
}

type failBody struct {
	message    string
	hasMessage bool
	reasons    map[string]string
}

type errorBody struct {
	message string
	code    *int
	data    map[string]any
}

func (successBody[T]) status() Status { return StatusSuccess }
func (failBody) status() Status { return StatusFail }
func (errorBody) status() Status { return StatusError }

// Success builds {"status":"success","data":{}}.
func Success[T any]() Response[T] {
	return Response[T]{body: successBody[T]{data: map[string]T{}}}
}

// SuccessWith builds a success whose data holds a single key.
func SuccessWith[T any](key string, value T) (Response[T], error) {
	if key == "" {
		return Response[T]{}, pkgerrors.InvalidArgument("key")
	}
	return Response[T]{body: successBody[T]{data: map[string]T{key: value}}}, nil
}

// SuccessData builds a success from a copy of data.
func SuccessData[T any](data map[string]T) (Response[T], error) {
	if data == nil {
		return Response[T]{}, pkgerrors.InvalidArgument("data")
	}
	return Response[T]{body: successBody[T]{data: maps.Clone(data)}}, nil
}

// Fail builds a fail carrying a general message, rendered as
// {"status":"fail","data":{"message":"..."}}.
func Fail[T any](message string) (Response[T], error) {
	if message == "" {
		return Response[T]{}, pkgerrors.InvalidArgument("message")
	}
	return Response[T]{body: failBody{message: message, hasMessage: true}}, nil
}

// FailReason builds a fail with one field reason.
func FailReason[T any](key, reason string) (Response[T], error) {
	if key == "" {
		return Response[T]{}, pkgerrors.InvalidArgument("key")
	}
	if reason == "" {
		return Response[T]{}, pkgerrors.InvalidArgument("reason")
	}
	return Response[T]{body: failBody{reasons: map[string]string{key: reason}}}, nil
}

// FailReasons builds a fail from a copy of reasons, typically field name to
// validation message.
func FailReasons[T any](reasons map[string]string) (Response[T], error) {
	if reasons == nil {
		return Response[T]{}, pkgerrors.InvalidArgument("reasons")
	}
	return Response[T]{body: failBody{reasons: maps.Clone(reasons)}}, nil
}

// Error builds {"status":"error","message":"..."}.
func Error[T any](message string) (Response[T], error) {
	return ErrorData[T](message, nil, nil)
}

// ErrorCode builds an error with an optional application code. A nil code is
// omitted from the output.
func ErrorCode[T any](message string, code *int) (Response[T], error) {
	return ErrorData[T](message, code, nil)
}

// ErrorData builds an error with an optional code and optional diagnostic
// data. Nil arguments are treated as absent.
func ErrorData[T any](message string, code *int, data map[string]any) (Response[T], error) {
	if message == "" {
		return Response[T]{}, pkgerrors.InvalidArgument("message")
	}
	b := errorBody{message: message}
	if code != nil {
		c := *code
		b.code = &c
	}
	if data != nil {
		b.data = maps.Clone(data)
	}
	return Response[T]{body: b}, nil
}

// Int returns a pointer to v, for passing codes to ErrorCode and ErrorData.
func Int(v int) *int {
	return &v
}

func (r Response[T]) variant() body {
	if r.body == nil {
		return successBody[T]{}
	}
	return r.body
}

func (r Response[T]) Status() Status {
	return r.variant().status()
}

func (r Response[T]) IsSuccess() bool {
	return r.Status() == StatusSuccess
}

func (r Response[T]) IsFail() bool {
	return r.Status() == StatusFail
}

func (r Response[T]) IsError() bool {
	return r.Status() == StatusError
}

// Data returns a copy of the success payload, or nil for other statuses.
func (r Response[T]) Data() map[string]T {
	b, ok := r.variant().(successBody[T])
	if !ok {
		return nil
	}
	if b.data == nil {
		return map[string]T{}
	}
	return maps.Clone(b.data)
}

// Reasons returns a copy of the fail reasons. It is never nil.
func (r Response[T]) Reasons() map[string]string {
	b, ok := r.variant().(failBody)
	if !ok || b.reasons == nil {
		return map[string]string{}
	}
	return maps.Clone(b.reasons)
}

// Message returns the fail or error message, if one was set.
func (r Response[T]) Message() (string, bool) {
	switch b := r.variant().(type) {
	case failBody:
		return b.message, b.hasMessage
	case errorBody:
		return b.message, true
	}
	return "", false
}

// Code returns the application error code of an error response.
func (r Response[T]) Code() (int, bool) {
	b, ok := r.variant().(errorBody)
	if !ok || b.code == nil {
		return 0, false
	}
	return *b.code, true
}

// ErrorData returns a copy of the diagnostic data of an error response, or nil.
func (r Response[T]) ErrorData() map[string]any {
	b, ok := r.variant().(errorBody)
	if !ok || b.data == nil {
		return nil
	}
	return maps.Clone(b.data)
}

// MarshalJSON renders the envelope with the Default renderer.
func (r Response[T]) MarshalJSON() ([]byte, error) {
	return Default.Render(r)
}
