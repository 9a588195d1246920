package errors

import (
	stdjson "encoding/json"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	Serialization bool   `json:"serialization,omitempty"`
	GoType        string `json:"go_type,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	if IsSerializationFailure(err) {
		d.Serialization = true
		if d.Code == "" {
			d.Code = CodeSerialization
		}
		d.GoType = offendingType(err)
	}

	return d
}

// IsSerializationFailure reports whether err was produced by a JSON backend
// refusing a value. Both encoding/json and go-json error types are recognised.
func IsSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	if HasCode(err, CodeSerialization) {
		return true
	}

	var (
		stdType    *stdjson.UnsupportedTypeError
		stdValue   *stdjson.UnsupportedValueError
		stdMarshal *stdjson.MarshalerError
		goType     *gojson.UnsupportedTypeError
		goValue    *gojson.UnsupportedValueError
		goMarshal  *gojson.MarshalerError
	)
	return errors.As(err, &stdType) ||
		errors.As(err, &stdValue) ||
		errors.As(err, &stdMarshal) ||
		errors.As(err, &goType) ||
		errors.As(err, &goValue) ||
		errors.As(err, &goMarshal)
}

func offendingType(err error) string {
	var stdType *stdjson.UnsupportedTypeError
	if errors.As(err, &stdType) && stdType.Type != nil {
		return stdType.Type.String()
	}
	var goType *gojson.UnsupportedTypeError
	if errors.As(err, &goType) && goType.Type != nil {
		return goType.Type.String()
	}
	var stdMarshal *stdjson.MarshalerError
	if errors.As(err, &stdMarshal) && stdMarshal.Type != nil {
		return stdMarshal.Type.String()
	}
	var goMarshal *gojson.MarshalerError
	if errors.As(err, &goMarshal) && goMarshal.Type != nil {
		return goMarshal.Type.String()
	}
	return ""
}
