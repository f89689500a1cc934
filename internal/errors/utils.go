package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a ScriptError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *ScriptError {
	if err == nil {
		return nil
	}

	// Keep the path and context of an inner ScriptError visible on the wrapper
	var se *ScriptError
	if errors.As(err, &se) {
		return &ScriptError{
			Type:    errType,
			Code:    code,
			Message: message,
			Cause:   se,
			Context: se.Context,
			Path:    se.Path,
		}
	}

	return &ScriptError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *ScriptError {
	return Wrap(err, ErrorTypeIO, code, message)
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, message string) *ScriptError {
	return Wrap(err, ErrorTypeConfig, ErrCodeConfigInvalid, message)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(err error, message string) *ScriptError {
	return Wrap(err, ErrorTypeInternal, ErrCodeInternalError, message)
}

// FormatError formats an error for user display
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

// GetErrorContext extracts context information from a ScriptError
func GetErrorContext(err error) map[string]interface{} {
	var se *ScriptError
	if errors.As(err, &se) {
		context := make(map[string]interface{}, len(se.Context)+3)
		for k, v := range se.Context {
			context[k] = v
		}
		if se.Path != "" {
			context["path"] = se.Path
		}
		context["type"] = string(se.Type)
		context["code"] = se.Code
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}

// ExtractCause extracts the root cause from a wrapped error
func ExtractCause(err error) error {
	for err != nil {
		var se *ScriptError
		if !errors.As(err, &se) {
			return err
		}
		if se.Cause == nil {
			return se
		}
		err = se.Cause
	}
	return nil
}
