package apperrors

import "github.com/rs/zerolog"

// LogClassifiedError adds the classification metadata of err to a log event.
func LogClassifiedError(event *zerolog.Event, err error) *zerolog.Event {
	if err == nil {
		return event
	}

	event = event.Err(err).
		Str("error_class", string(GetClass(err)))

	if operation := GetOperation(err); operation != "" {
		event = event.Str("operation", operation)
	}

	if context := GetContext(err); len(context) > 0 {
		event = event.Interface("error_context", context)
	}

	return event
}
