package apperr

import "github.com/tuanvumaihuynh/coffee-roastery/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
	MalformedBodyCode   = "MALFORMED_BODY"
	NotFoundCode        = "NOT_FOUND"
	InternalErrorCode   = "INTERNAL_ERROR"
	DatabaseErrorCode   = "DATABASE_ERROR"
	ConfigErrorCode     = "CONFIG_ERROR"
	IOErrorCode         = "IO_ERROR"
)

var (
	ValidationErr    = zerror.ValidationFailed(ValidationErrorCode, "validation error")
	MalformedBodyErr = zerror.BadRequest(MalformedBodyCode, "malformed request body")
	NotFoundErr      = zerror.NotFound(NotFoundCode, "record not found")
	InternalErr      = zerror.Internal(InternalErrorCode, "internal server error")
	DatabaseErr      = zerror.Internal(DatabaseErrorCode, "database error")
	ConfigErr        = zerror.Internal(ConfigErrorCode, "configuration error")
	IOErr            = zerror.Internal(IOErrorCode, "io error")
)

// Database classifies a storage failure. The cause is part of the message.
func Database(err error) error {
	return DatabaseErr.Wrap(err).WithMsgf("Database error: %v", err)
}

// Config classifies a startup configuration failure.
func Config(err error) error {
	return ConfigErr.Wrap(err).WithMsgf("Configuration error: %v", err)
}

// IO classifies a startup file access failure.
func IO(err error) error {
	return IOErr.Wrap(err).WithMsgf("IO error: %v", err)
}
