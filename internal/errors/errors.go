package errors

import (
	"errors"
	"fmt"
)

// Re-export standard errors package functions
var (
	As     = errors.As
	Is     = errors.Is
	New    = errors.New
	Unwrap = errors.Unwrap
)

// Define domain-specific error types
var (
	// General errors
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrForbidden        = errors.New("operation not permitted")

	// Model errors
	ErrThingNotFound     = errors.New("sdfThing not found")
	ErrObjectNotFound    = errors.New("sdfObject not found")
	ErrClusterNotFound   = errors.New("Matter cluster not found")
	ErrDeviceNotFound    = errors.New("Matter device type not found")
	ErrBaseClusterMissing = errors.New("base cluster not found for derived cluster")

	// Conversion errors
	ErrUnfittableRange     = errors.New("numeric range does not fit any native Matter integer type")
	ErrUnresolvableType    = errors.New("type reference could not be resolved")
	ErrAmbiguousConformance = errors.New("conformance expression could not be evaluated")
	ErrRoundTripMismatch   = errors.New("round-trip conversion produced a different document")

	// I/O errors
	ErrInvalidSDFDocument    = errors.New("invalid SDF document")
	ErrInvalidMatterDocument = errors.New("invalid Matter XML document")
	ErrMappingNotFound       = errors.New("side-car mapping entry not found")

	// Validation errors
	ErrSchemaValidationFailed = errors.New("schema validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// Wrap wraps an error with additional context
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// WrapWithCode wraps an error with a specific error code
func WrapWithCode(err error, code error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	wrappedErr := fmt.Errorf(format+": %w", append(args, err)...)
	return fmt.Errorf("%w: %w", code, wrappedErr)
}

// errorCodes lists every sentinel this package recognizes, in lookup order.
var errorCodes = []error{
	ErrNotFound,
	ErrAlreadyExists,
	ErrInvalidParameter,
	ErrForbidden,
	ErrThingNotFound,
	ErrObjectNotFound,
	ErrClusterNotFound,
	ErrDeviceNotFound,
	ErrBaseClusterMissing,
	ErrUnfittableRange,
	ErrUnresolvableType,
	ErrAmbiguousConformance,
	ErrRoundTripMismatch,
	ErrInvalidSDFDocument,
	ErrInvalidMatterDocument,
	ErrMappingNotFound,
	ErrSchemaValidationFailed,
	ErrInvalidCredentials,
	ErrTokenExpired,
	ErrInvalidToken,
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) error {
	if err == nil {
		return nil
	}

	for _, code := range errorCodes {
		if errors.Is(err, code) {
			return code
		}
	}

	return nil
}

var errorCodeStrings = map[error]string{
	ErrNotFound:               "NOT_FOUND",
	ErrAlreadyExists:          "ALREADY_EXISTS",
	ErrInvalidParameter:       "INVALID_PARAMETER",
	ErrForbidden:              "FORBIDDEN",
	ErrThingNotFound:          "THING_NOT_FOUND",
	ErrObjectNotFound:         "OBJECT_NOT_FOUND",
	ErrClusterNotFound:        "CLUSTER_NOT_FOUND",
	ErrDeviceNotFound:         "DEVICE_NOT_FOUND",
	ErrBaseClusterMissing:     "BASE_CLUSTER_MISSING",
	ErrUnfittableRange:        "UNFITTABLE_RANGE",
	ErrUnresolvableType:       "UNRESOLVABLE_TYPE",
	ErrAmbiguousConformance:   "AMBIGUOUS_CONFORMANCE",
	ErrRoundTripMismatch:      "ROUND_TRIP_MISMATCH",
	ErrInvalidSDFDocument:     "INVALID_SDF_DOCUMENT",
	ErrInvalidMatterDocument:  "INVALID_MATTER_DOCUMENT",
	ErrMappingNotFound:        "MAPPING_NOT_FOUND",
	ErrSchemaValidationFailed: "SCHEMA_VALIDATION_FAILED",
	ErrInvalidCredentials:     "INVALID_CREDENTIALS",
	ErrTokenExpired:           "TOKEN_EXPIRED",
	ErrInvalidToken:           "INVALID_TOKEN",
}

// GetErrorCodeString returns the string representation of the error code
func GetErrorCodeString(err error) string {
	if err == nil {
		return "UNKNOWN_ERROR"
	}
	code := GetErrorCode(err)
	if s, ok := errorCodeStrings[code]; ok {
		return s
	}
	return "INTERNAL_SERVER_ERROR"
}
