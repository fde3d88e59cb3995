package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by all modules.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeCacheError         ErrorCode = "COMMON_010"
	ErrCodeStorageError       ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
	ErrCodeNotImplemented     ErrorCode = "COMMON_013"
)

// Short aliases used throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeCacheError     = ErrCodeCacheError
	CodeStorageError   = ErrCodeStorageError
	CodeNotImplemented = ErrCodeNotImplemented
	CodeUnknown        = ErrorCode("UNKNOWN")
	CodeOK             = ErrorCode("OK")
)

// Structure-resolution error codes (PubChem lookups, SMILES validation).
const (
	ErrCodeCompoundNotFound    ErrorCode = "RES_001"
	ErrCodeInvalidSMILES       ErrorCode = "RES_002"
	ErrCodeAmbiguousNotation   ErrorCode = "RES_003"
	ErrCodeResolverUnavailable ErrorCode = "RES_004"
	ErrCodeRecordUnavailable   ErrorCode = "RES_005" // e.g. no 3D conformer record
)

// Geometry / orientation error codes.
const (
	ErrCodeNoCoordinates      ErrorCode = "GEO_001"
	ErrCodeDegenerateGeometry ErrorCode = "GEO_002"
	ErrCodeMolfileParseFailed ErrorCode = "GEO_003"
)

// Rendering error codes.
const (
	ErrCodeRenderFailed      ErrorCode = "RND_001"
	ErrCodeInvalidStyle      ErrorCode = "RND_002"
	ErrCodeTemplateNotFound  ErrorCode = "RND_003"
	ErrCodeArtifactNotStored ErrorCode = "RND_004"
)

// Infobox generation error codes.
const (
	ErrCodeInfoboxDataMissing  ErrorCode = "BOX_001"
	ErrCodeInfoboxRenderFailed ErrorCode = "BOX_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeCompoundNotFound:    http.StatusNotFound,
	ErrCodeInvalidSMILES:       http.StatusBadRequest,
	ErrCodeAmbiguousNotation:   http.StatusBadRequest,
	ErrCodeResolverUnavailable: http.StatusServiceUnavailable,
	ErrCodeRecordUnavailable:   http.StatusNotFound,

	ErrCodeNoCoordinates:      http.StatusUnprocessableEntity,
	ErrCodeDegenerateGeometry: http.StatusUnprocessableEntity,
	ErrCodeMolfileParseFailed: http.StatusBadGateway,

	ErrCodeRenderFailed:      http.StatusInternalServerError,
	ErrCodeInvalidStyle:      http.StatusBadRequest,
	ErrCodeTemplateNotFound:  http.StatusNotFound,
	ErrCodeArtifactNotStored: http.StatusInternalServerError,

	ErrCodeInfoboxDataMissing:  http.StatusUnprocessableEntity,
	ErrCodeInfoboxRenderFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeStorageError:       "storage error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeCompoundNotFound:    "compound not found",
	ErrCodeInvalidSMILES:       "invalid SMILES notation",
	ErrCodeAmbiguousNotation:   "ambiguous structure notation",
	ErrCodeResolverUnavailable: "structure resolver unavailable",
	ErrCodeRecordUnavailable:   "structure record unavailable",

	ErrCodeNoCoordinates:      "molecule has no coordinates",
	ErrCodeDegenerateGeometry: "degenerate geometry",
	ErrCodeMolfileParseFailed: "failed to parse molfile",

	ErrCodeRenderFailed:      "rendering failed",
	ErrCodeInvalidStyle:      "invalid render style",
	ErrCodeTemplateNotFound:  "style template not found",
	ErrCodeArtifactNotStored: "failed to store rendered artifact",

	ErrCodeInfoboxDataMissing:  "insufficient data for infobox",
	ErrCodeInfoboxRenderFailed: "infobox generation failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode ("RES", "GEO", ...).
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
