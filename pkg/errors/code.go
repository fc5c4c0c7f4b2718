package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: Common errors (shared with the fake backend)
// 12000-12999: Problem errors
// 20000-20099: Catalog client errors
// 20100-20199: Session guard errors
// 20200-20299: Submit errors
// 20300-20399: Job status errors
// 20400-20499: Transport errors

const (
	// ========== Common Errors (10000-10999) ==========

	Success ErrorCode = 10000

	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002
	NotFound            ErrorCode = 10003
	ServiceUnavailable  ErrorCode = 10007
	Timeout             ErrorCode = 10008

	CacheError ErrorCode = 10200

	ValidationFailed ErrorCode = 10300

	// ========== Problem Errors (12000-12999) ==========

	ProblemNotFound ErrorCode = 12000

	// ========== Client Errors (20000-20999) ==========

	// Catalog (20000-20099)
	CatalogLoadFailed ErrorCode = 20000
	CatalogMalformed  ErrorCode = 20001

	// Session guards (20100-20199)
	NoProblemSelected    ErrorCode = 20100
	LanguageNotSupported ErrorCode = 20101

	// Submit (20200-20299)
	SubmitFailed ErrorCode = 20200
	MissingJobID ErrorCode = 20201

	// Job status (20300-20399)
	StatusQueryFailed ErrorCode = 20300
	JobFailed         ErrorCode = 20301

	// Transport (20400-20499)
	UnexpectedStatus ErrorCode = 20400
	InvalidResponse  ErrorCode = 20401
)

var errorMessages = map[ErrorCode]string{
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	NotFound:            "Resource not found",
	ServiceUnavailable:  "Service temporarily unavailable",
	Timeout:             "Request timeout",
	CacheError:          "Cache operation failed",
	ValidationFailed:    "Validation failed",

	ProblemNotFound: "Problem not found",

	CatalogLoadFailed: "Failed to load problem catalog",
	CatalogMalformed:  "Problem catalog response is malformed",

	NoProblemSelected:    "No problem selected",
	LanguageNotSupported: "Programming language not supported",

	SubmitFailed: "Failed to submit code",
	MissingJobID: "Submit response carries no job id",

	StatusQueryFailed: "Failed to query job status",
	JobFailed:         "Job failed",

	UnexpectedStatus: "Unexpected HTTP status",
	InvalidResponse:  "Invalid response body",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// HTTPStatus returns the recommended HTTP status code for the error code
func (c ErrorCode) HTTPStatus() int {
	switch {
	case c == Success:
		return 200
	case c == NotFound, c == ProblemNotFound:
		return 404
	case c == ServiceUnavailable:
		return 503
	case c == Timeout:
		return 504
	case c == InvalidParams, c == ValidationFailed, c == LanguageNotSupported:
		return 400
	case c >= 20400 && c < 20500: // Upstream transport errors
		return 502
	default:
		return 500
	}
}
