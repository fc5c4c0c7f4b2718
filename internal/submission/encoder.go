package submission

import (
	"encoding/base64"
	"strings"

	appErr "ojplay/pkg/errors"
)

const (
	DefaultUserID        = "user1"
	DefaultTimeoutMs     = 5000
	DefaultMemoryLimitMB = 128
)

// Request is the execution request body.
type Request struct {
	ProblemID     int64  `json:"problemId"`
	Code          string `json:"code"`
	Language      string `json:"language"`
	Extension     string `json:"extension"`
	UserID        string `json:"userId"`
	TimeoutMs     int    `json:"timeout"`
	MemoryLimitMB int    `json:"memoryLimit"`
}

// Encoder attaches the fixed operational limits to every request.
type Encoder struct {
	UserID        string
	TimeoutMs     int
	MemoryLimitMB int
}

// NewEncoder returns an encoder carrying the default limits.
func NewEncoder() *Encoder {
	return &Encoder{
		UserID:        DefaultUserID,
		TimeoutMs:     DefaultTimeoutMs,
		MemoryLimitMB: DefaultMemoryLimitMB,
	}
}

// Encode builds the request for source written in language.
func (e *Encoder) Encode(problemID int64, source, language string) Request {
	return Request{
		ProblemID:     problemID,
		Code:          EncodeSource(source),
		Language:      language,
		Extension:     Extension(language),
		UserID:        e.UserID,
		TimeoutMs:     e.TimeoutMs,
		MemoryLimitMB: e.MemoryLimitMB,
	}
}

// EncodeSource turns source text into its transport form.
func EncodeSource(source string) string {
	return base64.StdEncoding.EncodeToString([]byte(source))
}

// DecodeSource reverses EncodeSource.
func DecodeSource(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", appErr.Wrapf(err, appErr.InvalidParams, "code is not valid base64")
	}
	return string(raw), nil
}

// Validate checks the fields the executor rejects outright.
func (r Request) Validate() error {
	if r.ProblemID <= 0 {
		return appErr.ValidationError("problemId", "must be positive")
	}
	if r.Code == "" {
		return appErr.ValidationError("code", "required")
	}
	if r.Language == "" {
		return appErr.ValidationError("language", "required")
	}
	return nil
}
