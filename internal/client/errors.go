package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	avatarsvc "github.com/janisto/intern-portal/internal/service/avatar"
	profilesvc "github.com/janisto/intern-portal/internal/service/profile"
)

// Client errors. Validation, too-large and unsupported-type failures surface as the
// service packages' own errors.
var (
	ErrNetwork          = errors.New("network error")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
)

// UpstreamError carries the problem details of a failed API response.
type UpstreamError struct {
	Status int
	Title  string
	Detail string
	cause  error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("portal api error (status=%d)", e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap enables errors.Is/As against sentinel errors.
func (e *UpstreamError) Unwrap() error {
	return e.cause
}

// errorFromResponse maps a non-2xx response to a typed error.
func errorFromResponse(resp *http.Response) error {
	var problem huma.ErrorModel
	_ = json.NewDecoder(resp.Body).Decode(&problem)

	up := &UpstreamError{Status: resp.StatusCode, Title: problem.Title, Detail: problem.Detail}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		up.cause = ErrNotAuthenticated
	case http.StatusForbidden:
		up.cause = ErrForbidden
	case http.StatusNotFound:
		up.cause = profilesvc.ErrNotFound
	case http.StatusConflict:
		up.cause = profilesvc.ErrAlreadyExists
	case http.StatusRequestEntityTooLarge:
		up.cause = avatarsvc.ErrTooLarge
	case http.StatusUnsupportedMediaType:
		up.cause = avatarsvc.ErrUnsupportedType
	case http.StatusUnprocessableEntity:
		up.cause = validationError(problem)
	default:
		up.cause = ErrNetwork
	}
	return up
}

// validationError converts huma error details into field errors. Locations look like
// "body.fullName".
func validationError(problem huma.ErrorModel) *profilesvc.ValidationError {
	verr := &profilesvc.ValidationError{}
	for _, d := range problem.Errors {
		if d == nil {
			continue
		}
		field := strings.TrimPrefix(d.Location, "body.")
		verr.Fields = append(verr.Fields, profilesvc.FieldError{Field: field, Message: d.Message})
	}
	if len(verr.Fields) == 0 {
		verr.Fields = []profilesvc.FieldError{{Message: problem.Detail}}
	}
	return verr
}
