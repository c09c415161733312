package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindDependency   ErrorKind = "dependency_failure"
	KindInternal     ErrorKind = "internal"
)

// Error is the error type every service returns. Kind is machine checkable,
// Message is safe to show to clients and Err keeps the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// DependencyFailure wraps a store or media store failure.
func DependencyFailure(message string, err error) *Error {
	return Wrap(KindDependency, message, err)
}

func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageUserNotAllowed       = "user not allowed"

	ErrInvalidID          = NewError(KindValidation, "invalid id")
	ErrTokenNotFound      = NewError(KindUnauthorized, "missing bearer token")
	ErrTokenInvalid       = NewError(KindUnauthorized, "invalid token")
	ErrTokenExpired       = NewError(KindUnauthorized, "token expired")
	ErrTokenRevoked       = NewError(KindUnauthorized, "token revoked")
	ErrEmailClaimMissing  = NewError(KindUnauthorized, "email not found in token")
	ErrAdminOnly          = NewError(KindForbidden, "admin access required")
	ErrInvalidRating      = NewError(KindValidation, "rating must be between 1 and 5 stars")
	ErrInvalidImage       = NewError(KindValidation, "invalid image payload")
	ErrUnsupportedImage   = NewError(KindValidation, "unsupported image type")
	ErrImageUploadFailed  = NewError(KindDependency, "failed to upload image")
	ErrInvalidQueryString = NewError(KindValidation, "query must not be empty")
)

const (
	MinStars = 1
	MaxStars = 5
)

// Claims is the verified identity handed over by an identity provider.
type Claims struct {
	Email       string
	SubjectID   string
	DisplayName string
	Avatar      string
}

func (c Claims) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmailClaimMissing
	}
	return nil
}

// ImagePayload is an image about to be handed to the media store.
type ImagePayload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// DecodeBase64Image accepts raw base64 or a data URL ("data:image/png;base64,...").
func DecodeBase64Image(encoded, mime string) (*ImagePayload, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrInvalidImage
	}
	if strings.HasPrefix(encoded, "data:") {
		header, body, ok := strings.Cut(encoded, ",")
		if !ok {
			return nil, ErrInvalidImage
		}
		if mime == "" {
			mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		encoded = body
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, Wrap(KindValidation, ErrInvalidImage.Message, err)
	}
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}
	if mime == "" {
		mime = "image/jpeg"
	}
	return &ImagePayload{Data: data, ContentType: mime}, nil
}

func ValidateStars(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return ErrInvalidRating
	}
	return nil
}

// IsMilestone reports whether a counter that just changed to count crossed a
// multiple of five.
func IsMilestone(count int) bool {
	return count > 0 && count%5 == 0
}
