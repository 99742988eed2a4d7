package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("User already exists")
	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("Token is not valid")
	// ErrNotOwner is returned when a valid identity mutates a resource it does not own.
	ErrNotOwner = errors.New("User is not authorized")
	// ErrProfileNotFound is returned when no profile exists for a user.
	ErrProfileNotFound = errors.New("there is no profile for this user")
	// ErrPostNotFound is returned when a post id does not resolve.
	ErrPostNotFound = errors.New("there is no post with this id")
	// ErrCommentNotFound is returned when a comment id is absent on a post.
	ErrCommentNotFound = errors.New("There is no comment on this post")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyLiked is returned on a duplicate like for the same (post, user).
	ErrAlreadyLiked = errors.New("Post already liked")
	// ErrNotLiked is returned when unliking a post that was never liked.
	ErrNotLiked = errors.New("Post has not yet been liked")
)

// FieldError carries a per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field failures for a request body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Fields[0].Message)
}

// NewValidation builds a ValidationError from field/message pairs.
func NewValidation(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StoreError wraps a failure talking to the resource store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError for operation op.
func Store(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// Status maps a domain error to the HTTP status the API reports.
// The reference API reports ownership failures as 401 and most missing
// resources as 400; only a missing comment is a 404.
func Status(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAlreadyLiked),
		errors.Is(err, ErrNotLiked):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrNotOwner):
		return http.StatusUnauthorized
	case errors.Is(err, ErrCommentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
