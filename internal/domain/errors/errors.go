package errors

import (
	"net/http"

	"speakit/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"회원 정보를 찾을 수 없습니다.",
		"",
	)

	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"사용할 수 없는 이메일입니다. 다른 이메일을 입력해 주세요.",
		"",
	)

	// Authentication-related errors. The credentials message is deliberately
	// generic so it never reveals which field was wrong.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"입력하신 이메일 또는 비밀번호가 올바르지 않습니다. 다시 시도해 주세요.",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"유효하지 않은 토큰입니다.",
		"",
	)

	ErrCurrentPasswordMismatch = NewBaseError(
		http.StatusUnauthorized,
		"CURRENT_PASSWORD_MISMATCH",
		"현재 비밀번호가 올바르지 않습니다.",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"비밀번호 처리 중 오류가 발생했습니다.",
		"",
	)

	// Profile-related errors
	ErrSocialAccountUpdateForbidden = NewBaseError(
		http.StatusForbidden,
		"SOCIAL_ACCOUNT_UPDATE_FORBIDDEN",
		"소셜 로그인 사용자는 회원정보 수정이 불가합니다.",
		"",
	)

	// Provider-integration errors
	ErrProviderExchangeFailed = NewBaseError(
		http.StatusBadGateway,
		"PROVIDER_EXCHANGE_FAILED",
		"소셜 로그인 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요.",
		"",
	)

	ErrProviderUserInfoFailed = NewBaseError(
		http.StatusBadGateway,
		"PROVIDER_USERINFO_FAILED",
		"소셜 계정 정보를 가져오지 못했습니다. 잠시 후 다시 시도해 주세요.",
		"",
	)

	ErrProviderEmailMissing = NewBaseError(
		http.StatusBadGateway,
		"PROVIDER_EMAIL_MISSING",
		"소셜 계정에서 이메일 정보를 확인할 수 없습니다.",
		"",
	)

	ErrProviderRevokeFailed = NewBaseError(
		http.StatusBadGateway,
		"PROVIDER_REVOKE_FAILED",
		"소셜 계정 연동 해제에 실패했습니다. 잠시 후 다시 시도해 주세요.",
		"",
	)

	ErrUnsupportedOperation = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_OPERATION",
		"지원하지 않는 요청입니다.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"입력값이 올바르지 않습니다.",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"데이터베이스 트랜잭션에 실패했습니다.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"서버 내부 오류가 발생했습니다.",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"접근 권한이 없습니다.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"요청하신 리소스를 찾을 수 없습니다.",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "데이터베이스 처리 중 오류가 발생했습니다."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
