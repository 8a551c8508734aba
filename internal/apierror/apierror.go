// Package apierror provides standardized error response structures for the API
// and the typed error taxonomy used by the transaction engine. All errors
// returned to clients go through this package to ensure consistency and to
// prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"fmt"
	"sort"
	"strings"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries field-scoped reasons so the caller can re-prompt for
// a single field (more cash, a different code) without re-entering the cart.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Validationf builds a single-field validation error.
func Validationf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: fmt.Sprintf(format, args...)}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// StockError means a sale line requested more than the available filled
// quantity. Fatal for the whole sale: no partial fulfillment, no backorder.
type StockError struct {
	VariantID string
	Available int64
	Requested int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %s: available %d, requested %d",
		e.VariantID, e.Available, e.Requested)
}

// ConfigurationError signals a deployment defect (unknown chart-of-accounts
// code, unbalanced ledger lines), never bad user input.
type ConfigurationError struct {
	Msg string
}

func Configurationf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string { return "configuration error: " + e.Msg }

// LockedPeriodError means the business date has already been closed and no
// further sales may be recorded against it.
type LockedPeriodError struct {
	BusinessDate string
}

func (e *LockedPeriodError) Error() string {
	return "sales are locked for business date " + e.BusinessDate
}
