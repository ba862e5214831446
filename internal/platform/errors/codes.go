// Package errors provides structured errors with machine-readable codes.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Tab rejections
	CodeTabNotOpen              Code = "TAB_NOT_OPEN"
	CodeTabDrinksNotOutstanding Code = "TAB_DRINKS_NOT_OUTSTANDING"
	CodeTabFoodNotOutstanding   Code = "TAB_FOOD_NOT_OUTSTANDING"

	// Storage errors
	CodeTabNotFound        Code = "TAB_NOT_FOUND"
	CodeTabVersionConflict Code = "TAB_VERSION_CONFLICT"

	// Request errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
)

// GRPCCode maps a domain code to its gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeTabNotOpen, CodeTabDrinksNotOutstanding, CodeTabFoodNotOutstanding:
		return codes.FailedPrecondition
	case CodeTabNotFound:
		return codes.NotFound
	case CodeTabVersionConflict:
		return codes.Aborted
	case CodeInvalidArgument:
		return codes.InvalidArgument
	case CodeInternal:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// HTTPStatus maps a domain code to an HTTP status.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.FailedPrecondition, codes.Aborted:
		return http.StatusConflict
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
