package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("execute: %w", New(CodeTabNotOpen, "tab is not open"))
	if !stderrors.Is(err, New(CodeTabNotOpen, "")) {
		t.Fatal("expected match by code")
	}
	if stderrors.Is(err, New(CodeTabNotFound, "")) {
		t.Fatal("unexpected match for different code")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeInternal, "append events", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("x: %w", New(CodeTabVersionConflict, "conflict"))); got != CodeTabVersionConflict {
		t.Fatalf("code = %s, want %s", got, CodeTabVersionConflict)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %s, want %s", got, CodeUnknown)
	}
}

func TestCodeMappings(t *testing.T) {
	tests := []struct {
		code Code
		grpc codes.Code
		http int
	}{
		{CodeTabNotOpen, codes.FailedPrecondition, http.StatusConflict},
		{CodeTabDrinksNotOutstanding, codes.FailedPrecondition, http.StatusConflict},
		{CodeTabFoodNotOutstanding, codes.FailedPrecondition, http.StatusConflict},
		{CodeTabNotFound, codes.NotFound, http.StatusNotFound},
		{CodeTabVersionConflict, codes.Aborted, http.StatusConflict},
		{CodeInvalidArgument, codes.InvalidArgument, http.StatusBadRequest},
		{CodeInternal, codes.Internal, http.StatusInternalServerError},
		{CodeUnknown, codes.Unknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.grpc {
			t.Fatalf("%s grpc = %v, want %v", tc.code, got, tc.grpc)
		}
		if got := tc.code.HTTPStatus(); got != tc.http {
			t.Fatalf("%s http = %d, want %d", tc.code, got, tc.http)
		}
	}
}

func TestGRPCStatusFromError(t *testing.T) {
	err := fmt.Errorf("execute: %w", New(CodeTabNotFound, "tab not found"))
	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("code = %v, want %v", st.Code(), codes.NotFound)
	}
}
