package core

import (
	"testing"

	"github.com/pkg/errors"
)

func TestConflictError(t *testing.T) {
	err := NewConflictError("an identity with this email already exists")
	if !IsConflict(err) {
		t.Error("IsConflict() = false; want true")
	}
	if !IsConflict(errors.Wrap(err, "creating identity")) {
		t.Error("IsConflict() through a wrapped chain = false; want true")
	}
	if IsConflict(errors.New("boom")) {
		t.Error("IsConflict() on an unrelated error = true; want false")
	}
	if err.Error() != "an identity with this email already exists" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDependencyError(t *testing.T) {
	inner := errors.New("pq: connection refused on 10.0.0.3:5432")
	err := NewDependencyError(inner, "database unreachable")

	if !IsDependency(err) {
		t.Error("IsDependency() = false; want true")
	}
	if IsDependency(inner) {
		t.Error("IsDependency() on the raw store error = true; want false")
	}
	if err.Error() != "database unreachable" {
		t.Errorf("Error() = %q; must not leak the store detail", err.Error())
	}
	if got := err.(*DependencyError).Unwrap(); got != inner {
		t.Errorf("Unwrap() = %v; want the store error", got)
	}
}
