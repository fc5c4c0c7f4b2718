package testutil

import (
	"fmt"
	"testing"
)

type recorder struct {
	testing.TB
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestAssertTrueMessageIsOptional(t *testing.T) {
	rec := &recorder{TB: t}
	AssertTrue(rec, true)
	AssertFalse(rec, false)
	AssertTrue(rec, true, "with message")
	if len(rec.errors) != 0 {
		t.Fatalf("unexpected failures: %v", rec.errors)
	}

	AssertTrue(rec, false)
	AssertFalse(rec, true, "should be false")
	want := []string{"assertion failed: expected true", "assertion failed: should be false"}
	AssertEqual(t, rec.errors, want)
}
