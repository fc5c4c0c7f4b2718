// Package testutil holds assertion helpers shared by package tests.
package testutil

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// AssertEqual checks if two values are deeply equal
func AssertEqual(t testing.TB, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// AssertNil checks if a value is nil
func AssertNil(t testing.TB, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Errorf("expected nil, got %v", value)
	}
}

// AssertNotNil checks if a value is not nil
func AssertNotNil(t testing.TB, value interface{}) {
	t.Helper()
	if isNil(value) {
		t.Error("expected non-nil value, got nil")
	}
}

// AssertTrue checks if a condition is true. The message is optional.
func AssertTrue(t testing.TB, condition bool, msgs ...string) {
	t.Helper()
	if !condition {
		t.Errorf("assertion failed: %s", describe("expected true", msgs))
	}
}

// AssertFalse checks if a condition is false. The message is optional.
func AssertFalse(t testing.TB, condition bool, msgs ...string) {
	t.Helper()
	if condition {
		t.Errorf("assertion failed: %s", describe("expected false", msgs))
	}
}

func describe(fallback string, msgs []string) string {
	if len(msgs) == 0 {
		return fallback
	}
	return strings.Join(msgs, " ")
}

// MustMarshalJSON marshals an object to JSON or fails the test
func MustMarshalJSON(t testing.TB, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}

// MustUnmarshalJSON unmarshals JSON data or fails the test
func MustUnmarshalJSON(t testing.TB, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
}

// NewMiniRedis starts an in-process redis that is closed with the test.
func NewMiniRedis(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	return miniredis.RunT(t)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
