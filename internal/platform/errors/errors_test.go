package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestCodeOfAndIsCode(t *testing.T) {
	err := Conflictf("already registered")
	if CodeOf(err) != ErrorCodeConflict {
		t.Fatalf("want conflict code, got %d", CodeOf(err))
	}
	if !IsCode(err, ErrorCodeConflict) {
		t.Fatal("IsCode should match")
	}
	if IsCode(err, ErrorCodeNotFound) {
		t.Fatal("IsCode should not match a different code")
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatal("non-project errors read as unknown")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("bad"), http.StatusBadRequest},
		{InvalidArgf("bad"), http.StatusUnprocessableEntity},
		{NotFoundf("gone"), http.StatusNotFound},
		{Conflictf("taken"), http.StatusConflict},
		{Unauthorizedf("no"), http.StatusUnauthorized},
		{TooManyRequestsf("slow down"), http.StatusTooManyRequests},
		{Unavailablef("down"), http.StatusServiceUnavailable},
		{Configf("missing key"), http.StatusInternalServerError},
		{stderrs.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrs.New("root")
	err := Wrap(cause, ErrorCodeUnavailable, "upstream failed")
	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped cause should survive errors.Is")
	}
	if CodeOf(err) != ErrorCodeUnavailable {
		t.Fatalf("want unavailable, got %d", CodeOf(err))
	}
}

func TestWithFieldAndWire(t *testing.T) {
	err := WithField(Validationf("too short"), "name")
	e, ok := As(err)
	if !ok {
		t.Fatal("want project error")
	}
	if e.Field() != "name" {
		t.Fatalf("want field name, got %q", e.Field())
	}
	w := WireFrom(err)
	if w.Code != ErrorCodeValidation || w.Field != "name" {
		t.Fatalf("unexpected wire: %+v", w)
	}
}

func TestWithOpPreservesCode(t *testing.T) {
	err := WithOp(NotFoundf("gone"), "attendees.get")
	if !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("op annotation must not change the code, got %v", err)
	}
	e, _ := As(err)
	if e.Op() != "attendees.get" {
		t.Fatalf("want op, got %q", e.Op())
	}
}
