package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "mingle/internal/platform/errors"
)

func echoPort() *Port {
	return NewPortFunc(func(token string) (string, error) {
		if token == "bad" {
			return "", errors.New("nope")
		}
		return "uid-" + token, nil
	})
}

func reqWithAuthz(v string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if v != "" {
		r.Header.Set("Authorization", v)
	}
	return r
}

func TestPortParse(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		fails  bool
	}{
		{"plain bearer", "Bearer abc", "uid-abc", false},
		{"lowercase scheme", "bearer abc", "uid-abc", false},
		{"extra spaces", "  Bearer   abc  ", "uid-abc", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"empty token", "Bearer   ", "", true},
		{"parser rejects", "Bearer bad", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uid, err := echoPort().Parse(reqWithAuthz(tc.header))
			if tc.fails {
				if !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
					t.Fatalf("want unauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if uid != tc.want {
				t.Fatalf("want %q, got %q", tc.want, uid)
			}
		})
	}
}

func TestPortNilParser(t *testing.T) {
	p := NewPortFunc(nil)
	if _, err := p.Parse(reqWithAuthz("Bearer abc")); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("nil parser must reject, got %v", err)
	}
}
