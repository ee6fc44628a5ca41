package util

import "testing"

func TestValidateRequired(t *testing.T) {
	err := Validate(
		Rule{Field: "firstName", Value: "Ann", Checks: []Check{Required}},
		Rule{Field: "lastName", Value: "  ", Checks: []Check{Required}},
	)
	if err == nil {
		t.Fatalf("expected blank lastName to fail")
	}
	if err.Error() != "lastName is required" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	for _, email := range []string{"ann@x.com", "a.b@c.co.uk"} {
		if err := Validate(Rule{Field: "email", Value: email, Checks: []Check{Required, EmailFormat}}); err != nil {
			t.Fatalf("expected %q to pass, got %v", email, err)
		}
	}
	for _, email := range []string{"ann", "ann@", "@x.com", "a b@x.com", "ann@x"} {
		if err := Validate(Rule{Field: "email", Value: email, Checks: []Check{Required, EmailFormat}}); err == nil {
			t.Fatalf("expected %q to fail", email)
		}
	}
}

func TestValidateMinLen(t *testing.T) {
	if err := Validate(Rule{Field: "password", Value: "short", Checks: []Check{Required, MinLen(6)}}); err == nil {
		t.Fatalf("expected five-character password to fail")
	}
	if err := Validate(Rule{Field: "password", Value: "secret1", Checks: []Check{Required, MinLen(6)}}); err != nil {
		t.Fatalf("expected valid password to pass, got %v", err)
	}
}
