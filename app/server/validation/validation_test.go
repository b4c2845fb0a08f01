package validation

import (
	"testing"
)

type sample struct {
	Username string   `json:"username" validate:"required,username,max=39"`
	Body     string   `json:"body" validate:"notblank,max=10"`
	Lang     string   `json:"lang" validate:"lang"`
	Tags     []string `json:"tags" validate:"omitempty,dive,notblank"`
	Limit    int      `query:"limit" validate:"min=1,max=20"`
}

func TestValidate(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	ok := sample{Username: "some_user-1", Body: "hello", Lang: "en", Tags: []string{"go"}, Limit: 20}
	if err := v.Validate(&ok); err != nil {
		t.Fatalf("valid sample rejected: %v", err)
	}

	bad := sample{Username: "no spaces", Body: "   ", Lang: "xx", Tags: []string{" "}, Limit: 21}
	err = v.Validate(&bad)
	if err == nil {
		t.Fatal("invalid sample accepted")
	}

	fields := Fields(err)
	for _, name := range []string{"username", "body", "lang", "limit"} {
		if fields[name] == "" {
			t.Errorf("missing message for %s in %v", name, fields)
		}
	}
	if fields["lang"] != "lang is not a supported language" {
		t.Errorf("unexpected lang message %q", fields["lang"])
	}
}

func TestFieldsOfOtherErrors(t *testing.T) {
	if Fields(nil) != nil {
		t.Error("expected nil fields for nil error")
	}
}
