package validation

import (
	"testing"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

func TestRun_Valid(t *testing.T) {
	errs := Run(
		Field{Name: "title", Value: "something", Rules: []ozzo.Rule{ozzo.Required}},
	)
	if errs != nil {
		t.Fatalf("expected nil, got %v", errs)
	}
}

func TestRun_KeepsDeclarationOrder(t *testing.T) {
	errs := Run(
		Field{Name: "zeta", Value: "", Rules: []ozzo.Rule{ozzo.Required}},
		Field{Name: "alpha", Value: "", Rules: []ozzo.Rule{ozzo.Required}},
		Field{Name: "mid", Value: "ok", Rules: []ozzo.Rule{ozzo.Required}},
		Field{Name: "beta", Value: "", Rules: []ozzo.Rule{ozzo.Required}},
	)

	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	want := []string{"zeta", "alpha", "beta"}
	for i, name := range want {
		if errs[i].Field != name {
			t.Errorf("position %d: expected %s, got %s", i, name, errs[i].Field)
		}
	}
}

func TestRun_CustomMessages(t *testing.T) {
	errs := Run(
		Field{Name: "title", Value: "", Rules: []ozzo.Rule{ozzo.Required.Error("Please add a podcast title")}},
	)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Message != "Please add a podcast title" {
		t.Errorf("unexpected message %q", errs[0].Message)
	}
}

func TestRun_FirstViolatedRuleWins(t *testing.T) {
	errs := Run(
		Field{Name: "youtubeUrl", Value: "", Rules: []ozzo.Rule{
			ozzo.Required.Error("Please add a YouTube link"),
			ozzo.Length(10, 0).Error("too short"),
		}},
	)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Message != "Please add a YouTube link" {
		t.Errorf("expected the required message, got %q", errs[0].Message)
	}
}
