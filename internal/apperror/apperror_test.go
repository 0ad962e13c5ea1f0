package apperror

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestFromLookup(t *testing.T) {
	if err := FromLookup(nil, "survey"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	err := FromLookup(gorm.ErrRecordNotFound, "survey")
	if !Is(err, KindNotFound) {
		t.Errorf("expected not found kind, got %v", KindOf(err))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected wrapped gorm.ErrRecordNotFound")
	}

	other := FromLookup(errors.New("connection reset"), "survey")
	if KindOf(other) != 0 {
		t.Errorf("expected plain error, got kind %v", KindOf(other))
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("submitting answers: %w", Integrity("Question does not belong to survey"))
	if !Is(err, KindIntegrity) {
		t.Fatalf("expected integrity kind through wrapping, got %v", KindOf(err))
	}
}

func TestFieldErrorsAdd(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("title", "This field is required.")
	fields.Add("title", "Ensure this field has no more than 200 characters.")
	if len(fields["title"]) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(fields["title"]))
	}
	if got := ValidationField("question", "bad").Fields["question"][0]; got != "bad" {
		t.Errorf("unexpected message %q", got)
	}
}
