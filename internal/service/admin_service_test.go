package service

import (
	"context"
	"testing"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/model"
)

func TestQuestionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	survey := f.colorPoll(t, owner)

	if _, err := f.questions.ListQuestions(ctx, 404); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("unknown survey: expected not found, got %v", err)
	}

	q, err := f.questions.CreateQuestion(ctx, survey.ID, dto.QuestionWriteDTO{Text: "First?", QuestionType: "text", Order: 0})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	list, err := f.questions.ListQuestions(ctx, survey.ID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(list) != 3 || list[0].ID != q.ID {
		t.Fatalf("expected new order-0 question first, got %+v", list)
	}

	patched, err := f.questions.PatchQuestion(ctx, survey.ID, q.ID, dto.QuestionPatchDTO{IsRequired: boolPtr(true)})
	if err != nil {
		t.Fatalf("PatchQuestion: %v", err)
	}
	if !patched.IsRequired || patched.Text != "First?" {
		t.Errorf("patch changed wrong fields: %+v", patched)
	}

	other := f.colorPoll(t, owner)
	if _, err := f.questions.GetQuestion(ctx, other.ID, q.ID); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("question through foreign survey: expected not found, got %v", err)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	respondent := f.user(t, "respondent")
	survey := f.colorPoll(t, owner)
	single, text := survey.Questions[0], survey.Questions[1]

	resp := f.respond(t, respondent, survey.ID)
	err := f.responses.SubmitAnswers(ctx, responseScope(respondent), resp.ID, []dto.AnswerPayloadDTO{
		{Question: uintPtr(single.ID), ChoiceAnswer: []uint{single.Choices[0].ID}},
		{Question: uintPtr(text.ID), TextAnswer: strPtr("Because")},
	})
	if err != nil {
		t.Fatalf("SubmitAnswers: %v", err)
	}

	if err := f.questions.DeleteQuestion(ctx, survey.ID, single.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if got := f.count(t, "choices"); got != 0 {
		t.Errorf("choices = %d, want 0", got)
	}
	if got := f.count(t, model.AnswerChoicesTable); got != 0 {
		t.Errorf("answer_choices = %d, want 0", got)
	}
	if got := f.count(t, "answers"); got != 1 {
		t.Errorf("answers = %d, want only the text answer", got)
	}
	if got := f.count(t, "responses"); got != 1 {
		t.Errorf("responses = %d, want 1", got)
	}
}

func TestChoiceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	respondent := f.user(t, "respondent")
	survey := f.colorPoll(t, owner)
	single, text := survey.Questions[0], survey.Questions[1]

	if _, err := f.choices.CreateChoice(ctx, text.ID, dto.ChoiceWriteDTO{Text: "nope"}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("choice on text question: expected validation error, got %v", err)
	}
	if _, err := f.choices.ListChoices(ctx, 404); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("unknown question: expected not found, got %v", err)
	}

	purple, err := f.choices.CreateChoice(ctx, single.ID, dto.ChoiceWriteDTO{Text: "Purple", Value: strPtr("p")})
	if err != nil {
		t.Fatalf("CreateChoice: %v", err)
	}
	updated, err := f.choices.UpdateChoice(ctx, single.ID, purple.ID, dto.ChoiceWriteDTO{Text: "Violet"})
	if err != nil {
		t.Fatalf("UpdateChoice: %v", err)
	}
	if updated.Text != "Violet" || updated.Value != nil {
		t.Errorf("PUT should replace value too: %+v", updated)
	}

	resp := f.respond(t, respondent, survey.ID)
	err = f.responses.SubmitAnswers(ctx, responseScope(respondent), resp.ID, []dto.AnswerPayloadDTO{
		{Question: uintPtr(single.ID), ChoiceAnswer: []uint{purple.ID}},
	})
	if err != nil {
		t.Fatalf("SubmitAnswers: %v", err)
	}

	if err := f.choices.DeleteChoice(ctx, single.ID, purple.ID); err != nil {
		t.Fatalf("DeleteChoice: %v", err)
	}
	if got := f.count(t, model.AnswerChoicesTable); got != 0 {
		t.Errorf("answer_choices = %d, want 0", got)
	}
	if got := f.count(t, "answers"); got != 1 {
		t.Errorf("the answer itself survives a choice delete, got %d", got)
	}

	list, err := f.choices.ListChoices(ctx, single.ID)
	if err != nil {
		t.Fatalf("ListChoices: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("choices = %d, want 3", len(list))
	}
}
