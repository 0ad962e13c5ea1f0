package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/dto"
)

func TestStatisticsColorPoll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	survey := f.colorPoll(t, owner)

	single := survey.Questions[0]
	red, blue, green := single.Choices[0], single.Choices[1], single.Choices[2]

	for i, choiceID := range []uint{red.ID, red.ID, blue.ID} {
		p := f.user(t, fmt.Sprintf("voter%d", i))
		resp := f.respond(t, p, survey.ID)
		err := f.responses.SubmitAnswers(ctx, responseScope(p), resp.ID, []dto.AnswerPayloadDTO{
			{Question: uintPtr(single.ID), ChoiceAnswer: []uint{choiceID}},
		})
		if err != nil {
			t.Fatalf("submit vote %d: %v", i, err)
		}
	}

	stats, err := f.statistics.GetStatistics(ctx, survey.ID)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.SurveyID != survey.ID || stats.TotalResponses != 3 {
		t.Fatalf("unexpected header: %+v", stats)
	}
	if len(stats.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(stats.Questions))
	}

	q := stats.Questions[0]
	if q.Type != "single" || q.TotalAnswers != 3 {
		t.Fatalf("unexpected question stats: %+v", q)
	}
	want := map[uint]struct {
		count int64
		pct   float64
	}{
		red.ID:   {2, 66.67},
		blue.ID:  {1, 33.33},
		green.ID: {0, 0},
	}
	if q.Choices == nil || q.SampleAnswers != nil {
		t.Fatalf("choice question should carry choices only: %+v", q)
	}
	for _, c := range *q.Choices {
		w := want[c.ID]
		if c.Count != w.count || c.Percentage != w.pct {
			t.Errorf("choice %s: count=%d pct=%v, want count=%d pct=%v", c.Text, c.Count, c.Percentage, w.count, w.pct)
		}
	}

	text := stats.Questions[1]
	if text.Type != "text" || text.TotalAnswers != 0 || text.SampleAnswers == nil || len(*text.SampleAnswers) != 0 || text.Choices != nil {
		t.Errorf("unexpected text question stats: %+v", text)
	}
}

func TestStatisticsWithoutAnswers(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	survey := f.colorPoll(t, owner)

	stats, err := f.statistics.GetStatistics(context.Background(), survey.ID)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalResponses != 0 {
		t.Errorf("total_responses = %d, want 0", stats.TotalResponses)
	}
	for _, q := range stats.Questions {
		if q.TotalAnswers != 0 {
			t.Errorf("question %d total_answers = %d, want 0", q.ID, q.TotalAnswers)
		}
		if q.Choices == nil {
			continue
		}
		for _, c := range *q.Choices {
			if c.Count != 0 || c.Percentage != 0 {
				t.Errorf("choice %d: count=%d pct=%v, want zeros", c.ID, c.Count, c.Percentage)
			}
		}
	}
}

func TestStatisticsSurveyWithoutQuestions(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	survey, err := f.surveys.CreateFlatSurvey(context.Background(), owner.UserID, dto.SurveyWriteDTO{Title: "Empty"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stats, err := f.statistics.GetStatistics(context.Background(), survey.ID)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.Questions == nil || len(stats.Questions) != 0 {
		t.Errorf("questions = %v, want empty list", stats.Questions)
	}
}

func TestStatisticsSampleAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	survey := f.colorPoll(t, owner)
	textQ := survey.Questions[1]

	answers := []string{"one", "", "two", "three", "four", "five", "six"}
	for i, text := range answers {
		p := f.user(t, fmt.Sprintf("writer%d", i))
		resp := f.respond(t, p, survey.ID)
		err := f.responses.SubmitAnswers(ctx, responseScope(p), resp.ID, []dto.AnswerPayloadDTO{
			{Question: uintPtr(textQ.ID), TextAnswer: strPtr(text)},
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	stats, err := f.statistics.GetStatistics(ctx, survey.ID)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	q := stats.Questions[1]
	if q.TotalAnswers != int64(len(answers)) {
		t.Errorf("total_answers = %d, want %d", q.TotalAnswers, len(answers))
	}
	wantSamples := []string{"one", "two", "three", "four", "five"}
	if q.SampleAnswers == nil || len(*q.SampleAnswers) != len(wantSamples) {
		t.Fatalf("sample_answers = %v, want %v", q.SampleAnswers, wantSamples)
	}
	samples := *q.SampleAnswers
	for i := range wantSamples {
		if samples[i] != wantSamples[i] {
			t.Errorf("sample[%d] = %q, want %q", i, samples[i], wantSamples[i])
		}
	}
}

func TestStatisticsEmptyListsAreSerialized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	survey, err := f.surveys.CreateSurvey(ctx, owner.UserID, dto.SurveyCreateDTO{
		Title: "Fresh",
		Questions: []dto.QuestionCreateDTO{
			{Text: "Why?", QuestionType: "text"},
			{Text: "Pick", QuestionType: "single"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stats, err := f.statistics.GetStatistics(ctx, survey.ID)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body struct {
		Questions []map[string]json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tests := []struct {
		key, absent string
	}{
		{"sample_answers", "choices"},
		{"choices", "sample_answers"},
	}
	for i, tt := range tests {
		q := body.Questions[i]
		if got := string(q[tt.key]); got != "[]" {
			t.Errorf("question %d: %s = %q, want []", i, tt.key, got)
		}
		if _, ok := q[tt.absent]; ok {
			t.Errorf("question %d: unexpected %s key", i, tt.absent)
		}
	}
}

func TestStatisticsUnknownSurvey(t *testing.T) {
	f := newFixture(t)
	if _, err := f.statistics.GetStatistics(context.Background(), 999); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		count, total int64
		want         float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{2, 3, 66.67},
		{1, 3, 33.33},
		{1, 6, 16.67},
		{3, 3, 100},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		if got := percentage(tt.count, tt.total); got != tt.want {
			t.Errorf("percentage(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
		}
	}
}
