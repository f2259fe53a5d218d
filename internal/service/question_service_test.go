package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/repository"
	"github.com/eximia/exams-backend/internal/rules"
	"github.com/eximia/exams-backend/internal/service"
)

func newQuestionFixture(t *testing.T) (*fixture, *service.QuestionService) {
	t.Helper()
	f := newFixture(t)
	qs := service.NewQuestionService(
		f.exams, f.questions, f.options,
		rules.DefaultRegistry(), zerolog.Nop(),
	)
	return f, qs
}

// multipleChoiceQuestion builds a pinned four-option question worth pts.
func multipleChoiceQuestion(pts float64) *model.QuestionRequest {
	return &model.QuestionRequest{
		QuestionText: "pick one",
		QuestionType: model.QuestionTypeMultipleChoice,
		Points:       pts,
		Options: []model.OptionRequest{
			{OptionText: "a", IsCorrect: true, Points: pts},
			{OptionText: "b"},
			{OptionText: "c"},
			{OptionText: "d"},
		},
	}
}

func TestQuestionService_CreateAppendsToExam(t *testing.T) {
	f, qs := newQuestionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("seed")))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	detail, err := qs.Create(context.Background(), exam.ID, multipleChoiceQuestion(10))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if detail.Points != 10 {
		t.Errorf("question points = %v, want 10", detail.Points)
	}
	if len(detail.Options) != 4 {
		t.Fatalf("got %d options, want 4", len(detail.Options))
	}
	if detail.Options[0].Points != 10 {
		t.Errorf("correct option points = %v, want 10", detail.Options[0].Points)
	}

	stored, err := f.exams.GetByID(context.Background(), exam.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.QuestionIDs) != 2 {
		t.Fatalf("exam has %d question ids, want 2", len(stored.QuestionIDs))
	}
	if stored.QuestionIDs[1] != detail.ID {
		t.Errorf("new question %s not appended to exam", detail.ID)
	}
}

func TestQuestionService_CreateRequiresPoints(t *testing.T) {
	f, qs := newQuestionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("seed")))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	req := multipleChoiceQuestion(0)
	if _, err := qs.Create(context.Background(), exam.ID, req); !errors.Is(err, service.ErrQuestionPointsRequired) {
		t.Fatalf("Create = %v, want %v", err, service.ErrQuestionPointsRequired)
	}
}

func TestQuestionService_CreateUnknownExam(t *testing.T) {
	_, qs := newQuestionFixture(t)

	if _, err := qs.Create(context.Background(), uuid.New(), multipleChoiceQuestion(10)); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Create = %v, want %v", err, repository.ErrNotFound)
	}
}

func TestQuestionService_UpdateReplacesOptions(t *testing.T) {
	f, qs := newQuestionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("seed")))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	questionID := exam.Questions[0].ID

	updated, err := qs.Update(context.Background(), questionID, multipleChoiceQuestion(10))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.QuestionType != model.QuestionTypeMultipleChoice {
		t.Errorf("question type = %s, want %s", updated.QuestionType, model.QuestionTypeMultipleChoice)
	}
	if len(updated.Options) != 4 {
		t.Fatalf("got %d options, want 4", len(updated.Options))
	}

	stored, err := f.options.ListByQuestionID(context.Background(), questionID)
	if err != nil {
		t.Fatalf("ListByQuestionID: %v", err)
	}
	if len(stored) != 4 {
		t.Errorf("stored options = %d, want 4 (old set not replaced)", len(stored))
	}
}

func TestQuestionService_DeleteDetachesFromExam(t *testing.T) {
	f, qs := newQuestionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(
		trueFalseQuestion("keep"),
		trueFalseQuestion("drop"),
	))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	dropID := exam.Questions[1].ID

	if err := qs.Delete(context.Background(), dropID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got := len(f.questions.Rows); got != 1 {
		t.Errorf("stored questions = %d, want 1", got)
	}
	if got := len(f.options.Rows); got != 2 {
		t.Errorf("stored options = %d, want 2", got)
	}

	stored, err := f.exams.GetByID(context.Background(), exam.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.QuestionIDs) != 1 {
		t.Fatalf("exam has %d question ids, want 1", len(stored.QuestionIDs))
	}
	if stored.QuestionIDs[0] == dropID {
		t.Errorf("deleted question %s still referenced by exam", dropID)
	}
}

func TestQuestionService_ListByExam(t *testing.T) {
	f, qs := newQuestionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(
		trueFalseQuestion("one"),
		trueFalseQuestion("two"),
	))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	details, err := qs.ListByExam(context.Background(), exam.ID)
	if err != nil {
		t.Fatalf("ListByExam: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("got %d questions, want 2", len(details))
	}
	for _, d := range details {
		if len(d.Options) != 2 {
			t.Errorf("question %s has %d options, want 2", d.ID, len(d.Options))
		}
	}
}
