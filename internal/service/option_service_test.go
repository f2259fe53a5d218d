package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/repository"
	"github.com/eximia/exams-backend/internal/service"
)

func newOptionFixture(t *testing.T) (*fixture, *service.OptionService) {
	t.Helper()
	f := newFixture(t)
	os := service.NewOptionService(f.questions, f.options, zerolog.Nop())
	return f, os
}

func TestOptionService_Update(t *testing.T) {
	f, os := newOptionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("seed")))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	target := exam.Questions[0].Options[0]

	updated, err := os.Update(context.Background(), target.ID, &model.OptionRequest{
		OptionText: "Definitely true",
		IsCorrect:  true,
		Points:     30,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.OptionText != "Definitely true" {
		t.Errorf("option text = %q", updated.OptionText)
	}
	if updated.Points != 30 {
		t.Errorf("points = %v, want 30", updated.Points)
	}
}

func TestOptionService_UpdateKeepsPointsWhenUnset(t *testing.T) {
	f, os := newOptionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("seed")))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	target := exam.Questions[0].Options[0]

	updated, err := os.Update(context.Background(), target.ID, &model.OptionRequest{
		OptionText: "Still true",
		IsCorrect:  true,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Points != target.Points {
		t.Errorf("points = %v, want %v", updated.Points, target.Points)
	}
}

func TestOptionService_DeleteDetachesFromQuestion(t *testing.T) {
	f, os := newOptionFixture(t)

	exam, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("seed")))
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	question := exam.Questions[0]
	target := question.Options[0]

	if err := os.Delete(context.Background(), target.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got := len(f.options.Rows); got != 1 {
		t.Errorf("stored options = %d, want 1", got)
	}
	stored, err := f.questions.GetByID(context.Background(), question.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.OptionIDs) != 1 {
		t.Fatalf("question has %d option ids, want 1", len(stored.OptionIDs))
	}
	if stored.OptionIDs[0] == target.ID {
		t.Errorf("deleted option %s still referenced by question", target.ID)
	}
}

func TestOptionService_GetUnknown(t *testing.T) {
	_, os := newOptionFixture(t)

	if _, err := os.GetByID(context.Background(), uuid.New()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByID = %v, want %v", err, repository.ErrNotFound)
	}
}
