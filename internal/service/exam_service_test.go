package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/points"
	"github.com/eximia/exams-backend/internal/rules"
	"github.com/eximia/exams-backend/internal/service"
	"github.com/eximia/exams-backend/internal/service/servicetest"
)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	created []model.Exam
	failed  []error
}

func (p *capturePublisher) PublishCreated(_ context.Context, exam *model.Exam) {
	p.created = append(p.created, *exam)
}

func (p *capturePublisher) PublishFailed(_ context.Context, _ string, cause error) {
	p.failed = append(p.failed, cause)
}

type fixture struct {
	exams     *servicetest.MemExams
	questions *servicetest.MemQuestions
	options   *servicetest.MemOptions
	publisher *capturePublisher
	svc       *service.ExamService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		exams:     &servicetest.MemExams{},
		questions: &servicetest.MemQuestions{},
		options:   &servicetest.MemOptions{},
		publisher: &capturePublisher{},
	}
	f.svc = service.NewExamService(
		f.exams, f.questions, f.options,
		rules.DefaultRegistry(), f.publisher,
		100, 60, zerolog.Nop(),
	)
	return f
}

// trueFalseQuestion builds an unassigned true/false question; the
// distribution engine fills in all points.
func trueFalseQuestion(text string) model.QuestionRequest {
	return model.QuestionRequest{
		QuestionText: text,
		QuestionType: model.QuestionTypeTrueFalse,
		Options: []model.OptionRequest{
			{OptionText: "True", IsCorrect: true},
			{OptionText: "False"},
		},
	}
}

// multipleSelectionQuestion builds an unassigned three-option question with
// every option correct.
func multipleSelectionQuestion(text string) model.QuestionRequest {
	return model.QuestionRequest{
		QuestionText: text,
		QuestionType: model.QuestionTypeMultipleSelection,
		Options: []model.OptionRequest{
			{OptionText: "a", IsCorrect: true},
			{OptionText: "b", IsCorrect: true},
			{OptionText: "c", IsCorrect: true},
		},
	}
}

func createRequest(questions ...model.QuestionRequest) *model.CreateExamRequest {
	return &model.CreateExamRequest{
		Title:           "Algebra Basics",
		DurationMinutes: 60,
		Subject:         "math",
		Questions:       questions,
	}
}

func TestExamService_CreateDistributesBothLevels(t *testing.T) {
	f := newFixture(t)

	detail, err := f.svc.Create(context.Background(), createRequest(
		trueFalseQuestion("1 + 1 = 2"),
		trueFalseQuestion("2 + 2 = 5"),
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if detail.TotalPoints != 100 {
		t.Errorf("exam total points = %v, want 100", detail.TotalPoints)
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(detail.Questions))
	}
	for i, q := range detail.Questions {
		if q.Points != 50 {
			t.Errorf("question %d points = %v, want 50", i, q.Points)
		}
		if len(q.Options) != 2 {
			t.Fatalf("question %d has %d options, want 2", i, len(q.Options))
		}
		for j, o := range q.Options {
			if o.Points != 25 {
				t.Errorf("question %d option %d points = %v, want 25", i, j, o.Points)
			}
		}
		if len(q.OptionIDs) != 2 {
			t.Errorf("question %d has %d option ids, want 2", i, len(q.OptionIDs))
		}
	}
	if len(detail.QuestionIDs) != 2 {
		t.Errorf("exam has %d question ids, want 2", len(detail.QuestionIDs))
	}

	if got := len(f.exams.Rows); got != 1 {
		t.Errorf("stored exams = %d, want 1", got)
	}
	if got := len(f.questions.Rows); got != 2 {
		t.Errorf("stored questions = %d, want 2", got)
	}
	if got := len(f.options.Rows); got != 4 {
		t.Errorf("stored options = %d, want 4", got)
	}

	if len(f.publisher.created) != 1 {
		t.Fatalf("created events = %d, want 1", len(f.publisher.created))
	}
	if f.publisher.created[0].ID != detail.ID {
		t.Errorf("created event exam id = %s, want %s", f.publisher.created[0].ID, detail.ID)
	}
}

func TestExamService_CreateUsesRequestBudget(t *testing.T) {
	f := newFixture(t)

	budget := 20.0
	req := createRequest(trueFalseQuestion("fermat was right"))
	req.TotalPoints = &budget

	detail, err := f.svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if detail.TotalPoints != 20 {
		t.Errorf("exam total points = %v, want 20", detail.TotalPoints)
	}
	if detail.Questions[0].Points != 20 {
		t.Errorf("question points = %v, want 20", detail.Questions[0].Points)
	}
}

func TestExamService_CreateBudgetExceeded(t *testing.T) {
	f := newFixture(t)

	q := trueFalseQuestion("overweight")
	q.Points = 150

	_, err := f.svc.Create(context.Background(), createRequest(q))
	if !errors.Is(err, points.ErrBudgetExceeded) {
		t.Fatalf("Create = %v, want %v", err, points.ErrBudgetExceeded)
	}

	if len(f.exams.Rows) != 0 || len(f.questions.Rows) != 0 || len(f.options.Rows) != 0 {
		t.Errorf("stores not empty after rejected create: %d exams, %d questions, %d options",
			len(f.exams.Rows), len(f.questions.Rows), len(f.options.Rows))
	}
	if len(f.publisher.failed) != 1 {
		t.Errorf("failed events = %d, want 1", len(f.publisher.failed))
	}
}

func TestExamService_CreateRollsBackOnMidFlowFailure(t *testing.T) {
	f := newFixture(t)
	f.questions.CreateErr = servicetest.ErrStoreFailure
	f.questions.FailAfter = 1

	_, err := f.svc.Create(context.Background(), createRequest(
		trueFalseQuestion("first persists"),
		trueFalseQuestion("second fails"),
	))
	if !errors.Is(err, servicetest.ErrStoreFailure) {
		t.Fatalf("Create = %v, want %v", err, servicetest.ErrStoreFailure)
	}

	if got := len(f.exams.Rows); got != 0 {
		t.Errorf("exam shell not rolled back, %d rows remain", got)
	}
	if got := len(f.questions.Rows); got != 0 {
		t.Errorf("questions not rolled back, %d rows remain", got)
	}
	if got := len(f.options.Rows); got != 0 {
		t.Errorf("options not rolled back, %d rows remain", got)
	}
	if len(f.publisher.failed) != 1 {
		t.Errorf("failed events = %d, want 1", len(f.publisher.failed))
	}
	if len(f.publisher.created) != 0 {
		t.Errorf("created events = %d, want 0", len(f.publisher.created))
	}
}

func TestExamService_GetByIDResolvesTree(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("tree")))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	detail, err := f.svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(detail.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(detail.Questions))
	}
	if len(detail.Questions[0].Options) != 2 {
		t.Errorf("got %d options, want 2", len(detail.Questions[0].Options))
	}
}

func TestExamService_UpdateReplacesQuestions(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("old")))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	oldQuestionID := created.Questions[0].ID

	detail, err := f.svc.Update(context.Background(), created.ID, &model.UpdateExamRequest{
		Title: "Algebra Basics v2",
		Questions: []model.QuestionRequest{
			trueFalseQuestion("new one"),
			trueFalseQuestion("new two"),
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if detail.Title != "Algebra Basics v2" {
		t.Errorf("title = %q, want %q", detail.Title, "Algebra Basics v2")
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(detail.Questions))
	}
	for _, q := range detail.Questions {
		if q.ID == oldQuestionID {
			t.Errorf("old question %s survived the replace", oldQuestionID)
		}
	}
	if got := len(f.questions.Rows); got != 2 {
		t.Errorf("stored questions = %d, want 2", got)
	}
	if got := len(f.options.Rows); got != 4 {
		t.Errorf("stored options = %d, want 4", got)
	}
}

func TestExamService_UpdateWithoutQuestionsKeepsTree(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("kept")))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	detail, err := f.svc.Update(context.Background(), created.ID, &model.UpdateExamRequest{
		Description: "now with a description",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if detail.Description != "now with a description" {
		t.Errorf("description = %q", detail.Description)
	}
	if len(detail.Questions) != 1 {
		t.Errorf("got %d questions, want 1", len(detail.Questions))
	}
	if got := len(f.questions.Rows); got != 1 {
		t.Errorf("stored questions = %d, want 1", got)
	}
}

func TestExamService_DeleteCascades(t *testing.T) {
	f := newFixture(t)

	// Two questions with unequal option counts (3 and 2) so a partial
	// cascade would leave a detectable remainder.
	created, err := f.svc.Create(context.Background(), createRequest(
		multipleSelectionQuestion("one"),
		trueFalseQuestion("two"),
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := len(f.options.Rows); got != 5 {
		t.Fatalf("stored options before delete = %d, want 5", got)
	}

	if err := f.svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(f.exams.Rows) != 0 || len(f.questions.Rows) != 0 || len(f.options.Rows) != 0 {
		t.Errorf("cascade delete left %d exams, %d questions, %d options",
			len(f.exams.Rows), len(f.questions.Rows), len(f.options.Rows))
	}
}

func TestExamService_SearchPaginates(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Create(context.Background(), createRequest(trueFalseQuestion("q"))); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	exams, pagination, err := f.svc.Search(context.Background(), model.ExamCriteria{Subject: "math"}, 1, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(exams) != 2 {
		t.Errorf("got %d exams, want 2", len(exams))
	}
	if pagination.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", pagination.TotalItems)
	}
	if pagination.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", pagination.TotalPages)
	}

	none, _, err := f.svc.Search(context.Background(), model.ExamCriteria{Subject: "history"}, 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d exams for unmatched subject, want 0", len(none))
	}
}
