package practice

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
	"github.com/heartmarshall/myenglish-practice/internal/exercise"
	"github.com/heartmarshall/myenglish-practice/internal/parser"
)

//go:generate moq -out completer_mock_test.go -pkg practice . completer
//go:generate moq -out session_store_mock_test.go -pkg practice . sessionStore
//go:generate moq -out result_repo_mock_test.go -pkg practice . resultRepo
//go:generate moq -out collection_repo_mock_test.go -pkg practice . collectionRepo
//go:generate moq -out tx_manager_mock_test.go -pkg practice . txManager

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type deps struct {
	llm        *completerMock
	sessions   *sessionStoreMock
	results    *resultRepoMock
	collection *collectionRepoMock
	tx         *txManagerMock
}

func newDeps() *deps {
	return &deps{
		llm:        &completerMock{},
		sessions:   &sessionStoreMock{},
		results:    &resultRepoMock{},
		collection: &collectionRepoMock{},
		tx: &txManagerMock{
			RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
				return fn(ctx)
			},
		},
	}
}

func newTestService(t *testing.T, d *deps) *Service {
	t.Helper()
	svc := NewService(
		slog.Default(),
		d.llm,
		parser.New(parser.DefaultConfig()),
		d.sessions,
		d.results,
		d.collection,
		d.tx,
		Config{MaxDialogueAttempts: 3, DefaultDeckSize: 10, Exercise: exercise.DefaultConfig()},
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

const dialogueOutput = `Here is your dialogue:

Anna: Do you want to go hiking tomorrow?
翻譯: 你明天想去健行嗎？
單字: hiking=健行, tomorrow=明天

Ben: Sure, if the weather is nice.
翻譯: 好啊，如果天氣好的話。
單字: weather=天氣, nice=好的`

const passageOutput = `Title: The Lost Umbrella

Content: Tom left his umbrella on the bus.

A kind driver kept it safe for him.

Question 1: Where did Tom leave his umbrella?
A) At school
B) In a taxi
C) On the bus
D) At home
Answer: C
Explanation: The first sentence says he left it on the bus.`

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	return ve.Errors[0].Field
}

// ---------------------------------------------------------------------------
// GenerateDialogue
// ---------------------------------------------------------------------------

func TestGenerateDialogue_Success(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.llm.CompleteFunc = func(_ context.Context, _ string) (string, error) {
		return dialogueOutput, nil
	}
	svc := newTestService(t, d)

	turns, err := svc.GenerateDialogue(context.Background(), GenerateDialogueInput{Topic: "weekend plans", Level: "Beginner"})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "Anna", turns[0].Speaker)
	assert.Equal(t, "天氣", turns[1].WordTranslations["weather"])

	calls := d.llm.CompleteCalls()
	require.Len(t, calls, 1)
	prompt := calls[0].Prompt
	assert.Contains(t, prompt, `"weekend plans"`)
	assert.Contains(t, prompt, "beginner learner")
	assert.Contains(t, prompt, "exactly 8 lines")
	assert.Contains(t, prompt, "翻譯: ")
	assert.Contains(t, prompt, "單字: ")
}

func TestGenerateDialogue_RetriesUnparseableOutput(t *testing.T) {
	t.Parallel()

	d := newDeps()
	var n int
	d.llm.CompleteFunc = func(_ context.Context, _ string) (string, error) {
		n++
		if n == 1 {
			return "Sorry, I cannot help with that.", nil
		}
		return dialogueOutput, nil
	}
	svc := newTestService(t, d)

	turns, err := svc.GenerateDialogue(context.Background(), GenerateDialogueInput{Topic: "hiking", Turns: 4})
	require.NoError(t, err)
	assert.Len(t, turns, 2)
	assert.Len(t, d.llm.CompleteCalls(), 2)
}

func TestGenerateDialogue_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.llm.CompleteFunc = func(_ context.Context, _ string) (string, error) {
		return "# Dialogue\n\n---", nil
	}
	svc := newTestService(t, d)

	_, err := svc.GenerateDialogue(context.Background(), GenerateDialogueInput{Topic: "hiking"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTurns)
	assert.Len(t, d.llm.CompleteCalls(), 3)
}

func TestGenerateDialogue_CompleterErrorNotRetried(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.llm.CompleteFunc = func(_ context.Context, _ string) (string, error) {
		return "", domain.ErrUpstream
	}
	svc := newTestService(t, d)

	_, err := svc.GenerateDialogue(context.Background(), GenerateDialogueInput{Topic: "hiking"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Len(t, d.llm.CompleteCalls(), 1)
}

func TestGenerateDialogue_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input GenerateDialogueInput
		field string
	}{
		{name: "empty topic", input: GenerateDialogueInput{Topic: "  "}, field: "topic"},
		{name: "long topic", input: GenerateDialogueInput{Topic: strings.Repeat("a", 201)}, field: "topic"},
		{name: "bad level", input: GenerateDialogueInput{Topic: "x", Level: "expert"}, field: "level"},
		{name: "too few turns", input: GenerateDialogueInput{Topic: "x", Turns: 1}, field: "turns"},
		{name: "too many turns", input: GenerateDialogueInput{Topic: "x", Turns: 21}, field: "turns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps()
			svc := newTestService(t, d)

			_, err := svc.GenerateDialogue(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tt.field, fieldOf(t, err))
			assert.Empty(t, d.llm.CompleteCalls())
		})
	}
}

// ---------------------------------------------------------------------------
// ParseDialogue / ParsePassage
// ---------------------------------------------------------------------------

func TestParseDialogue_ClientText(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newDeps())

	turns, err := svc.ParseDialogue(context.Background(), ParseInput{Raw: dialogueOutput})
	require.NoError(t, err)
	assert.Len(t, turns, 2)

	_, err = svc.ParseDialogue(context.Background(), ParseInput{Raw: "nothing here"})
	assert.ErrorIs(t, err, domain.ErrNoTurns)

	_, err = svc.ParseDialogue(context.Background(), ParseInput{Raw: " \n "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParsePassage_ClientText(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newDeps())

	res, err := svc.ParsePassage(context.Background(), ParseInput{Raw: passageOutput})
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "The Lost Umbrella", res.Passage.Title)

	res, err = svc.ParsePassage(context.Background(), ParseInput{Raw: "just some words"})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, parser.FallbackPassage(), res.Passage)
}

// ---------------------------------------------------------------------------
// GenerateReading
// ---------------------------------------------------------------------------

func TestGenerateReading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		output       string
		err          error
		wantFallback bool
		wantTitle    string
	}{
		{name: "well formed", output: passageOutput, wantTitle: "The Lost Umbrella"},
		{name: "malformed output", output: "no structure at all", wantFallback: true},
		{name: "completer failure", err: domain.ErrUpstream, wantFallback: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps()
			d.llm.CompleteFunc = func(_ context.Context, _ string) (string, error) {
				return tt.output, tt.err
			}
			svc := newTestService(t, d)

			res, err := svc.GenerateReading(context.Background(), GenerateReadingInput{Topic: "lost property"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFallback, res.Fallback)
			if tt.wantFallback {
				assert.Equal(t, parser.FallbackPassage().Title, res.Passage.Title)
			} else {
				assert.Equal(t, tt.wantTitle, res.Passage.Title)
			}
			require.NoError(t, res.Passage.Validate())
		})
	}
}

func TestGenerateReading_CanceledContext(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.llm.CompleteFunc = func(ctx context.Context, _ string) (string, error) {
		return "", ctx.Err()
	}
	svc := newTestService(t, d)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateReading(ctx, GenerateReadingInput{Topic: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

// ---------------------------------------------------------------------------
// FillTranslations
// ---------------------------------------------------------------------------

func TestFillTranslations(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.llm.CompleteFunc = func(_ context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Good morning.") {
			return "「早安。」\nextra commentary", nil
		}
		return "", domain.ErrUpstream
	}
	svc := newTestService(t, d)

	in := []domain.DialogueTurn{
		{Speaker: "A", Text: "Good morning.", Translation: domain.Untranslated},
		{Speaker: "B", Text: "Hello.", Translation: "你好。"},
		{Speaker: "A", Text: "See you.", Translation: domain.Untranslated},
	}

	out, err := svc.FillTranslations(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "早安。", out[0].Translation)
	assert.Equal(t, "你好。", out[1].Translation)
	assert.Equal(t, domain.Untranslated, out[2].Translation, "failure keeps the marker")

	assert.Len(t, d.llm.CompleteCalls(), 2, "translated turns are skipped")
	assert.Equal(t, domain.Untranslated, in[0].Translation, "input is not mutated")
}

// ---------------------------------------------------------------------------
// StartSession
// ---------------------------------------------------------------------------

func sessionTurns() []domain.DialogueTurn {
	return []domain.DialogueTurn{
		{Speaker: "Anna", Text: "Do you want to go hiking tomorrow?", Translation: "你明天想去健行嗎？",
			WordTranslations: map[string]string{"hiking": "健行", "tomorrow": "明天"}},
		{Speaker: "Ben", Text: "Sure, if the weather is nice.", Translation: "好啊，如果天氣好的話。",
			WordTranslations: map[string]string{"weather": "天氣", "nice": "好的"}},
		{Speaker: "Anna", Text: "Let us meet at the station at eight.", Translation: domain.Untranslated,
			WordTranslations: map[string]string{"station": "車站", "meet": "見面"}},
	}
}

func TestStartSession_DialogueAndPassage(t *testing.T) {
	t.Parallel()

	d := newDeps()
	var saved *domain.PracticeSession
	d.sessions.SaveFunc = func(_ context.Context, sess *domain.PracticeSession) error {
		saved = sess
		return nil
	}
	svc := newTestService(t, d)

	passage := parser.FallbackPassage()
	sess, err := svc.StartSession(context.Background(), StartSessionInput{
		Turns:   sessionTurns(),
		Passage: &passage,
		Count:   4,
		Seed:    7,
	})
	require.NoError(t, err)
	require.Same(t, saved, sess)

	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, fixedNow, sess.CreatedAt)
	assert.Empty(t, sess.Results)
	require.Len(t, sess.Exercises, 4+len(passage.Questions))

	for _, ex := range sess.Exercises[:4] {
		assert.NotEqual(t, domain.ExerciseKindReadingComprehension, ex.Kind)
	}
	for _, ex := range sess.Exercises[4:] {
		assert.Equal(t, domain.ExerciseKindReadingComprehension, ex.Kind)
	}
}

func TestStartSession_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	build := func() []domain.Exercise {
		d := newDeps()
		d.sessions.SaveFunc = func(context.Context, *domain.PracticeSession) error { return nil }
		sess, err := newTestService(t, d).StartSession(context.Background(), StartSessionInput{Turns: sessionTurns(), Seed: 99})
		require.NoError(t, err)
		return sess.Exercises
	}

	a, b := build(), build()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Kind, b[i].Kind)
		assert.Equal(t, a[i].Question, b[i].Question)
		assert.Equal(t, a[i].Answer, b[i].Answer)
	}
}

func TestStartSession_Validation(t *testing.T) {
	t.Parallel()

	bad := domain.ReadingPassage{Title: "t"}
	tests := []struct {
		name  string
		input StartSessionInput
		field string
	}{
		{name: "no material", input: StartSessionInput{}, field: "turns"},
		{name: "blank turn", input: StartSessionInput{Turns: []domain.DialogueTurn{{Speaker: "A", Text: " "}}}, field: "turns[0].text"},
		{name: "count too large", input: StartSessionInput{Turns: sessionTurns(), Count: 51}, field: "count"},
		{name: "invalid passage", input: StartSessionInput{Passage: &bad}, field: "passage.content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps()
			_, err := newTestService(t, d).StartSession(context.Background(), tt.input)
			assert.Equal(t, tt.field, fieldOf(t, err))
			assert.Empty(t, d.sessions.SaveCalls())
		})
	}
}

func TestStartSession_NothingToBuild(t *testing.T) {
	t.Parallel()

	d := newDeps()
	turns := []domain.DialogueTurn{{Speaker: "A", Text: "Hi."}}

	_, err := newTestService(t, d).StartSession(context.Background(), StartSessionInput{Turns: turns})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, d.sessions.SaveCalls())
}

// ---------------------------------------------------------------------------
// SubmitAnswer
// ---------------------------------------------------------------------------

func storedSession(results ...domain.ExerciseResult) *domain.PracticeSession {
	return &domain.PracticeSession{
		ID: uuid.New(),
		Exercises: []domain.Exercise{
			{ID: "ex-1", Kind: domain.ExerciseKindListening, Question: "Listen", Answer: "weather", AudioText: "weather", Points: 15},
			{ID: "ex-2", Kind: domain.ExerciseKindFillBlank, Question: "_____ is nice", Answer: "Weather", Points: 10},
		},
		Results:   results,
		CreatedAt: fixedNow,
	}
}

func TestSubmitAnswer_Correct(t *testing.T) {
	t.Parallel()

	d := newDeps()
	sess := storedSession()
	d.sessions.GetFunc = func(_ context.Context, id uuid.UUID) (*domain.PracticeSession, error) {
		return sess, nil
	}
	d.sessions.AppendResultFunc = func(context.Context, uuid.UUID, domain.ExerciseResult) error { return nil }
	d.results.SaveFunc = func(context.Context, uuid.UUID, domain.ExerciseResult) error { return nil }
	svc := newTestService(t, d)

	res, err := svc.SubmitAnswer(context.Background(), SubmitAnswerInput{
		SessionID:   sess.ID,
		ExerciseID:  "ex-1",
		Answer:      "  Weather! ",
		TimeSpentMs: 2500,
	})
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 15, res.Points)
	assert.Equal(t, "  Weather! ", res.UserAnswer)
	assert.Equal(t, "weather", res.CorrectAnswer)
	assert.Equal(t, int64(2500), res.TimeSpentMs)
	assert.Equal(t, fixedNow, res.AnsweredAt)

	assert.Len(t, d.tx.RunInTxCalls(), 1)
	require.Len(t, d.results.SaveCalls(), 1)
	assert.Equal(t, sess.ID, d.results.SaveCalls()[0].SessionID)
	require.Len(t, d.sessions.AppendResultCalls(), 1)
	assert.Equal(t, *res, d.sessions.AppendResultCalls()[0].R)
}

func TestSubmitAnswer_Incorrect(t *testing.T) {
	t.Parallel()

	d := newDeps()
	sess := storedSession()
	d.sessions.GetFunc = func(context.Context, uuid.UUID) (*domain.PracticeSession, error) { return sess, nil }
	d.sessions.AppendResultFunc = func(context.Context, uuid.UUID, domain.ExerciseResult) error { return nil }
	d.results.SaveFunc = func(context.Context, uuid.UUID, domain.ExerciseResult) error { return nil }

	res, err := newTestService(t, d).SubmitAnswer(context.Background(), SubmitAnswerInput{
		SessionID: sess.ID, ExerciseID: "ex-2", Answer: "sunny",
	})
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Zero(t, res.Points)
}

func TestSubmitAnswer_AlreadyAnswered(t *testing.T) {
	t.Parallel()

	d := newDeps()
	sess := storedSession(domain.ExerciseResult{ExerciseID: "ex-1"})
	d.sessions.GetFunc = func(context.Context, uuid.UUID) (*domain.PracticeSession, error) { return sess, nil }

	_, err := newTestService(t, d).SubmitAnswer(context.Background(), SubmitAnswerInput{
		SessionID: sess.ID, ExerciseID: "ex-1", Answer: "weather",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Empty(t, d.tx.RunInTxCalls())
}

func TestSubmitAnswer_ConcurrentDuplicateFromRepo(t *testing.T) {
	t.Parallel()

	d := newDeps()
	sess := storedSession()
	d.sessions.GetFunc = func(context.Context, uuid.UUID) (*domain.PracticeSession, error) { return sess, nil }
	d.results.SaveFunc = func(context.Context, uuid.UUID, domain.ExerciseResult) error {
		return domain.ErrAlreadyExists
	}

	_, err := newTestService(t, d).SubmitAnswer(context.Background(), SubmitAnswerInput{
		SessionID: sess.ID, ExerciseID: "ex-1", Answer: "weather",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Empty(t, d.sessions.AppendResultCalls())
}

func TestSubmitAnswer_UnknownExercise(t *testing.T) {
	t.Parallel()

	d := newDeps()
	sess := storedSession()
	d.sessions.GetFunc = func(context.Context, uuid.UUID) (*domain.PracticeSession, error) { return sess, nil }

	_, err := newTestService(t, d).SubmitAnswer(context.Background(), SubmitAnswerInput{
		SessionID: sess.ID, ExerciseID: "ex-404", Answer: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitAnswer_UnknownSession(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.sessions.GetFunc = func(context.Context, uuid.UUID) (*domain.PracticeSession, error) {
		return nil, domain.ErrNotFound
	}

	_, err := newTestService(t, d).SubmitAnswer(context.Background(), SubmitAnswerInput{
		SessionID: uuid.New(), ExerciseID: "ex-1", Answer: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitAnswer_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input SubmitAnswerInput
		field string
	}{
		{name: "no session", input: SubmitAnswerInput{ExerciseID: "ex-1"}, field: "session_id"},
		{name: "no exercise", input: SubmitAnswerInput{SessionID: uuid.New()}, field: "exercise_id"},
		{name: "negative time", input: SubmitAnswerInput{SessionID: uuid.New(), ExerciseID: "e", TimeSpentMs: -1}, field: "time_spent_ms"},
		{name: "long answer", input: SubmitAnswerInput{SessionID: uuid.New(), ExerciseID: "e", Answer: strings.Repeat("x", 2001)}, field: "answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestService(t, newDeps()).SubmitAnswer(context.Background(), tt.input)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

// ---------------------------------------------------------------------------
// Summary / results
// ---------------------------------------------------------------------------

func TestGetSummary(t *testing.T) {
	t.Parallel()

	d := newDeps()
	sess := storedSession(
		domain.ExerciseResult{ExerciseID: "ex-1", IsCorrect: true, Points: 15, TimeSpentMs: 3000},
		domain.ExerciseResult{ExerciseID: "ex-2", IsCorrect: false, Points: 0, TimeSpentMs: 1000},
	)
	d.sessions.GetFunc = func(context.Context, uuid.UUID) (*domain.PracticeSession, error) { return sess, nil }

	sum, err := newTestService(t, d).GetSummary(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ScoreSummary{TotalPoints: 15, AccuracyPercent: 50, AvgTimeSeconds: 2, Answered: 2, Correct: 1}, sum)
}

func TestGetSummary_Empty(t *testing.T) {
	t.Parallel()

	d := newDeps()
	sess := storedSession()
	d.sessions.GetFunc = func(context.Context, uuid.UUID) (*domain.PracticeSession, error) { return sess, nil }

	sum, err := newTestService(t, d).GetSummary(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ScoreSummary{}, sum)
}

func TestGetSummary_NilID(t *testing.T) {
	t.Parallel()

	_, err := newTestService(t, newDeps()).GetSummary(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListResults(t *testing.T) {
	t.Parallel()

	d := newDeps()
	want := []domain.ExerciseResult{{ExerciseID: "ex-1"}, {ExerciseID: "ex-2"}}
	d.results.ListBySessionFunc = func(context.Context, uuid.UUID) ([]domain.ExerciseResult, error) {
		return want, nil
	}

	got, err := newTestService(t, d).ListResults(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ---------------------------------------------------------------------------
// Collection
// ---------------------------------------------------------------------------

func TestCollectWord_NormalizesText(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.collection.CreateFunc = func(_ context.Context, item *domain.CollectedItem) (*domain.CollectedItem, error) {
		return item, nil
	}

	item, err := newTestService(t, d).CollectWord(context.Background(), CollectInput{
		Text: "  Hiking  Boots ", Translation: " 登山靴 ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CollectedKindWord, item.Kind)
	assert.Equal(t, "Hiking  Boots", item.Text)
	assert.Equal(t, "hiking boots", item.TextNormalized)
	assert.Equal(t, "登山靴", item.Translation)
	assert.Equal(t, fixedNow, item.CreatedAt)
	assert.NotEqual(t, uuid.Nil, item.ID)
}

func TestCollectSentence_Duplicate(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.collection.CreateFunc = func(context.Context, *domain.CollectedItem) (*domain.CollectedItem, error) {
		return nil, domain.ErrAlreadyExists
	}

	_, err := newTestService(t, d).CollectSentence(context.Background(), CollectInput{Text: "See you soon."})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	require.Len(t, d.collection.CreateCalls(), 1)
	assert.Equal(t, domain.CollectedKindSentence, d.collection.CreateCalls()[0].Item.Kind)
}

func TestCollect_Validation(t *testing.T) {
	t.Parallel()

	d := newDeps()
	_, err := newTestService(t, d).CollectWord(context.Background(), CollectInput{Text: " "})
	assert.Equal(t, "text", fieldOf(t, err))
	assert.Empty(t, d.collection.CreateCalls())
}

func TestListCollected_DefaultsLimit(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.collection.ListFunc = func(context.Context, domain.CollectionFilter) ([]domain.CollectedItem, error) {
		return []domain.CollectedItem{}, nil
	}

	_, err := newTestService(t, d).ListCollected(context.Background(), ListCollectedInput{Kind: domain.CollectedKindWord, Offset: 5})
	require.NoError(t, err)
	require.Len(t, d.collection.ListCalls(), 1)
	assert.Equal(t, domain.CollectionFilter{Kind: domain.CollectedKindWord, Limit: 50, Offset: 5}, d.collection.ListCalls()[0].F)
}

func TestListCollected_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input ListCollectedInput
		field string
	}{
		{name: "kind", input: ListCollectedInput{Kind: "phrase"}, field: "kind"},
		{name: "negative limit", input: ListCollectedInput{Limit: -1}, field: "limit"},
		{name: "limit too large", input: ListCollectedInput{Limit: 201}, field: "limit"},
		{name: "negative offset", input: ListCollectedInput{Offset: -1}, field: "offset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestService(t, newDeps()).ListCollected(context.Background(), tt.input)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestDeleteCollected(t *testing.T) {
	t.Parallel()

	d := newDeps()
	d.collection.DeleteFunc = func(context.Context, uuid.UUID) error { return domain.ErrNotFound }
	svc := newTestService(t, d)

	err := svc.DeleteCollected(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteCollected(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, d.collection.DeleteCalls(), 1)
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestStartSession_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	d := newDeps()
	var mu sync.Mutex
	ids := map[uuid.UUID]struct{}{}
	d.sessions.SaveFunc = func(_ context.Context, sess *domain.PracticeSession) error {
		mu.Lock()
		defer mu.Unlock()
		ids[sess.ID] = struct{}{}
		return nil
	}
	svc := newTestService(t, d)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartSession(context.Background(), StartSessionInput{Turns: sessionTurns()})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 8)
}

func TestNewService_ClampsConfig(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), nil, parser.New(parser.Config{}), nil, nil, nil, nil, Config{})
	assert.Equal(t, 1, svc.cfg.MaxDialogueAttempts)
	assert.Equal(t, 10, svc.cfg.DefaultDeckSize)
}

