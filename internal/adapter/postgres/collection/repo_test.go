package collection_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/adapter/postgres/collection"
	"github.com/heartmarshall/myenglish-practice/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

func newRepo(t *testing.T) *collection.Repo {
	t.Helper()
	return collection.New(testhelper.SetupTestDB(t))
}

// uniqueText keeps parallel tests from colliding on the (kind, text) constraint.
func uniqueText(prefix string) string {
	return prefix + " " + uuid.NewString()
}

func buildItem(kind domain.CollectedKind, text string) domain.CollectedItem {
	return domain.CollectedItem{
		ID:             uuid.New(),
		Kind:           kind,
		Text:           text,
		TextNormalized: domain.NormalizeText(text),
		Translation:    "翻譯",
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	input := buildItem(domain.CollectedKindWord, uniqueText("Umbrella"))

	got, err := repo.Create(ctx, &input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID != input.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, input.ID)
	}
	if got.Kind != domain.CollectedKindWord {
		t.Errorf("Kind mismatch: got %q", got.Kind)
	}
	if got.Text != input.Text {
		t.Errorf("Text mismatch: got %q, want %q", got.Text, input.Text)
	}
	if got.TextNormalized != input.TextNormalized {
		t.Errorf("TextNormalized mismatch: got %q, want %q", got.TextNormalized, input.TextNormalized)
	}
	if !got.CreatedAt.Equal(input.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, input.CreatedAt)
	}
}

func TestRepo_Create_DefaultsIDAndTime(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	input := buildItem(domain.CollectedKindSentence, uniqueText("It looks like rain."))
	input.ID = uuid.Nil
	input.CreatedAt = time.Time{}

	got, err := repo.Create(context.Background(), &input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Error("ID should be assigned")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be assigned")
	}
}

func TestRepo_Create_Duplicate(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	text := uniqueText("Weather")
	first := buildItem(domain.CollectedKindWord, text)
	if _, err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	second := buildItem(domain.CollectedKindWord, "  "+text+"  ")
	second.TextNormalized = domain.NormalizeText(second.Text)

	_, err := repo.Create(ctx, &second)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Create_SameTextDifferentKind(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	text := uniqueText("Cloudy")
	word := buildItem(domain.CollectedKindWord, text)
	sentence := buildItem(domain.CollectedKindSentence, text)

	if _, err := repo.Create(ctx, &word); err != nil {
		t.Fatalf("Create word: %v", err)
	}
	if _, err := repo.Create(ctx, &sentence); err != nil {
		t.Fatalf("Create sentence: %v", err)
	}
}

func TestRepo_List_FilterAndOrder(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	older := buildItem(domain.CollectedKindSentence, uniqueText("older"))
	older.CreatedAt = base
	newer := buildItem(domain.CollectedKindSentence, uniqueText("newer"))
	newer.CreatedAt = base.Add(time.Second)

	for _, it := range []domain.CollectedItem{older, newer} {
		if _, err := repo.Create(ctx, &it); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx, domain.CollectionFilter{Kind: domain.CollectedKindSentence})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var idxOlder, idxNewer = -1, -1
	for i, it := range got {
		if it.Kind != domain.CollectedKindSentence {
			t.Errorf("unexpected kind %q in filtered list", it.Kind)
		}
		switch it.ID {
		case older.ID:
			idxOlder = i
		case newer.ID:
			idxNewer = i
		}
	}
	if idxOlder < 0 || idxNewer < 0 {
		t.Fatalf("inserted items missing from list: older=%d newer=%d", idxOlder, idxNewer)
	}
	if idxNewer > idxOlder {
		t.Errorf("expected newest first: newer at %d, older at %d", idxNewer, idxOlder)
	}
}

func TestRepo_List_Limit(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	for range 3 {
		it := buildItem(domain.CollectedKindWord, uniqueText("limit"))
		if _, err := repo.Create(ctx, &it); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx, domain.CollectionFilter{Kind: domain.CollectedKindWord, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 items, got %d", len(got))
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	it := buildItem(domain.CollectedKindWord, uniqueText("delete"))
	if _, err := repo.Create(ctx, &it); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, it.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := repo.Delete(ctx, it.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}
