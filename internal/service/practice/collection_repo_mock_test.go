package practice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

var _ collectionRepo = &collectionRepoMock{}

type collectionRepoMock struct {
	CreateFunc func(ctx context.Context, item *domain.CollectedItem) (*domain.CollectedItem, error)
	ListFunc   func(ctx context.Context, f domain.CollectionFilter) ([]domain.CollectedItem, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct {
			Ctx  context.Context
			Item *domain.CollectedItem
		}
		List []struct {
			Ctx context.Context
			F   domain.CollectionFilter
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate sync.RWMutex
	lockList   sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *collectionRepoMock) Create(ctx context.Context, item *domain.CollectedItem) (*domain.CollectedItem, error) {
	if mock.CreateFunc == nil {
		panic("collectionRepoMock.CreateFunc: method is nil but collectionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item *domain.CollectedItem
	}{Ctx: ctx, Item: item}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *collectionRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Item *domain.CollectedItem
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *collectionRepoMock) List(ctx context.Context, f domain.CollectionFilter) ([]domain.CollectedItem, error) {
	if mock.ListFunc == nil {
		panic("collectionRepoMock.ListFunc: method is nil but collectionRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.CollectionFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *collectionRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.CollectionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *collectionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("collectionRepoMock.DeleteFunc: method is nil but collectionRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *collectionRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
