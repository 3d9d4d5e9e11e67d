package practice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

var _ sessionStore = &sessionStoreMock{}

type sessionStoreMock struct {
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.PracticeSession, error)
	SaveFunc         func(ctx context.Context, sess *domain.PracticeSession) error
	AppendResultFunc func(ctx context.Context, id uuid.UUID, r domain.ExerciseResult) error

	calls struct {
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Save []struct {
			Ctx  context.Context
			Sess *domain.PracticeSession
		}
		AppendResult []struct {
			Ctx context.Context
			ID  uuid.UUID
			R   domain.ExerciseResult
		}
	}
	lockGet          sync.RWMutex
	lockSave         sync.RWMutex
	lockAppendResult sync.RWMutex
}

func (mock *sessionStoreMock) Get(ctx context.Context, id uuid.UUID) (*domain.PracticeSession, error) {
	if mock.GetFunc == nil {
		panic("sessionStoreMock.GetFunc: method is nil but sessionStore.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *sessionStoreMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *sessionStoreMock) Save(ctx context.Context, sess *domain.PracticeSession) error {
	if mock.SaveFunc == nil {
		panic("sessionStoreMock.SaveFunc: method is nil but sessionStore.Save was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Sess *domain.PracticeSession
	}{Ctx: ctx, Sess: sess}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, sess)
}

func (mock *sessionStoreMock) SaveCalls() []struct {
	Ctx  context.Context
	Sess *domain.PracticeSession
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *sessionStoreMock) AppendResult(ctx context.Context, id uuid.UUID, r domain.ExerciseResult) error {
	if mock.AppendResultFunc == nil {
		panic("sessionStoreMock.AppendResultFunc: method is nil but sessionStore.AppendResult was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		R   domain.ExerciseResult
	}{Ctx: ctx, ID: id, R: r}
	mock.lockAppendResult.Lock()
	mock.calls.AppendResult = append(mock.calls.AppendResult, callInfo)
	mock.lockAppendResult.Unlock()
	return mock.AppendResultFunc(ctx, id, r)
}

func (mock *sessionStoreMock) AppendResultCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	R   domain.ExerciseResult
} {
	mock.lockAppendResult.RLock()
	calls := mock.calls.AppendResult
	mock.lockAppendResult.RUnlock()
	return calls
}
