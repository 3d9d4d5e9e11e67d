package practice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

var _ resultRepo = &resultRepoMock{}

type resultRepoMock struct {
	SaveFunc          func(ctx context.Context, sessionID uuid.UUID, res domain.ExerciseResult) error
	ListBySessionFunc func(ctx context.Context, sessionID uuid.UUID) ([]domain.ExerciseResult, error)

	calls struct {
		Save []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			Res       domain.ExerciseResult
		}
		ListBySession []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
	}
	lockSave          sync.RWMutex
	lockListBySession sync.RWMutex
}

func (mock *resultRepoMock) Save(ctx context.Context, sessionID uuid.UUID, res domain.ExerciseResult) error {
	if mock.SaveFunc == nil {
		panic("resultRepoMock.SaveFunc: method is nil but resultRepo.Save was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		Res       domain.ExerciseResult
	}{Ctx: ctx, SessionID: sessionID, Res: res}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, sessionID, res)
}

func (mock *resultRepoMock) SaveCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	Res       domain.ExerciseResult
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *resultRepoMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.ExerciseResult, error) {
	if mock.ListBySessionFunc == nil {
		panic("resultRepoMock.ListBySessionFunc: method is nil but resultRepo.ListBySession was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockListBySession.Lock()
	mock.calls.ListBySession = append(mock.calls.ListBySession, callInfo)
	mock.lockListBySession.Unlock()
	return mock.ListBySessionFunc(ctx, sessionID)
}

func (mock *resultRepoMock) ListBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListBySession.RLock()
	calls := mock.calls.ListBySession
	mock.lockListBySession.RUnlock()
	return calls
}
