package practice

import (
	"context"
	"sync"
)

var _ completer = &completerMock{}

type completerMock struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	calls struct {
		Complete []struct {
			Ctx    context.Context
			Prompt string
		}
	}
	lockComplete sync.RWMutex
}

func (mock *completerMock) Complete(ctx context.Context, prompt string) (string, error) {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but completer.Complete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prompt string
	}{Ctx: ctx, Prompt: prompt}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, prompt)
}

func (mock *completerMock) CompleteCalls() []struct {
	Ctx    context.Context
	Prompt string
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}
