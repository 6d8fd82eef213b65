package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/pokenihongo/admin-console/internal/adapter/pokeapi"
)

var _ apiClient = &apiClientMock{}

type apiClientMock struct {
	ListFunc   func(ctx context.Context, path string, query url.Values, locale string) (pokeapi.ListResult, error)
	CreateFunc func(ctx context.Context, path string, payload any) (json.RawMessage, error)
	UpdateFunc func(ctx context.Context, path, id string, payload any) (json.RawMessage, error)
	DeleteFunc func(ctx context.Context, path, id string) error

	calls struct {
		List []struct {
			Path   string
			Query  url.Values
			Locale string
		}
		Create []struct {
			Path    string
			Payload any
		}
		Update []struct {
			Path    string
			ID      string
			Payload any
		}
		Delete []struct {
			Path string
			ID   string
		}
	}
	lockList   sync.RWMutex
	lockCreate sync.RWMutex
	lockUpdate sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *apiClientMock) List(ctx context.Context, path string, query url.Values, locale string) (pokeapi.ListResult, error) {
	if mock.ListFunc == nil {
		panic("apiClientMock.ListFunc: method is nil but apiClient.List was just called")
	}
	callInfo := struct {
		Path   string
		Query  url.Values
		Locale string
	}{Path: path, Query: query, Locale: locale}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, path, query, locale)
}

func (mock *apiClientMock) ListCalls() []struct {
	Path   string
	Query  url.Values
	Locale string
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *apiClientMock) Create(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	if mock.CreateFunc == nil {
		panic("apiClientMock.CreateFunc: method is nil but apiClient.Create was just called")
	}
	callInfo := struct {
		Path    string
		Payload any
	}{Path: path, Payload: payload}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, path, payload)
}

func (mock *apiClientMock) CreateCalls() []struct {
	Path    string
	Payload any
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *apiClientMock) Update(ctx context.Context, path, id string, payload any) (json.RawMessage, error) {
	if mock.UpdateFunc == nil {
		panic("apiClientMock.UpdateFunc: method is nil but apiClient.Update was just called")
	}
	callInfo := struct {
		Path    string
		ID      string
		Payload any
	}{Path: path, ID: id, Payload: payload}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, path, id, payload)
}

func (mock *apiClientMock) UpdateCalls() []struct {
	Path    string
	ID      string
	Payload any
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *apiClientMock) Delete(ctx context.Context, path, id string) error {
	if mock.DeleteFunc == nil {
		panic("apiClientMock.DeleteFunc: method is nil but apiClient.Delete was just called")
	}
	callInfo := struct {
		Path string
		ID   string
	}{Path: path, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, path, id)
}

func (mock *apiClientMock) DeleteCalls() []struct {
	Path string
	ID   string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
