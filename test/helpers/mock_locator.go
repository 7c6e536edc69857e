package helpers

import (
	"reflect"
	"sync"
)

// MockLocator is a mediator.Locator backed by a map that records every lookup
type MockLocator struct {
	mu       sync.Mutex
	services map[reflect.Type]any
	calls    []reflect.Type
}

// NewMockLocator creates an empty mock locator
func NewMockLocator() *MockLocator {
	return &MockLocator{
		services: make(map[reflect.Type]any),
	}
}

// Set registers v under t, typically reflect.TypeOf((*Iface)(nil)).Elem()
func (m *MockLocator) Set(t reflect.Type, v any) *MockLocator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[t] = v
	return m
}

// Resolve implements mediator.Locator
func (m *MockLocator) Resolve(t reflect.Type) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, t)
	v, ok := m.services[t]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Calls returns the requested types in call order
func (m *MockLocator) Calls() []reflect.Type {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]reflect.Type(nil), m.calls...)
}

// TypeOf returns the reflect.Type of T, including interface types
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
