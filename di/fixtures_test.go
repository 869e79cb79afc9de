package di_test

import (
	"errors"
	"fmt"
)

// Store looks up user names by id.
type Store interface {
	GetName(userID int) (string, error)
}

type fakeStore struct {
	records map[int]string
}

func newFakeStore(records map[int]string) *fakeStore {
	return &fakeStore{records: records}
}

func (s *fakeStore) GetName(userID int) (string, error) {
	name, ok := s.records[userID]
	if !ok {
		return "", fmt.Errorf("user %d: %w", userID, errUnknownUser)
	}
	return name, nil
}

var errUnknownUser = errors.New("unknown user")

// Service greets users found in its Store.
type Service struct {
	store  Store
	prefix string
}

func newService(store Store, prefix string) *Service {
	return &Service{store: store, prefix: prefix}
}

func (s *Service) Greeting(userID int) (string, error) {
	name, err := s.store.GetName(userID)
	if err != nil {
		return "", err
	}
	return s.prefix + ", " + name, nil
}

// BinOp is a function-object contract.
type BinOp interface {
	Apply(a, b int) int
}

type add struct{}

func (add) Apply(a, b int) int { return a + b }

// obj is a trivial type whose instances are compared by identity.
type obj struct{ id int }
