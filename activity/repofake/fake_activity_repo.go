package fakeactivityrepo

import (
	"sync"

	"github.com/jrsteele09/stitch-smart/activity"
	autherrors "github.com/jrsteele09/stitch-smart/internal/errors"
)

var _ activity.Repo = (*FakeActivityRepo)(nil)

// FakeActivityRepo keeps the log in memory, most recent entry first
type FakeActivityRepo struct {
	entries []activity.Entry
	ids     map[string]struct{}
	lock    sync.RWMutex
}

func NewFakeActivityRepo() *FakeActivityRepo {
	return &FakeActivityRepo{
		ids: make(map[string]struct{}),
	}
}

func (ar *FakeActivityRepo) Prepend(entry activity.Entry) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if entry.ID == "" {
		return autherrors.ErrMissingActivityID
	}
	if _, ok := ar.ids[entry.ID]; ok {
		return autherrors.Wrapf(autherrors.ErrDuplicateActivity, "entry %s", entry.ID)
	}
	ar.ids[entry.ID] = struct{}{}
	ar.entries = append([]activity.Entry{entry}, ar.entries...)
	return nil
}

func (ar *FakeActivityRepo) List() []activity.Entry {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	list := make([]activity.Entry, len(ar.entries))
	copy(list, ar.entries)
	return list
}

func (ar *FakeActivityRepo) Count() int {
	ar.lock.RLock()
	defer ar.lock.RUnlock()
	return len(ar.entries)
}
