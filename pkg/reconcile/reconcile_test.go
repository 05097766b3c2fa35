package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    int
	Key   string
	Value int
}

type item struct {
	Key   string
	Value int
}

// memStore is an in-memory child table driven through the callbacks.
type memStore struct {
	rows    map[int]*row
	nextID  int
	creates []string
	updates []string
	deletes []string
	failOn  string
}

func newStore(rows ...row) *memStore {
	s := &memStore{rows: map[int]*row{}}
	for _, r := range rows {
		r := r
		s.rows[r.ID] = &r
		if r.ID >= s.nextID {
			s.nextID = r.ID
		}
	}
	return s
}

func (s *memStore) current() []*row {
	out := make([]*row, 0, len(s.rows))
	for id := 1; id <= s.nextID; id++ {
		if r, ok := s.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *memStore) reconciler() Reconciler[*row, item, string] {
	return Reconciler[*row, item, string]{
		IdentityOf:        func(i item) string { return i.Key },
		CurrentIdentityOf: func(r *row) string { return r.Key },
		ApplyUpdate: func(r *row, i item) error {
			if s.failOn == "update:"+i.Key {
				return errors.New("boom")
			}
			s.updates = append(s.updates, i.Key)
			r.Value = i.Value
			return nil
		},
		ApplyCreate: func(i item) (*row, error) {
			if s.failOn == "create:"+i.Key {
				return nil, errors.New("boom")
			}
			s.creates = append(s.creates, i.Key)
			s.nextID++
			r := &row{ID: s.nextID, Key: i.Key, Value: i.Value}
			s.rows[r.ID] = r
			return r, nil
		},
		ApplyDelete: func(r *row) error {
			if s.failOn == "delete:"+r.Key {
				return errors.New("boom")
			}
			s.deletes = append(s.deletes, r.Key)
			delete(s.rows, r.ID)
			return nil
		},
	}
}

func (s *memStore) state() map[string]int {
	out := map[string]int{}
	for _, r := range s.rows {
		out[r.Key] = r.Value
	}
	return out
}

func TestReconcilerApply(t *testing.T) {
	t.Run("creates updates and deletes", func(t *testing.T) {
		s := newStore(row{1, "a", 1}, row{2, "b", 2}, row{3, "c", 3})
		summary, err := s.reconciler().Apply(s.current(), []item{{"b", 20}, {"d", 4}, {"a", 1}})
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"a": 1, "b": 20, "d": 4}, s.state())
		assert.Equal(t, Summary{Created: 1, Updated: 2, Deleted: 1}, summary)
		assert.Equal(t, []string{"b", "a"}, s.updates)
		assert.Equal(t, []string{"d"}, s.creates)
		assert.Equal(t, []string{"c"}, s.deletes)
	})

	t.Run("identical values still update instead of create", func(t *testing.T) {
		s := newStore(row{1, "a", 1})
		summary, err := s.reconciler().Apply(s.current(), []item{{"a", 1}})
		require.NoError(t, err)
		assert.Equal(t, Summary{Updated: 1}, summary)
		assert.Empty(t, s.creates)
		assert.Len(t, s.rows, 1)
	})

	t.Run("empty target clears the collection", func(t *testing.T) {
		s := newStore(row{1, "a", 1}, row{2, "b", 2})
		summary, err := s.reconciler().Apply(s.current(), nil)
		require.NoError(t, err)
		assert.Empty(t, s.rows)
		assert.Equal(t, Summary{Deleted: 2}, summary)
	})

	t.Run("empty current creates everything", func(t *testing.T) {
		s := newStore()
		summary, err := s.reconciler().Apply(nil, []item{{"a", 1}, {"b", 2}})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, s.state())
		assert.Equal(t, Summary{Created: 2}, summary)
	})

	t.Run("duplicate target keys keep the last item", func(t *testing.T) {
		s := newStore(row{1, "a", 1})
		_, err := s.reconciler().Apply(s.current(), []item{{"a", 5}, {"b", 1}, {"a", 9}, {"b", 2}})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 9, "b": 2}, s.state())
		assert.Len(t, s.rows, 2)
		assert.Equal(t, []string{"b"}, s.creates)
	})

	t.Run("duplicate current keys are collapsed", func(t *testing.T) {
		s := newStore(row{1, "a", 1}, row{2, "a", 2})
		summary, err := s.reconciler().Apply(s.current(), []item{{"a", 3}})
		require.NoError(t, err)
		assert.Equal(t, Summary{Updated: 1, Deleted: 1}, summary)
		require.Len(t, s.rows, 1)
		assert.Equal(t, 3, s.rows[1].Value)
	})

	t.Run("no row is both updated and deleted", func(t *testing.T) {
		s := newStore(row{1, "a", 1}, row{2, "b", 2})
		_, err := s.reconciler().Apply(s.current(), []item{{"a", 1}})
		require.NoError(t, err)
		for _, k := range s.updates {
			assert.NotContains(t, s.deletes, k)
		}
	})
}

func TestReconcileErrors(t *testing.T) {
	cases := []struct {
		name   string
		failOn string
		phase  string
	}{
		{"update failure", "update:a", "update"},
		{"create failure", "create:d", "create"},
		{"delete failure", "delete:c", "delete"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(row{1, "a", 1}, row{3, "c", 3})
			s.failOn = tc.failOn
			_, err := s.reconciler().Apply(s.current(), []item{{"a", 2}, {"d", 4}})
			require.Error(t, err)

			var rerr *Error
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tc.phase, rerr.Phase)
			assert.EqualError(t, errors.Unwrap(err), "boom")
		})
	}

	t.Run("deletes wait for creates and updates", func(t *testing.T) {
		s := newStore(row{1, "a", 1}, row{3, "c", 3})
		s.failOn = "create:d"
		_, err := s.reconciler().Apply(s.current(), []item{{"d", 4}})
		require.Error(t, err)
		assert.Empty(t, s.deletes)
	})
}

func TestReconcileFunction(t *testing.T) {
	s := newStore(row{1, "a", 1})
	r := s.reconciler()
	err := Reconcile(s.current(), []item{{"b", 2}}, r.IdentityOf, r.CurrentIdentityOf, r.ApplyUpdate, r.ApplyCreate, r.ApplyDelete)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"b": 2}, s.state())
}
