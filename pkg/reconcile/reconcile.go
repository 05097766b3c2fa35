// Package reconcile makes a persisted child collection match a desired list
// with the fewest writes.
package reconcile

import (
	"fmt"
)

type (
	// Summary counts the writes performed by one reconciliation.
	Summary struct {
		Created int
		Updated int
		Deleted int
	}

	// Reconciler bundles the identity functions and write callbacks for one
	// kind of child collection.
	Reconciler[T, U any, K comparable] struct {
		IdentityOf        func(U) K
		CurrentIdentityOf func(T) K
		ApplyUpdate       func(T, U) error
		ApplyCreate       func(U) (T, error)
		ApplyDelete       func(T) error
	}

	// Error reports which callback failed and for which key.
	Error struct {
		Phase string
		Key   any
		Err   error
	}
)

func (e *Error) Error() string {
	return fmt.Sprintf("reconcile %s %v: %v", e.Phase, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reconcile updates current rows whose key appears in target, creates target
// items with no current row and then deletes current rows whose key is absent
// from target. Target is the full desired state, not a patch. An empty target
// clears the collection.
//
// When target repeats a key the last occurrence wins and earlier ones are
// skipped. When current repeats a key (corrupt data) the first row is kept and
// the rest are deleted.
//
// The first callback error aborts the run. Callers wrap the call in a
// transaction to discard partial writes.
func Reconcile[T, U any, K comparable](
	current []T,
	target []U,
	identityOf func(U) K,
	currentIdentityOf func(T) K,
	applyUpdate func(T, U) error,
	applyCreate func(U) (T, error),
	applyDelete func(T) error,
) error {
	r := Reconciler[T, U, K]{
		IdentityOf:        identityOf,
		CurrentIdentityOf: currentIdentityOf,
		ApplyUpdate:       applyUpdate,
		ApplyCreate:       applyCreate,
		ApplyDelete:       applyDelete,
	}
	_, err := r.Apply(current, target)
	return err
}

// Apply runs Reconcile with r's callbacks and reports what changed in a Summary.
func (r Reconciler[T, U, K]) Apply(current []T, target []U) (Summary, error) {
	var summary Summary

	currentByKey := make(map[K]T, len(current))
	var extras []T
	var keyOrder []K
	for _, row := range current {
		key := r.CurrentIdentityOf(row)
		if _, seen := currentByKey[key]; seen {
			extras = append(extras, row)
			continue
		}
		currentByKey[key] = row
		keyOrder = append(keyOrder, key)
	}

	lastIndex := make(map[K]int, len(target))
	for i, item := range target {
		lastIndex[r.IdentityOf(item)] = i
	}

	for i, item := range target {
		key := r.IdentityOf(item)
		if lastIndex[key] != i {
			continue
		}
		if row, ok := currentByKey[key]; ok {
			if err := r.ApplyUpdate(row, item); err != nil {
				return summary, &Error{Phase: "update", Key: key, Err: err}
			}
			delete(currentByKey, key)
			summary.Updated++
			continue
		}
		if _, err := r.ApplyCreate(item); err != nil {
			return summary, &Error{Phase: "create", Key: key, Err: err}
		}
		summary.Created++
	}

	for _, key := range keyOrder {
		row, ok := currentByKey[key]
		if !ok {
			continue
		}
		if err := r.ApplyDelete(row); err != nil {
			return summary, &Error{Phase: "delete", Key: key, Err: err}
		}
		summary.Deleted++
	}
	for _, row := range extras {
		if err := r.ApplyDelete(row); err != nil {
			return summary, &Error{Phase: "delete", Key: r.CurrentIdentityOf(row), Err: err}
		}
		summary.Deleted++
	}

	return summary, nil
}
