package transaction

import (
	"fmt"

	"github.com/jurgelenas/xbps/pkg/model"
)

// Common transaction errors.
var (
	// ErrNoTransaction is returned when no transaction has been
	// initialized, or after a fatal failure released it.
	ErrNoTransaction = fmt.Errorf("no transaction in progress")

	// ErrDependencyUnsatisfied classifies missing dependencies and
	// unresolved shared library requirements.
	ErrDependencyUnsatisfied = fmt.Errorf("unsatisfied dependencies")

	// ErrConflictExists is returned when conflicting packages were found.
	ErrConflictExists = fmt.Errorf("conflicting packages")

	// ErrNoSpace is returned when the target filesystem lacks the free
	// space the transaction needs.
	ErrNoSpace = fmt.Errorf("not enough free disk space")

	// ErrCyclicDependencies is returned when the dependency graph of the
	// working set cannot be ordered.
	ErrCyclicDependencies = fmt.Errorf("cyclic package dependencies")
)

// MissingDependenciesError reports every dependency constraint no repository
// could satisfy. The transaction is released when this is returned, so the
// error itself carries the collected descriptors.
type MissingDependenciesError struct {
	Missing []model.MissingDependency
}

func (e *MissingDependenciesError) Error() string {
	return fmt.Sprintf("%v: %d missing", ErrDependencyUnsatisfied, len(e.Missing))
}

// Unwrap makes the error match ErrDependencyUnsatisfied.
func (e *MissingDependenciesError) Unwrap() error {
	return ErrDependencyUnsatisfied
}

// ConflictsError reports every package or file conflict detected in the
// working set. The transaction is released when this is returned, so the
// error itself carries the collected descriptors.
type ConflictsError struct {
	Conflicts []model.Conflict
}

func (e *ConflictsError) Error() string {
	return fmt.Sprintf("%v: %d conflicts", ErrConflictExists, len(e.Conflicts))
}

// Unwrap makes the error match ErrConflictExists.
func (e *ConflictsError) Unwrap() error {
	return ErrConflictExists
}
