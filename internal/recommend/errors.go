// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import (
	"errors"
	"fmt"
)

// DataUnavailableError indicates the base historical dataset is missing
// or unreadable. This is fatal at startup: the service must not come up
// half-initialized.
type DataUnavailableError struct {
	Path string
	Err  error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("base dataset unavailable at %s: %v", e.Path, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// MalformedRecordError describes one unparseable record. It is logged
// and skipped, never raised out of a build.
type MalformedRecordError struct {
	Line   int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: field %q: %s", e.Line, e.Field, e.Reason)
}

// PersistenceError indicates the interaction log store failed to read or
// write. It is surfaced to the caller of the affected operation only and
// never corrupts in-memory state.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("interaction log %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// TrainingDivergedError indicates a non-finite value surfaced during
// factorization. The in-progress retrain is aborted and the previous
// snapshot remains authoritative.
type TrainingDivergedError struct {
	Iteration int
	Detail    string
}

func (e *TrainingDivergedError) Error() string {
	return fmt.Sprintf("training diverged at iteration %d: %s", e.Iteration, e.Detail)
}

// ErrRetrainInProgress rejects a retrain request while another retrain
// is running. The request is not queued and not retried automatically.
var ErrRetrainInProgress = errors.New("retrain already in progress")

// IsDataUnavailable reports whether err is a DataUnavailableError.
func IsDataUnavailable(err error) bool {
	var target *DataUnavailableError
	return errors.As(err, &target)
}

// IsTrainingDiverged reports whether err is a TrainingDivergedError.
func IsTrainingDiverged(err error) bool {
	var target *TrainingDivergedError
	return errors.As(err, &target)
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}
