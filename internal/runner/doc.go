// Package runner implements the per-exercise execution strategy: direct
// subprocess execution, optional pytest-validated execution, and the
// reconciliation between the two.
//
// Every outcome is captured as a Result value; this package never raises
// errors for a failing, crashing or timed-out exercise, so that batch
// evaluation stays resilient to individual exercise faults.
package runner
