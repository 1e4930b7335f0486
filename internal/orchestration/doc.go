// Package orchestration coordinates the concurrent evaluation of exercise
// batches. It bounds parallelism with a worker pool sized to the host's
// available concurrency and guarantees that results are returned in the
// original input order, regardless of completion order.
package orchestration
