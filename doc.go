// Package conveyor runs a bounded-work producer-consumer pipeline: a single
// producer pushes a fixed, randomly-ordered stream of work items into a shared
// queue, and a fixed pool of consumers drains it, computing one result per item
// into a position-indexed slot.
//
// Construction
//   - New[R](compute, opts ...Option): options-based constructor. The compute
//     function is the only mandatory collaborator.
//   - Run(ctx): executes one complete production/consumption cycle and returns
//     the assembled results after every goroutine has been joined.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created pipeline:
//   - Consumers: 8
//   - KeyStart/KeyEnd: 30/45 (15 items)
//   - MaxSleep: 0 (no producer jitter)
//   - Seed: 123456
//   - Logger: zerolog.Nop()
//   - Metrics: metrics.NewNoopProvider()
//
// Shutdown protocol
// The producer owns queue closure: it closes the queue after its last push on
// every exit path, including cancellation. Consumers block inside Queue.Pop and
// terminate once the queue is both closed and drained; no other termination
// signal exists. A producer that never closes would block consumers forever,
// which is why closure is issued via defer rather than left to callers.
//
// Result safety
// Positions form a permutation, so no two in-flight items ever target the same
// result slot. Slot writes therefore need no locking; the join barrier in Run
// is the single happens-before edge between consumer writes and the final read.
package conveyor
