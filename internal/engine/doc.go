// Package engine runs a roster of sorting strategies concurrently against
// shared visualization slots.
//
// A [Supervisor] owns the slots, the authoritative dataset and one
// cancellation token per generation. [Supervisor.Restart] cancels the live
// generation, waits a bounded grace interval for its workers to exit, resets
// every slot and launches a fresh generation.
//
// # Generations
//
// Each generation gets its own context. A worker from generation G only ever
// observes G's context, so lowering the flag for G+1 cannot un-cancel it.
// Slot writers are bound to their generation as well: a worker that outlives
// the grace interval has every later write rejected by the slot.
//
// # Faults
//
// A worker that returns an error other than cancellation, or panics, is
// contained at the worker boundary: the slot is marked complete with an error
// indicator and the fault is logged. Siblings and the Supervisor keep running.
package engine
