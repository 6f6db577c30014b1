// Package visual holds the per-slot visualization records shared between
// sorting workers and the renderer.
//
//   - [State]: one record per roster slot, reset (never recreated) on restart
//   - [Writer]: generation-bound handle a worker publishes through
//   - [View]: immutable copy handed to the renderer on each sample
//
// # Thread Safety
//
// A State is written by the live worker of its slot and read by the renderer.
// Publish replaces values and highlights under one lock so a sample never
// pairs values from one step with highlights from another. Writes carrying a
// superseded generation are rejected with [ErrStale].
package visual
