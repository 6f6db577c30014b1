// Package sorting implements the strategies animated by the engine.
//
// Every strategy shares one contract, enforced through [Tracker]:
//
//   - check cancellation before each bounded unit of work
//   - publish a coherent (values, highlights) pair before each pacing delay
//   - return the final values on natural termination
//
// Strategies never mark a slot complete themselves; the engine does that
// after Sort returns without error.
//
// # Strategy families
//
//	comparison   bubble, insertion, selection, quick, merge, cocktail
//	bounded      bogo, miracle, quantum, brutal (attempt caps, see each type)
//	filter       stalin (drops out-of-order elements, output may shrink)
//	latency      sleep (one sub-task per element, self-timeout)
package sorting
