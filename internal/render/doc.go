// Package render maps spans to markup fragments.
//
// A Strategy is one unit of rendering logic. Strategies are registered in
// priority order on a Registry; for every span the first strategy whose
// CanRender accepts it wins, and a designated fallback accepts everything.
// Strategies may render nothing visible for a span while still emitting the
// children container, so descendant spans stay attachable.
package render
