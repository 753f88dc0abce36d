// Package order defines the order aggregate and its lifecycle state machine.
//
// An order coordinates three independent actors: the customer who placed it,
// the restaurant preparing it, and the courier delivering it. Each actor owns
// a disjoint subset of the transitions; the aggregate enforces both the graph
// and the ownership rules, while the Order Store's conditional writes make
// concurrent transitions on the same order linearizable.
package order
