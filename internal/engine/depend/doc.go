// Package depend implements the dependency-driven task runtime core: a
// concurrent data-dependence resolver over byte ranges, the task lifecycle
// state machine, and the handoff to the schedule policy.
//
// A Domain maps memory regions to commit records tracking their last writer
// and current readers. Submitting a task consults the map, installs ordering
// edges to previously submitted tasks, and updates the map. A task is handed
// to the scheduler once all its predecessors finished and it is marked
// submitted.
//
// Lock order is domain lock, then object locks in source-before-target
// order along graph edges. The graph is acyclic by construction (a
// submission only adds edges into the new node from nodes that already
// exist, and out of it into the root and into open pool nodes, none of which
// can reach back to it), so this order cannot deadlock.
package depend
