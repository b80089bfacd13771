/*
Package flow implements the questionnaire flow-resolution core: answer
normalization, saved-vs-incoming edit detection, stale-subtree pruning,
order-preserving state merge, answered-branch reconstruction and summary
building.

The Engine ties these pieces together per request: normalize, detect, prune,
merge, persist, resolve. Everything here is synchronous, bounded and CPU-only;
the session store is the only collaborator performing I/O.
*/
package flow
