/*
Package cria composes LLM prompts from a tree of typed nodes and renders them
into a provider-native message layout while keeping the total token count
under a caller-specified budget.

Design Philosophy:

 1. One coherent core. The prompt intermediate representation (Node, Part),
    the layout pass that flattens it, and the budget-enforcing fit loop are
    tightly coupled and live together in this package. Everything pluggable —
    concrete codecs, provider adapters, reduction strategies, KV/vector
    stores, the OpenTelemetry hook adapter — lives under internal/ and talks
    to the core only through the interfaces declared here.

 2. Deterministic reduction. When a tree's rendered layout exceeds the
    budget, the fit loop repeatedly invokes the highest-priority reducible
    scope's Strategy until the layout fits or no reducer remains. The trace
    of decisions is identical across runs for the same input.

 3. Structural sharing. Strategies replace one scope at a time; siblings and
    unrelated subtrees keep their identity across iterations so token and
    summary caches keyed by node pointer stay warm.

Most callers only need Render, Node/Scope/Message/Part to build a tree, and a
ModelProvider from internal/provider.
*/
package cria
