// Package luckydep is the root of a small dependency injection toolkit.
//
// The library lives in di:
//
//   - di.Registry: factories keyed by type and name, resolved on demand and
//     memoized as singletons
//   - di.Value: a single lazily built value wired by closures
//
// Subpackages:
//   - di/diotel: OpenTelemetry metrics for registry events
//   - cmd/luckygen: generates Registry provider code from a YAML or JSON spec
//   - examples/greeting, examples/lazy: runnable composition roots
package luckydep
