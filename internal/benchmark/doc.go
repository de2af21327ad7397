// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the package loading hot paths:
//   - property tree parsing of manifests and editor files
//   - a full directory load, sequential and concurrent
//   - style inheritance over long base chains
//
// They double as the workload for PGO profiles:
//
//	go test ./internal/benchmark -run '^$' -bench . -cpuprofile default.pgo
package benchmark
