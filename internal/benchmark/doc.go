// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks of the listing hot paths, used to
// produce PGO profiles:
//   - manifest parsing
//   - specifier map normalization
//   - wildcard expansion over large packages
//   - the end-to-end listing
//
// To generate a profile, run:
//
//	go test ./internal/benchmark -bench . -cpuprofile default.pgo
package benchmark
