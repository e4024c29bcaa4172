// Package harness runs YAML-defined end-to-end scenarios against a real
// engine backed by a throwaway snapshot file.
//
// A scenario is a sequence of register/guess/list/delete steps with
// expected outcomes, plus final assertions on solve status and partition
// counts. Each run gets a fresh registry, a fixed clock, and a fixture
// item dictionary, so transcripts are deterministic and can be compared
// against golden files.
package harness
