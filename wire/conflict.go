//go:build harness && checker

package wire

// The harness and checker roles are never linked into the same binary, this
// declaration refers to an undefined name so the build fails when both tags
// are set.
var _ = harnessAndCheckerTagsAreMutuallyExclusive
