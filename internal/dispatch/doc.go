// SPDX-License-Identifier: MPL-2.0

// Package dispatch selects an execution branch from the environment
// profile and host platform, composes the required environment
// transforms, and delegates to exactly one external collaborator,
// propagating its exit status.
package dispatch
