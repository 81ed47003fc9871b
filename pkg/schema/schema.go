// Package schema defines the documents exchanged with the remote agent
// service: agent configurations, agents, workflow submissions and
// workflow results. Documents are schema-less beyond the fields named
// here; unknown keys are carried through unchanged.
package schema
