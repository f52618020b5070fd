/*
Package domain contains the core domain models of the Placify wizard engine.

It defines the fundamental entities of a guided form flow: field definitions,
ordered steps, the wizard definition that ties them together, and the mutable
session that tracks a single user's progress. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Field: A named, typed input with the kind of validator applied to it.
  - Step: One screen of the wizard, governing an ordered subset of fields.
  - Definition: The immutable step-field table for a wizard.
  - Session: The runtime snapshot of a wizard (current step, values, error flags, status).
  - Submission / Receipt: The single outbound request and its acknowledgment.
*/
package domain
