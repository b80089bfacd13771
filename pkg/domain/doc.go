/*
Package domain contains the core domain models for the Espalier engine.

It defines the static questionnaire definition (Questionnaire, Question,
Answer), the polymorphic answer payload (Value, a closed tagged union), and
the per-session persisted progress (SessionState). This package is kept pure
and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Questionnaire: the immutable tree of questions defining all possible flows.
  - Question / Answer: graph nodes and their branching edges (weak ChildRef links).
  - Value: the answer payload, one variant per supported answer data type.
  - SessionState: the ordered answers recorded for one session.
*/
package domain
