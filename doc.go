/*
Package espalier resolves the flow of dynamic questionnaires: tree-shaped
question definitions whose path through the tree depends on the answers given
so far.

Each request carries the answers a client has just produced. The engine
normalizes them, merges them into the session's saved progress in insertion
order, detects answer edits that switch the active branch, prunes the subtree
the old answer had opened, and returns either the next unanswered question or
the terminal summary of the completed branch.

# Concept

A questionnaire is a flat list of questions indexed by code. Boolean and combo
questions branch: each of their predefined answers may point at a child
question. All other types are linear, with at most one child of their own.
The chain of followed child references from the root is the active branch;
answers outside it are kept in storage but never shown.

# Usage

Initialize the engine from a definition loader. The definition is validated
at load (duplicate codes, dangling references, cycles) and immutable
afterwards.

	package main

	import (
		"context"
		"log"

		"github.com/lbatista/espalier"
		"github.com/lbatista/espalier/pkg/adapters/file"
	)

	func main() {
		ctx := context.Background()
		eng, err := espalier.New(ctx, file.NewLoader("questionnaire.yaml"))
		if err != nil {
			log.Fatal(err)
		}

		out, err := eng.NextStep(ctx, "session-123", map[string]any{
			"answers": []any{
				map[string]any{"questionCode": "Q1", "value": "Y"},
			},
		})
		if err != nil {
			log.Fatal(err)
		}
		if out.Done {
			log.Printf("complete: %d answers", len(out.Summary))
			return
		}
		log.Printf("next question: %s", out.Next.Code)
	}

Sessions persist through a pluggable store (in-memory, Redis, Postgres) and
all mutation of one session is serialized, optionally across replicas with a
distributed lock.
*/
package espalier
