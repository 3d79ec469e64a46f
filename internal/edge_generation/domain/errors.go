package domain

import "errors"

var (
	// ErrNoCriteriaEnabled is returned when a criteria config enables none of
	// the four edge criteria. Rejected before any computation starts.
	ErrNoCriteriaEnabled = errors.New("at least one edge creation criterion must be enabled")

	// ErrNotEnoughNodes is returned by the rebuild path when the graph has
	// fewer than two nodes. Callers surface it as a structured result, not a
	// server error.
	ErrNotEnoughNodes = errors.New("not enough nodes to create edges")
)

// NotEnoughNodesMessage is the user-visible message for ErrNotEnoughNodes.
const NotEnoughNodesMessage = "Not enough nodes to create edges"
