package domain

import "time"

// NamedList is an ordered sequence of elements with a display name.
type NamedList struct {
	Name   string
	Source string // Optional: file the list was read from
	Values []Value
}

// ListRef points at a list file in a workspace.
type ListRef struct {
	Path  string
	Names []string
}

// ListResult is the sum of a single NamedList.
type ListResult struct {
	Name   string
	Source string
	Sum    SumResult
}

// Report collects the results of summing several lists in order.
type Report struct {
	Policy    Policy
	Results   []ListResult
	StartedAt time.Time
	EndedAt   time.Time
}

// WorkspaceSpec describes where a workspace should be initialized.
type WorkspaceSpec struct {
	Root string
}
