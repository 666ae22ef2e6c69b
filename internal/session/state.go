// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import "fmt"

// State is a step of a split session. States only move forward.
type State int

const (
	StateStart State = iota
	StateDirectoryResolved
	StateFilesListed
	StateFileSelected
	StateSourceOpened
	StatePlanCollected
	StateGenerated
	StateEnd
)

var stateNames = [...]string{
	StateStart:             "start",
	StateDirectoryResolved: "directory resolved",
	StateFilesListed:       "files listed",
	StateFileSelected:      "file selected",
	StateSourceOpened:      "source opened",
	StatePlanCollected:     "plan collected",
	StateGenerated:         "generated",
	StateEnd:               "end",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
