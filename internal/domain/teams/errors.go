package teams

import "errors"

var (
	// ErrUnresolvedTeam indicates a player references a team id missing from the snapshot.
	ErrUnresolvedTeam = errors.New("unresolved team id")
	// ErrBlankLabel indicates a team record has no label for the selected mode.
	ErrBlankLabel = errors.New("blank team label")
)
