// Package model contains domain models passed between pipeline stages.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawPlayer is one player record exactly as the snapshot source reports it.
// Money fields are integer tenths of the currency unit.
type RawPlayer struct {
	ID                int
	FirstName         string
	SecondName        string
	Team              int
	ElementType       int
	NowCost           int
	TransfersInEvent  int
	TransfersOutEvent int
	SelectedByPercent string // decimal encoded as a string, e.g. "45.3"
	CostChangeEvent   int
	Form              string // decimal encoded as a string; passed through verbatim
}

// RawTeam is one team record from the snapshot.
type RawTeam struct {
	ID        int
	Name      string
	ShortName string
}

// Snapshot is the atomic result of a single fetch.
type Snapshot struct {
	Players   []RawPlayer
	Teams     []RawTeam
	FetchedAt time.Time
}

// Position is the display label of a player's element type.
type Position string

// Position labels.
const (
	Goalkeeper Position = "GK"
	Defender   Position = "DEF"
	Midfielder Position = "MID"
	Forward    Position = "FWD"
	Unknown    Position = "UNK"
)

// PositionFromElementType maps element types 1..4 to a label; anything else is Unknown.
func PositionFromElementType(elementType int) Position {
	switch elementType {
	case 1:
		return Goalkeeper
	case 2:
		return Defender
	case 3:
		return Midfielder
	case 4:
		return Forward
	default:
		return Unknown
	}
}

// EnrichedPlayer is the normalized view the ranking and render stages work on.
type EnrichedPlayer struct {
	ID             int
	DisplayName    string
	TeamLabel      string
	Position       Position
	Price          decimal.Decimal
	Ownership      decimal.Decimal // percent, 0..100
	OwnershipDelta int             // transfers in minus out for the event window
	PriceDelta     decimal.Decimal // change since the event started; never zero in price reports
	Form           string
}
