package bootstrap

import "github.com/okian/fplpulse/internal/domain/model"

// Wire shapes of the bootstrap-static document. Pointer fields make a
// missing key distinguishable from a zero value.

type payload struct {
	Elements []element `json:"elements" validate:"required,dive"`
	Teams    []team    `json:"teams" validate:"required,dive"`
}

type element struct {
	ID                *int    `json:"id" validate:"required"`
	FirstName         *string `json:"first_name" validate:"required"`
	SecondName        *string `json:"second_name" validate:"required"`
	Team              *int    `json:"team" validate:"required"`
	ElementType       *int    `json:"element_type" validate:"required"`
	NowCost           *int    `json:"now_cost" validate:"required"`
	TransfersInEvent  *int    `json:"transfers_in_event" validate:"required"`
	TransfersOutEvent *int    `json:"transfers_out_event" validate:"required"`
	SelectedByPercent *string `json:"selected_by_percent" validate:"required"`
	CostChangeEvent   *int    `json:"cost_change_event" validate:"required"`
	Form              *string `json:"form" validate:"required"`
}

type team struct {
	ID        *int    `json:"id" validate:"required"`
	Name      *string `json:"name" validate:"required"`
	ShortName *string `json:"short_name" validate:"required"`
}

func (e element) toModel() model.RawPlayer {
	return model.RawPlayer{
		ID:                *e.ID,
		FirstName:         *e.FirstName,
		SecondName:        *e.SecondName,
		Team:              *e.Team,
		ElementType:       *e.ElementType,
		NowCost:           *e.NowCost,
		TransfersInEvent:  *e.TransfersInEvent,
		TransfersOutEvent: *e.TransfersOutEvent,
		SelectedByPercent: *e.SelectedByPercent,
		CostChangeEvent:   *e.CostChangeEvent,
		Form:              *e.Form,
	}
}

func (t team) toModel() model.RawTeam {
	return model.RawTeam{ID: *t.ID, Name: *t.Name, ShortName: *t.ShortName}
}
