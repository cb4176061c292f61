package services

import (
	"net/http"

	"pos-backoffice/dtos"
)

// Phase selects the message and status code of a single-entity response.
// It never changes the data.
type Phase int

const (
	PhaseRetrieved Phase = iota
	PhaseCreated
	PhaseUpdated
	PhaseDeleted
)

func (p Phase) verb() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseUpdated:
		return "updated"
	case PhaseDeleted:
		return "deleted"
	default:
		return "retrieved"
	}
}

func (p Phase) statusCode() int {
	if p == PhaseCreated {
		return http.StatusCreated
	}
	return http.StatusOK
}

func respond(phase Phase, entity string, data any) *dtos.Response {
	return &dtos.Response{
		StatusCode: phase.statusCode(),
		Message:    entity + " " + phase.verb() + " successfully",
		Data:       data,
	}
}
