package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/pipeline-crm/internal/domain"
)

// Stage is a step of the sales pipeline a customer occupies.
type Stage string

// Pipeline stages, in display order. Transitions between any two stages are allowed.
const (
	StageEnquiry Stage = "Enquiry"
	StageLead    Stage = "Lead"
	StageBooking Stage = "Booking"
	StageRetail  Stage = "Retail"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageEnquiry, StageLead, StageBooking, StageRetail}

const retailLabel = "Retail / Order Complete"

// Valid reports whether s belongs to the enumeration.
func (s Stage) Valid() bool {
	switch s {
	case StageEnquiry, StageLead, StageBooking, StageRetail:
		return true
	}
	return false
}

// Label is the text shown to users.
func (s Stage) Label() string {
	if s == StageRetail {
		return retailLabel
	}
	return string(s)
}

// Order is the position of the stage in the pipeline (-1 for unknown stages).
func (s Stage) Order() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStage accepts either the stage value or its display label.
func ParseStage(raw string) (Stage, error) {
	raw = strings.TrimSpace(raw)
	if raw == retailLabel {
		return StageRetail, nil
	}
	s := Stage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown stage %q", domain.ErrValidation, raw)
	}
	return s, nil
}

// BusinessType classifies what the customer produces.
type BusinessType string

// Business types.
const (
	BusinessMurukku BusinessType = "Murukku"
	BusinessSnacks  BusinessType = "Snacks"
)

// BusinessTypes lists every business type.
var BusinessTypes = []BusinessType{BusinessMurukku, BusinessSnacks}

// Valid reports whether b belongs to the enumeration.
func (b BusinessType) Valid() bool {
	return b == BusinessMurukku || b == BusinessSnacks
}

// ParseBusinessType validates a raw business type.
func ParseBusinessType(raw string) (BusinessType, error) {
	b := BusinessType(strings.TrimSpace(raw))
	if !b.Valid() {
		return "", fmt.Errorf("%w: unknown business type %q", domain.ErrValidation, raw)
	}
	return b, nil
}
