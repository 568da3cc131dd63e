package models

import (
	"strings"
	"time"
)

// FermentationBatch records the process parameters of one fermentation vessel.
type FermentationBatch struct {
	ID                  string      `json:"id"`
	FermentationID      string      `json:"fermentationId"`
	Date                time.Time   `json:"date"`
	Volume              float64     `json:"volume"`
	IncomingJuiceID     *string     `json:"incomingJuiceId"`
	IncomingJuiceVolume *float64    `json:"incomingJuiceVolume"`
	JuiceSource         *string     `json:"juiceSource"`
	Brix                *float64    `json:"brix"`
	ABV                 *float64    `json:"abv"`
	SulfiteAdded        *float64    `json:"sulfiteAdded"`
	YeastStrain         *string     `json:"yeastStrain"`
	YeastWeight         *float64    `json:"yeastWeight"`
	PH                  *float64    `json:"ph"`
	TitratableAcidity   *float64    `json:"titratableAcidity"`
	CopperSulfateAdded  *float64    `json:"copperSulfateAdded"`
	RackingDates        []time.Time `json:"rackingDates"`
	Notes               *string     `json:"notes"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

func (f FermentationBatch) Clone() FermentationBatch {
	f.IncomingJuiceID = clonePtr(f.IncomingJuiceID)
	f.IncomingJuiceVolume = clonePtr(f.IncomingJuiceVolume)
	f.JuiceSource = clonePtr(f.JuiceSource)
	f.Brix = clonePtr(f.Brix)
	f.ABV = clonePtr(f.ABV)
	f.SulfiteAdded = clonePtr(f.SulfiteAdded)
	f.YeastStrain = clonePtr(f.YeastStrain)
	f.YeastWeight = clonePtr(f.YeastWeight)
	f.PH = clonePtr(f.PH)
	f.TitratableAcidity = clonePtr(f.TitratableAcidity)
	f.CopperSulfateAdded = clonePtr(f.CopperSulfateAdded)
	f.RackingDates = cloneSlice(f.RackingDates)
	f.Notes = clonePtr(f.Notes)
	return f
}

type CreateFermentationBatchInput struct {
	FermentationID      string      `json:"fermentationId" validate:"required,max=100"`
	Date                time.Time   `json:"date" validate:"required"`
	Volume              float64     `json:"volume" validate:"required,gt=0"`
	IncomingJuiceID     *string     `json:"incomingJuiceId" validate:"omitempty,max=100"`
	IncomingJuiceVolume *float64    `json:"incomingJuiceVolume" validate:"omitnil,gte=0"`
	JuiceSource         *string     `json:"juiceSource" validate:"omitempty,max=200"`
	Brix                *float64    `json:"brix" validate:"omitnil,gte=0"`
	ABV                 *float64    `json:"abv" validate:"omitnil,gte=0,lte=100"`
	SulfiteAdded        *float64    `json:"sulfiteAdded" validate:"omitnil,gte=0"`
	YeastStrain         *string     `json:"yeastStrain" validate:"omitempty,max=200"`
	YeastWeight         *float64    `json:"yeastWeight" validate:"omitnil,gte=0"`
	PH                  *float64    `json:"ph" validate:"omitnil,gte=0,lte=14"`
	TitratableAcidity   *float64    `json:"titratableAcidity" validate:"omitnil,gte=0"`
	CopperSulfateAdded  *float64    `json:"copperSulfateAdded" validate:"omitnil,gte=0"`
	RackingDates        []time.Time `json:"rackingDates" validate:"omitempty,max=50"`
	Notes               *string     `json:"notes" validate:"omitempty,max=5000"`
}

type UpdateFermentationBatchInput struct {
	FermentationID      *string      `json:"fermentationId" validate:"omitnil,min=1,max=100"`
	Date                *time.Time   `json:"date"`
	Volume              *float64     `json:"volume" validate:"omitnil,gt=0"`
	IncomingJuiceID     *string      `json:"incomingJuiceId" validate:"omitempty,max=100"`
	IncomingJuiceVolume *float64     `json:"incomingJuiceVolume" validate:"omitnil,gte=0"`
	JuiceSource         *string      `json:"juiceSource" validate:"omitempty,max=200"`
	Brix                *float64     `json:"brix" validate:"omitnil,gte=0"`
	ABV                 *float64     `json:"abv" validate:"omitnil,gte=0,lte=100"`
	SulfiteAdded        *float64     `json:"sulfiteAdded" validate:"omitnil,gte=0"`
	YeastStrain         *string      `json:"yeastStrain" validate:"omitempty,max=200"`
	YeastWeight         *float64     `json:"yeastWeight" validate:"omitnil,gte=0"`
	PH                  *float64     `json:"ph" validate:"omitnil,gte=0,lte=14"`
	TitratableAcidity   *float64     `json:"titratableAcidity" validate:"omitnil,gte=0"`
	CopperSulfateAdded  *float64     `json:"copperSulfateAdded" validate:"omitnil,gte=0"`
	RackingDates        *[]time.Time `json:"rackingDates" validate:"omitnil,max=50"`
	Notes               *string      `json:"notes" validate:"omitempty,max=5000"`
}

// Apply merges the fields present in p over f.
func (f *FermentationBatch) Apply(p UpdateFermentationBatchInput) {
	if p.FermentationID != nil {
		f.FermentationID = strings.TrimSpace(*p.FermentationID)
	}
	if p.Date != nil && !p.Date.IsZero() {
		f.Date = *p.Date
	}
	if p.Volume != nil {
		f.Volume = *p.Volume
	}
	if p.IncomingJuiceID != nil {
		f.IncomingJuiceID = OptionalString(p.IncomingJuiceID)
	}
	if p.IncomingJuiceVolume != nil {
		f.IncomingJuiceVolume = clonePtr(p.IncomingJuiceVolume)
	}
	if p.JuiceSource != nil {
		f.JuiceSource = OptionalString(p.JuiceSource)
	}
	if p.Brix != nil {
		f.Brix = clonePtr(p.Brix)
	}
	if p.ABV != nil {
		f.ABV = clonePtr(p.ABV)
	}
	if p.SulfiteAdded != nil {
		f.SulfiteAdded = clonePtr(p.SulfiteAdded)
	}
	if p.YeastStrain != nil {
		f.YeastStrain = OptionalString(p.YeastStrain)
	}
	if p.YeastWeight != nil {
		f.YeastWeight = clonePtr(p.YeastWeight)
	}
	if p.PH != nil {
		f.PH = clonePtr(p.PH)
	}
	if p.TitratableAcidity != nil {
		f.TitratableAcidity = clonePtr(p.TitratableAcidity)
	}
	if p.CopperSulfateAdded != nil {
		f.CopperSulfateAdded = clonePtr(p.CopperSulfateAdded)
	}
	if p.RackingDates != nil {
		f.RackingDates = nonNil(cloneSlice(*p.RackingDates))
	}
	if p.Notes != nil {
		f.Notes = OptionalString(p.Notes)
	}
}
