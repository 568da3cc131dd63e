package models

import (
	"strings"
	"time"
)

// CiderType is a product recipe that kegs are filled with.
type CiderType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Style       *string   `json:"style"`
	ABV         *float64  `json:"abv"`
	IBU         *int      `json:"ibu"`
	SRM         *float64  `json:"srm"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c CiderType) Clone() CiderType {
	c.Description = clonePtr(c.Description)
	c.Style = clonePtr(c.Style)
	c.ABV = clonePtr(c.ABV)
	c.IBU = clonePtr(c.IBU)
	c.SRM = clonePtr(c.SRM)
	return c
}

type CreateCiderTypeInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Style       *string  `json:"style" validate:"omitempty,max=100"`
	ABV         *float64 `json:"abv" validate:"omitnil,gte=0,lte=100"`
	IBU         *int     `json:"ibu" validate:"omitnil,gte=0,lte=1000"`
	SRM         *float64 `json:"srm" validate:"omitnil,gte=0,lte=100"`
	IsActive    *bool    `json:"isActive"`
}

type UpdateCiderTypeInput struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Style       *string  `json:"style" validate:"omitempty,max=100"`
	ABV         *float64 `json:"abv" validate:"omitnil,gte=0,lte=100"`
	IBU         *int     `json:"ibu" validate:"omitnil,gte=0,lte=1000"`
	SRM         *float64 `json:"srm" validate:"omitnil,gte=0,lte=100"`
	IsActive    *bool    `json:"isActive"`
}

// Apply merges the fields present in p over c.
func (c *CiderType) Apply(p UpdateCiderTypeInput) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		c.Description = OptionalString(p.Description)
	}
	if p.Style != nil {
		c.Style = OptionalString(p.Style)
	}
	if p.ABV != nil {
		c.ABV = clonePtr(p.ABV)
	}
	if p.IBU != nil {
		c.IBU = clonePtr(p.IBU)
	}
	if p.SRM != nil {
		c.SRM = clonePtr(p.SRM)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

// IngredientVolume is one liquid or juice addition to a batch.
type IngredientVolume struct {
	Type   string   `json:"type" validate:"required,max=100"`
	Volume *float64 `json:"volume" validate:"omitnil,gte=0"`
}

// CanFill records cans filled on one day.
type CanFill struct {
	Date     time.Time `json:"date" validate:"required"`
	Quantity int       `json:"quantity" validate:"gte=0"`
}

// CiderBatch is one production run of a CiderType, with its packaging counts.
type CiderBatch struct {
	ID                         string             `json:"id"`
	CiderTypeID                string             `json:"ciderTypeId"`
	BatchNumber                string             `json:"batchNumber"`
	Date                       *time.Time         `json:"date"`
	Brix                       *float64           `json:"brix"`
	LiquidIngredients          []IngredientVolume `json:"liquidIngredients"`
	Juices                     []IngredientVolume `json:"juices"`
	PoundsSugar                *float64           `json:"poundsSugar"`
	AdditionalIngredientNotes  *string            `json:"additionalIngredientNotes"`
	BatchNotes                 *string            `json:"batchNotes"`
	HalfBarrelsPackaged        int                `json:"halfBarrelsPackaged"`
	SixthBarrelsPackaged       int                `json:"sixthBarrelsPackaged"`
	CansFilled                 []CanFill          `json:"cansFilled"`
	ProductLostDuringPackaging float64            `json:"productLostDuringPackaging"`
	CreatedAt                  time.Time          `json:"createdAt"`
	UpdatedAt                  time.Time          `json:"updatedAt"`
}

func (b CiderBatch) Clone() CiderBatch {
	b.Date = clonePtr(b.Date)
	b.Brix = clonePtr(b.Brix)
	b.PoundsSugar = clonePtr(b.PoundsSugar)
	b.AdditionalIngredientNotes = clonePtr(b.AdditionalIngredientNotes)
	b.BatchNotes = clonePtr(b.BatchNotes)
	b.LiquidIngredients = cloneVolumes(b.LiquidIngredients)
	b.Juices = cloneVolumes(b.Juices)
	b.CansFilled = cloneSlice(b.CansFilled)
	return b
}

// TotalCans sums every can fill of the batch.
func (b CiderBatch) TotalCans() int {
	total := 0
	for _, fill := range b.CansFilled {
		total += fill.Quantity
	}
	return total
}

func cloneVolumes(in []IngredientVolume) []IngredientVolume {
	if in == nil {
		return nil
	}
	out := make([]IngredientVolume, len(in))
	for i, v := range in {
		out[i] = IngredientVolume{Type: v.Type, Volume: clonePtr(v.Volume)}
	}
	return out
}

type CreateCiderBatchInput struct {
	CiderTypeID                string             `json:"ciderTypeId" validate:"required,max=64"`
	BatchNumber                string             `json:"batchNumber" validate:"required,max=100"`
	Date                       *time.Time         `json:"date"`
	Brix                       *float64           `json:"brix" validate:"omitnil,gte=0"`
	LiquidIngredients          []IngredientVolume `json:"liquidIngredients" validate:"omitempty,max=5,dive"`
	Juices                     []IngredientVolume `json:"juices" validate:"omitempty,max=3,dive"`
	PoundsSugar                *float64           `json:"poundsSugar" validate:"omitnil,gte=0"`
	AdditionalIngredientNotes  *string            `json:"additionalIngredientNotes" validate:"omitempty,max=5000"`
	BatchNotes                 *string            `json:"batchNotes" validate:"omitempty,max=5000"`
	HalfBarrelsPackaged        int                `json:"halfBarrelsPackaged" validate:"gte=0"`
	SixthBarrelsPackaged       int                `json:"sixthBarrelsPackaged" validate:"gte=0"`
	CansFilled                 []CanFill          `json:"cansFilled" validate:"omitempty,dive"`
	ProductLostDuringPackaging float64            `json:"productLostDuringPackaging" validate:"gte=0"`
}

type UpdateCiderBatchInput struct {
	CiderTypeID                *string             `json:"ciderTypeId" validate:"omitnil,min=1,max=64"`
	BatchNumber                *string             `json:"batchNumber" validate:"omitnil,min=1,max=100"`
	Date                       *time.Time          `json:"date"`
	Brix                       *float64            `json:"brix" validate:"omitnil,gte=0"`
	LiquidIngredients          *[]IngredientVolume `json:"liquidIngredients" validate:"omitnil,max=5,dive"`
	Juices                     *[]IngredientVolume `json:"juices" validate:"omitnil,max=3,dive"`
	PoundsSugar                *float64            `json:"poundsSugar" validate:"omitnil,gte=0"`
	AdditionalIngredientNotes  *string             `json:"additionalIngredientNotes" validate:"omitempty,max=5000"`
	BatchNotes                 *string             `json:"batchNotes" validate:"omitempty,max=5000"`
	HalfBarrelsPackaged        *int                `json:"halfBarrelsPackaged" validate:"omitnil,gte=0"`
	SixthBarrelsPackaged       *int                `json:"sixthBarrelsPackaged" validate:"omitnil,gte=0"`
	CansFilled                 *[]CanFill          `json:"cansFilled" validate:"omitnil,dive"`
	ProductLostDuringPackaging *float64            `json:"productLostDuringPackaging" validate:"omitnil,gte=0"`
}

// Apply merges the fields present in p over b.
func (b *CiderBatch) Apply(p UpdateCiderBatchInput) {
	if p.CiderTypeID != nil {
		b.CiderTypeID = *p.CiderTypeID
	}
	if p.BatchNumber != nil {
		b.BatchNumber = strings.TrimSpace(*p.BatchNumber)
	}
	if p.Date != nil {
		b.Date = clonePtr(p.Date)
	}
	if p.Brix != nil {
		b.Brix = clonePtr(p.Brix)
	}
	if p.LiquidIngredients != nil {
		b.LiquidIngredients = nonNil(cloneVolumes(*p.LiquidIngredients))
	}
	if p.Juices != nil {
		b.Juices = nonNil(cloneVolumes(*p.Juices))
	}
	if p.PoundsSugar != nil {
		b.PoundsSugar = clonePtr(p.PoundsSugar)
	}
	if p.AdditionalIngredientNotes != nil {
		b.AdditionalIngredientNotes = OptionalString(p.AdditionalIngredientNotes)
	}
	if p.BatchNotes != nil {
		b.BatchNotes = OptionalString(p.BatchNotes)
	}
	if p.HalfBarrelsPackaged != nil {
		b.HalfBarrelsPackaged = *p.HalfBarrelsPackaged
	}
	if p.SixthBarrelsPackaged != nil {
		b.SixthBarrelsPackaged = *p.SixthBarrelsPackaged
	}
	if p.CansFilled != nil {
		b.CansFilled = nonNil(cloneSlice(*p.CansFilled))
	}
	if p.ProductLostDuringPackaging != nil {
		b.ProductLostDuringPackaging = *p.ProductLostDuringPackaging
	}
}

// IngredientType classifies a recorded batch ingredient.
type IngredientType string

const (
	IngredientMalt    IngredientType = "malt"
	IngredientHops    IngredientType = "hops"
	IngredientYeast   IngredientType = "yeast"
	IngredientAdjunct IngredientType = "adjunct"
	IngredientFruit   IngredientType = "fruit"
	IngredientSpice   IngredientType = "spice"
	IngredientOther   IngredientType = "other"
)

type CiderIngredient struct {
	ID             string         `json:"id"`
	BatchID        string         `json:"batchId"`
	IngredientName string         `json:"ingredientName"`
	IngredientType IngredientType `json:"ingredientType"`
	Quantity       *float64       `json:"quantity"`
	Unit           *string        `json:"unit"`
	Supplier       *string        `json:"supplier"`
	Notes          *string        `json:"notes"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (i CiderIngredient) Clone() CiderIngredient {
	i.Quantity = clonePtr(i.Quantity)
	i.Unit = clonePtr(i.Unit)
	i.Supplier = clonePtr(i.Supplier)
	i.Notes = clonePtr(i.Notes)
	return i
}

type CreateCiderIngredientInput struct {
	BatchID        string         `json:"batchId" validate:"required,max=64"`
	IngredientName string         `json:"ingredientName" validate:"required,max=200"`
	IngredientType IngredientType `json:"ingredientType" validate:"required,oneof=malt hops yeast adjunct fruit spice other"`
	Quantity       *float64       `json:"quantity" validate:"omitnil,gte=0"`
	Unit           *string        `json:"unit" validate:"omitempty,max=50"`
	Supplier       *string        `json:"supplier" validate:"omitempty,max=200"`
	Notes          *string        `json:"notes" validate:"omitempty,max=5000"`
}

type UpdateCiderIngredientInput struct {
	BatchID        *string         `json:"batchId" validate:"omitnil,min=1,max=64"`
	IngredientName *string         `json:"ingredientName" validate:"omitnil,min=1,max=200"`
	IngredientType *IngredientType `json:"ingredientType" validate:"omitnil,oneof=malt hops yeast adjunct fruit spice other"`
	Quantity       *float64        `json:"quantity" validate:"omitnil,gte=0"`
	Unit           *string         `json:"unit" validate:"omitempty,max=50"`
	Supplier       *string         `json:"supplier" validate:"omitempty,max=200"`
	Notes          *string         `json:"notes" validate:"omitempty,max=5000"`
}

// Apply merges the fields present in p over i.
func (i *CiderIngredient) Apply(p UpdateCiderIngredientInput) {
	if p.BatchID != nil {
		i.BatchID = *p.BatchID
	}
	if p.IngredientName != nil {
		i.IngredientName = strings.TrimSpace(*p.IngredientName)
	}
	if p.IngredientType != nil {
		i.IngredientType = *p.IngredientType
	}
	if p.Quantity != nil {
		i.Quantity = clonePtr(p.Quantity)
	}
	if p.Unit != nil {
		i.Unit = OptionalString(p.Unit)
	}
	if p.Supplier != nil {
		i.Supplier = OptionalString(p.Supplier)
	}
	if p.Notes != nil {
		i.Notes = OptionalString(p.Notes)
	}
}
