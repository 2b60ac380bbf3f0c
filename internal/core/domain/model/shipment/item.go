package shipment

import (
	"errors"
	"strings"

	"shipping/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of the shipment's contents.
type Item struct {
	description string
	quantity    int
	weightKg    *float64
	lengthCm    *float64
	widthCm     *float64
	heightCm    *float64

	isConstructed bool
}

// NewItem requires a description and a quantity of at least one. Optional
// measurements must be positive when supplied.
func NewItem(description string, quantity int, weightKg, lengthCm, widthCm, heightCm *float64) (Item, error) {
	item := Item{
		description:   strings.TrimSpace(description),
		quantity:      quantity,
		weightKg:      weightKg,
		lengthCm:      lengthCm,
		widthCm:       widthCm,
		heightCm:      heightCm,
		isConstructed: true,
	}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	if err := errors.Join(
		required("description", item.description),
		quantityErr,
		positive("weight_kg", weightKg),
		positive("length_cm", lengthCm),
		positive("width_cm", widthCm),
		positive("height_cm", heightCm),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i Item) Description() string { return i.description }
func (i Item) Quantity() int { return i.quantity }
func (i Item) WeightKg() *float64 { return i.weightKg }
func (i Item) LengthCm() *float64 { return i.lengthCm }
func (i Item) WidthCm() *float64 { return i.widthCm }
func (i Item) HeightCm() *float64 { return i.heightCm }

func positive(param string, value *float64) error {
	if value != nil && *value <= 0 {
		return errs.NewValueIsOutOfRangeError(param, *value, "> 0", "unbounded")
	}
	return nil
}
