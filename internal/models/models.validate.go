package models

import (
	"fmt"

	"github.com/ikigain/ForestOS/internal/errors"
)

func percent(field string, v float64) error {
	return between(field, v, 0, 100)
}

func between(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return errors.NewValidationError(fmt.Sprintf("%s must be between %g and %g", field, lo, hi), nil)
	}
	return nil
}

func optionalPercent(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return percent(field, *v)
}

func optionalIntPercent(field string, v *int) error {
	if v == nil {
		return nil
	}
	return percent(field, float64(*v))
}
