package calculator

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/floats"

	"StockDash/internal/model"
)

// BoxStats computes the five-number summary of the defined values, with
// whiskers at the most extreme values inside 1.5 IQR of the quartiles.
func BoxStats(name string, values model.Values) (model.Box, error) {
	data := values.Valid()
	if len(data) == 0 {
		return model.Box{}, errors.New("no defined values")
	}
	slices.Sort(data)

	q1 := Quantile(data, 0.25)
	q3 := Quantile(data, 0.75)
	iqr := q3 - q1
	lowFence := q1 - 1.5*iqr
	highFence := q3 + 1.5*iqr

	box := model.Box{
		Name:         name,
		Min:          floats.Min(data),
		Q1:           q1,
		Median:       Quantile(data, 0.5),
		Q3:           q3,
		Max:          floats.Max(data),
		LowerWhisker: q1,
		UpperWhisker: q3,
	}
	for _, v := range data {
		if v < lowFence || v > highFence {
			box.Outliers++
			continue
		}
		if v < box.LowerWhisker {
			box.LowerWhisker = v
		}
		if v > box.UpperWhisker {
			box.UpperWhisker = v
		}
	}
	return box, nil
}
