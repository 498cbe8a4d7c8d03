package domain

// TimeDuration expresses time to expiry as a magnitude together with the
// number of such units in a year (365 for calendar days, 252 for trading
// days, 12 for months, 1 for years).
type TimeDuration struct {
	Value  float64 `json:"value"`
	Factor float64 `json:"factor"`
}

// NewTimeDuration builds a duration, rejecting non-positive factors.
func NewTimeDuration(value, factor float64) (TimeDuration, error) {
	if factor <= 0 {
		return TimeDuration{}, ErrInvalidDuration
	}
	return TimeDuration{Value: value, Factor: factor}, nil
}

// ToYears converts the duration to a year fraction.
func (d TimeDuration) ToYears() (float64, error) {
	if d.Factor <= 0 {
		return 0, ErrInvalidDuration
	}
	return d.Value / d.Factor, nil
}
