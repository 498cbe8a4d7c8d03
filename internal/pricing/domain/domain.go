// Package domain holds the pricing domain model: the binomial lattice
// kernel, the duration value object and the pricing result entity.
package domain

import "errors"

var (
	ErrInvalidOptionType = errors.New("invalid option type")
	// ErrInvalidStepCount is returned when the lattice step count is zero
	// or negative: there is no time step to discretize.
	ErrInvalidStepCount = errors.New("invalid step count")
	// ErrInvalidDuration is returned when a duration's factor is not
	// positive, which would make the year conversion undefined.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidParams is returned when spot, strike, volatility or time
	// to expiry is not positive.
	ErrInvalidParams = errors.New("invalid pricing parameters")
	// ErrDegenerateLattice is returned when the up and down factors
	// coincide (sigma*sqrt(dt) underflowed to zero) and the risk-neutral
	// probability is undefined.
	ErrDegenerateLattice = errors.New("degenerate lattice")
	ErrResultNotFound    = errors.New("pricing result not found")
)

// OptionType is the contract right being priced.
type OptionType string

const (
	OptionTypeCall OptionType = "CALL"
	OptionTypePut  OptionType = "PUT"
)

// sign maps the option type onto the +-1 payoff sign so calls and puts
// share one payoff formula.
func (t OptionType) sign() (float64, error) {
	switch t {
	case OptionTypeCall:
		return 1.0, nil
	case OptionTypePut:
		return -1.0, nil
	default:
		return 0, ErrInvalidOptionType
	}
}

// Valid reports whether t is a known option type.
func (t OptionType) Valid() bool {
	return t == OptionTypeCall || t == OptionTypePut
}
