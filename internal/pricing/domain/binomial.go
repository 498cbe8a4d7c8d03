package domain

import "math"

// BinomialInput carries the Cox-Ross-Rubinstein lattice parameters.
type BinomialInput struct {
	S     float64 // spot price
	K     float64 // strike price
	T     float64 // time to expiry in years
	R     float64 // annualized risk-free rate
	Sigma float64 // annualized volatility
	Steps int     // lattice time steps
}

func (in BinomialInput) validate() error {
	if in.Steps <= 0 {
		return ErrInvalidStepCount
	}
	if in.S <= 0 || in.K <= 0 || in.Sigma <= 0 || in.T <= 0 {
		return ErrInvalidParams
	}
	return nil
}

// CalculateBinomial prices a vanilla American option on a recombining CRR
// lattice: u = exp(sigma*sqrt(dt)), d = 1/u, with early exercise checked at
// every interior node.
//
// The risk-neutral probability p = (a-d)/(u-d) is intentionally not clamped
// to [0,1]; for extreme volatility relative to the step size it can leave
// that range, a known limitation of the CRR parameterization.
func CalculateBinomial(optionType OptionType, in BinomialInput) (float64, error) {
	return binomialPrice(optionType, in, true)
}

func binomialPrice(optionType OptionType, in BinomialInput, american bool) (float64, error) {
	sign, err := optionType.sign()
	if err != nil {
		return 0, err
	}
	if err := in.validate(); err != nil {
		return 0, err
	}

	n := in.Steps
	dt := in.T / float64(n)

	u := math.Exp(in.Sigma * math.Sqrt(dt))
	d := 1.0 / u
	if u == d {
		return 0, ErrDegenerateLattice
	}

	a := math.Exp(in.R * dt)
	p := (a - d) / (u - d)
	df := math.Exp(-in.R * dt)

	// base folds the strike into the signed payoff: max(sign*S + base, 0)
	// covers both calls and puts.
	base := -sign * in.K

	// Terminal stock prices, built from the all-up node downward along the
	// recombining lattice.
	stock := make([]float64, n+1)
	stock[n] = in.S * math.Pow(u, float64(n))
	for j := n - 1; j >= 0; j-- {
		stock[j] = stock[j+1] * (d / u)
	}

	values := make([]float64, n+1)
	for j := 0; j <= n; j++ {
		values[j] = math.Max(sign*stock[j]+base, 0)
	}

	// Backward induction. Ascending j writes only values[j], which later
	// iterations never read again, so a single buffer suffices: values[j]
	// and values[j+1] still hold the later slice when they are read.
	for i := n - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			continuation := df * (p*values[j+1] + (1-p)*values[j])
			if !american {
				values[j] = continuation
				continue
			}
			sNode := in.S * math.Pow(u, float64(j)) * math.Pow(d, float64(i-j))
			intrinsic := math.Max(sign*sNode+base, 0)
			values[j] = math.Max(intrinsic, continuation)
		}
	}

	return values[0], nil
}
