// Package statistics tallies rollout outcomes and derives confidence bounds
// for the equity estimate.
package statistics

import (
	"fmt"
	"math"
)

// Outcome is the hero's result in one rollout.
type Outcome uint8

const (
	Loss Outcome = iota
	Tie
	Win
)

// Payoff is the value backpropagated for the outcome.
func (o Outcome) Payoff() float64 {
	switch o {
	case Win:
		return 1
	case Tie:
		return 0.5
	default:
		return 0
	}
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Tie:
		return "tie"
	default:
		return "loss"
	}
}

// Rollouts accumulates outcomes. The zero value is ready to use.
type Rollouts struct {
	Wins   int
	Ties   int
	Losses int

	// Underflows counts rollouts that could not deal a full hand. They score
	// as losses but are tracked separately.
	Underflows int

	sum  float64
	sum2 float64
}

// Add records one outcome.
func (r *Rollouts) Add(o Outcome) {
	switch o {
	case Win:
		r.Wins++
	case Tie:
		r.Ties++
	default:
		r.Losses++
	}
	p := o.Payoff()
	r.sum += p
	r.sum2 += p * p
}

// AddUnderflow records a rollout that ran out of cards.
func (r *Rollouts) AddUnderflow() {
	r.Underflows++
	r.Add(Loss)
}

// Merge folds other into r.
func (r *Rollouts) Merge(other Rollouts) {
	r.Wins += other.Wins
	r.Ties += other.Ties
	r.Losses += other.Losses
	r.Underflows += other.Underflows
	r.sum += other.sum
	r.sum2 += other.sum2
}

// Count is the number of rollouts recorded.
func (r *Rollouts) Count() int {
	return r.Wins + r.Ties + r.Losses
}

// Payoff is the summed payoff of all rollouts.
func (r *Rollouts) Payoff() float64 {
	return r.sum
}

// Mean is the average payoff, the equity estimate.
func (r *Rollouts) Mean() float64 {
	n := r.Count()
	if n == 0 {
		return 0
	}
	return r.sum / float64(n)
}

// Variance returns the sample variance of the payoffs.
func (r *Rollouts) Variance() float64 {
	n := r.Count()
	if n < 2 {
		return 0
	}
	mean := r.Mean()
	v := (r.sum2 - float64(n)*mean*mean) / float64(n-1)
	if v < 0 {
		// rounding on all-equal payoffs
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of the payoffs.
func (r *Rollouts) StdDev() float64 {
	return math.Sqrt(r.Variance())
}

// StdError returns the standard error of the mean.
func (r *Rollouts) StdError() float64 {
	n := r.Count()
	if n == 0 {
		return 0
	}
	return r.StdDev() / math.Sqrt(float64(n))
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for the
// mean, clamped to [0, 1].
func (r *Rollouts) ConfidenceInterval95() (float64, float64) {
	mean := r.Mean()
	margin := 1.96 * r.StdError()
	return math.Max(0, mean-margin), math.Min(1, mean+margin)
}

// Validate checks the payoff sum against the outcome counts.
func (r *Rollouts) Validate() error {
	if r.Wins < 0 || r.Ties < 0 || r.Losses < 0 || r.Underflows < 0 {
		return fmt.Errorf("negative counts: %d/%d/%d/%d", r.Wins, r.Ties, r.Losses, r.Underflows)
	}
	if r.Underflows > r.Losses {
		return fmt.Errorf("underflows (%d) exceed losses (%d)", r.Underflows, r.Losses)
	}
	want := float64(r.Wins) + float64(r.Ties)/2
	if math.Abs(r.sum-want) > 1e-6 {
		return fmt.Errorf("payoff mismatch: sum=%.6f, wins+ties/2=%.6f", r.sum, want)
	}
	return nil
}
