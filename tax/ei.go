package tax

import "github.com/marko9795/boilermaker/money"

// EIResult is one period's Employment Insurance premium.
type EIResult struct {
	Premium money.Money
}

// EI computes the employee EI premium for one pay period. The premium base
// is the period's insurable earnings clipped to the room remaining under
// the annual maximum insurable earnings. Negative inputs degrade to zero.
func (c Calculator) EI(insurable, ytdInsurable money.Money, periodsPerYear int) EIResult {
	t := c.Tables.EI

	room := t.MIE.Sub(ytdInsurable.Clamp0()).Clamp0()
	base := money.Min(insurable.Clamp0(), room)

	return EIResult{Premium: base.Mul(t.Rate).Round2()}
}
