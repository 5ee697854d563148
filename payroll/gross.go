package payroll

// Overtime multipliers for hourly trade work.
const (
	timeAndHalfMultiplier = 1.5
	doubleTimeMultiplier  = 2.0
)

// GrossPay computes the period's gross pay breakdown.
//
// Each hour category is paid at its effective rate: the hourly rate times
// the category multiplier, plus the shift premium per hour worked. Travel
// hours are paid at the flat travel rate (no premium) and are taxable
// wage. Per-diem allowances are non-taxable. Every published amount is
// rounded to cents.
func (c Calculator) GrossPay(in PayPeriodInput) GrossPayBreakdown {
	rate := in.HourlyRate
	premium := in.ShiftPremium

	straight := rate.Add(premium).MulFloat(in.StraightHours).Round2()
	timeAndHalf := rate.MulFloat(timeAndHalfMultiplier).Add(premium).MulFloat(in.TimeAndHalfHours).Round2()
	double := rate.MulFloat(doubleTimeMultiplier).Add(premium).MulFloat(in.DoubleTimeHours).Round2()
	travel := in.TravelRate.MulFloat(in.TravelHours).Round2()
	perDiem := in.PerDiemRate.MulInt(in.PerDiemDays).Round2()

	wage := straight.Add(timeAndHalf).Add(double).Add(travel).Round2()
	allowances := perDiem

	return GrossPayBreakdown{
		StraightPay:    straight,
		TimeAndHalfPay: timeAndHalf,
		DoubleTimePay:  double,
		TravelPay:      travel,
		PerDiem:        perDiem,
		TaxableWage:    wage,
		NonTaxable:     allowances,
		Total:          wage.Add(allowances).Round2(),
	}
}
