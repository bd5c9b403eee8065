package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// biweekly52k pays exactly 2000 per period, which keeps expectations exact
func biweekly52k() domain.ContributionParameters {
	return domain.ContributionParameters{
		Salary:                 dec("52000"),
		TotalPayPeriods:        26,
		IndividualCapAmount:    dec("20000"),
		MinContributionPercent: dec("5"),
		MaxContributionPercent: dec("50"),
	}
}

func fractions(rows []domain.PayPeriodRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ContributionPercent().String()
	}
	return out
}

func TestGenerate_FrontLoadsThenMinimum(t *testing.T) {
	p := domain.ContributionParameters{
		Salary:                 dec("60000"),
		TotalPayPeriods:        24,
		IndividualCapAmount:    dec("22500"),
		MinContributionPercent: dec("6"),
		MaxContributionPercent: dec("90"),
	}

	res, err := GenerateSchedule(p)
	require.NoError(t, err)
	require.Len(t, res.Rows, 24)

	assertDecimal(t, "2500", res.PayPerPeriod)
	assert.Equal(t, 9, res.MaxRatePeriods)
	assertDecimal(t, "6", res.TransitionPercent)

	for i, r := range res.Rows {
		if i < 9 {
			assertDecimal(t, "0.9", r.ContributionFraction)
			assertDecimal(t, "2250", r.ContributionAmount)
		} else {
			assertDecimal(t, "0.06", r.ContributionFraction)
			assertDecimal(t, "150", r.ContributionAmount)
		}
		assert.False(t, r.Flags.Any(), "row %d flags %+v", i, r.Flags)
	}

	final := res.Final()
	assert.True(t, final.CumulativeIndividual.LessThanOrEqual(dec("22500")))
	assertDecimal(t, "22500", final.CumulativeIndividual)
	assert.False(t, res.MaxNotReached)
	assert.False(t, res.MaxReachedEarly)
	assert.False(t, res.MaxReachedWithAutomaticCap)
}

func TestGenerate_TransitionRoundsDownAndFlagsShortfall(t *testing.T) {
	p := biweekly52k()
	p.IndividualCapAmount = dec("20010")

	res, err := GenerateSchedule(p)
	require.NoError(t, err)

	assert.Equal(t, 19, res.MaxRatePeriods)
	// residual 410 is 20.5% of pay, rounded down to 20%
	assertDecimal(t, "20", res.TransitionPercent)
	assertDecimal(t, "400", res.Rows[19].ContributionAmount)
	assertDecimal(t, "0.05", res.Rows[20].ContributionFraction)

	final := res.Final()
	assertDecimal(t, "20000", final.CumulativeIndividual)
	assert.True(t, final.Flags.MaxNotReached)
	assert.True(t, res.MaxNotReached)
	assert.False(t, res.MaxReachedWithAutomaticCap)
}

func TestGenerate_AutomaticCapClosesFinalGap(t *testing.T) {
	p := biweekly52k()
	p.IndividualCapAmount = dec("20010")
	p.AutomaticallyCap = true
	p.EmployerMatchPercent = dec("100")
	p.EmployerMatchUpToPercent = dec("4")

	res, err := GenerateSchedule(p)
	require.NoError(t, err)

	final := res.Final()
	assertDecimal(t, "110", final.ContributionAmount)
	// 5.5% rounded up
	assertDecimal(t, "0.06", final.ContributionFraction)
	assertDecimal(t, "20010", final.CumulativeIndividual)
	assertDecimal(t, "80", final.EmployerAmount)
	assert.True(t, final.Flags.MaxReachedWithAutomaticCap)
	assert.True(t, res.MaxReachedWithAutomaticCap)
	assert.False(t, res.MaxNotReached)
	assert.False(t, res.MaxReachedEarly)
}

func TestGenerate_AutomaticCapNeedsFundableGap(t *testing.T) {
	p := biweekly52k()
	p.IndividualCapAmount = dec("100000")
	p.AutomaticallyCap = true

	res, err := GenerateSchedule(p)
	require.NoError(t, err)

	// every period runs at the maximum and the cap is still out of reach
	assert.Equal(t, 26, res.MaxRatePeriods)
	assert.True(t, res.TransitionPercent.IsZero())
	final := res.Final()
	assertDecimal(t, "26000", final.CumulativeIndividual)
	assertDecimal(t, "0.5", final.ContributionFraction)
	assert.False(t, res.MaxReachedWithAutomaticCap)
	// contributing at the maximum is not a shortfall the user can fix
	assert.False(t, res.MaxNotReached)
}

func TestGenerate_PinsElapsedPeriods(t *testing.T) {
	p := biweekly52k()
	p.PayPeriodsElapsed = 10
	p.IndividualContributedSoFar = dec("8000")
	p.EmployerContributedSoFar = dec("1500")
	p.AfterTaxContributedSoFar = dec("250")

	res, err := GenerateSchedule(p)
	require.NoError(t, err)
	require.Len(t, res.Rows, 26)

	for i := 0; i < 9; i++ {
		r := res.Rows[i]
		assert.True(t, r.Flags.AlreadyPassed, "row %d", i)
		assert.True(t, r.ContributionAmount.IsZero(), "row %d", i)
		assert.True(t, r.CumulativeTotal.IsZero(), "row %d", i)
	}

	pinned := res.Rows[9]
	assert.True(t, pinned.Flags.AlreadyPassed)
	assertDecimal(t, "8000", pinned.CumulativeIndividual)
	assertDecimal(t, "9500", pinned.CumulativeWithEmployer)
	assertDecimal(t, "9750", pinned.CumulativeTotal)

	assert.Equal(t, 11, res.MaxRatePeriods)
	assertDecimal(t, "30", res.TransitionPercent)
	want := []string{}
	for i := 0; i < 10; i++ {
		want = append(want, "0")
	}
	for i := 0; i < 11; i++ {
		want = append(want, "50")
	}
	want = append(want, "30", "5", "5", "5", "5")
	assert.Equal(t, want, fractions(res.Rows))

	final := res.Final()
	assertDecimal(t, "20000", final.CumulativeIndividual)
	assertDecimal(t, "21500", final.CumulativeWithEmployer)
	assertDecimal(t, "21750", final.CumulativeTotal)
	assertDecimal(t, "1500", res.MaxEmployerAmount)
	assertDecimal(t, "250", res.MaxAfterTaxAmount)
}

func TestGenerate_EarlyCapRoundsDownWithoutAutoCap(t *testing.T) {
	p := biweekly52k()
	p.IndividualCapAmount = dec("2050")

	res, err := GenerateSchedule(p)
	require.NoError(t, err)

	assert.Equal(t, 0, res.MaxRatePeriods)
	assert.True(t, res.MaxReachedEarly)

	assertDecimal(t, "2000", res.Rows[19].CumulativeIndividual)
	assert.False(t, res.Rows[19].Flags.MaxReachedEarly)

	// 2.5% would land on the cap; rounded down to 2%
	assertDecimal(t, "0.02", res.Rows[20].ContributionFraction)
	assertDecimal(t, "40", res.Rows[20].ContributionAmount)
	assert.True(t, res.Rows[20].Flags.MaxReachedEarly)
	for i := 21; i < 26; i++ {
		assert.True(t, res.Rows[i].ContributionAmount.IsZero(), "row %d", i)
		assert.True(t, res.Rows[i].Flags.MaxReachedEarly, "row %d", i)
	}

	final := res.Final()
	assertDecimal(t, "2040", final.CumulativeIndividual)
	assert.True(t, res.MaxNotReached)
}

func TestGenerate_EarlyCapClampsWithAutoCap(t *testing.T) {
	p := biweekly52k()
	p.IndividualCapAmount = dec("2050")
	p.AutomaticallyCap = true

	res, err := GenerateSchedule(p)
	require.NoError(t, err)

	assertDecimal(t, "50", res.Rows[20].ContributionAmount)
	// 2.5% rounded up
	assertDecimal(t, "0.03", res.Rows[20].ContributionFraction)
	for i := 21; i < 26; i++ {
		assert.True(t, res.Rows[i].ContributionAmount.IsZero(), "row %d", i)
		assert.True(t, res.Rows[i].ContributionFraction.IsZero(), "row %d", i)
	}
	assertDecimal(t, "2050", res.Final().CumulativeIndividual)
	assert.True(t, res.MaxReachedEarly)
	assert.False(t, res.MaxNotReached)
	assert.False(t, res.MaxReachedWithAutomaticCap)
}

func TestGenerate_EmployerMatch(t *testing.T) {
	p := biweekly52k()
	p.EmployerMatchBasePercent = dec("3")
	p.EmployerMatchPercent = dec("50")
	p.EmployerMatchUpToPercent = dec("6")

	res, err := GenerateSchedule(p)
	require.NoError(t, err)

	// 60 base plus 50% of 6% of pay
	assertDecimal(t, "120", res.Rows[0].EmployerAmount)
	// 60 base plus 50% of 5% of pay
	assertDecimal(t, "110", res.Final().EmployerAmount)
	assertDecimal(t, "3060", res.MaxEmployerAmount)
}

func TestGenerate_AfterTaxFillsHeadroom(t *testing.T) {
	p := biweekly52k()
	p.TotalCapAmount = dec("25000")
	p.EmployerMatchPercent = dec("50")
	p.EmployerMatchUpToPercent = dec("6")

	res, err := GenerateSchedule(p)
	require.NoError(t, err)

	assertDecimal(t, "1500", res.MaxEmployerAmount)
	assertDecimal(t, "3500", res.MaxAfterTaxAmount)

	for i := 0; i < 19; i++ {
		assert.True(t, res.Rows[i].AfterTaxAmount.IsZero(), "row %d", i)
	}
	assertDecimal(t, "0.3", res.Rows[19].AfterTaxFraction)
	assertDecimal(t, "600", res.Rows[19].AfterTaxAmount)
	assertDecimal(t, "900", res.Rows[20].AfterTaxAmount)
	assertDecimal(t, "0.1", res.Rows[23].AfterTaxFraction)
	assertDecimal(t, "200", res.Rows[23].AfterTaxAmount)
	assert.True(t, res.Rows[24].AfterTaxAmount.IsZero())

	assertDecimal(t, "25000", res.Final().CumulativeTotal)
}

func TestGenerate_NoAfterTaxWithoutRoom(t *testing.T) {
	p := biweekly52k()
	p.TotalCapAmount = dec("15000")

	res, err := GenerateSchedule(p)
	require.NoError(t, err)
	assert.True(t, res.MaxAfterTaxAmount.IsZero())
	for _, r := range res.Rows {
		assert.True(t, r.AfterTaxAmount.IsZero())
	}
}

func TestGenerate_EqualMinAndMax(t *testing.T) {
	logger := &recordingLogger{}
	cs := NewContributionScheduler()
	cs.SetLogger(logger)

	p := biweekly52k()
	p.MinContributionPercent = dec("10")
	p.MaxContributionPercent = dec("10")

	res, err := cs.Generate(p)
	require.NoError(t, err)
	assert.NotEmpty(t, logger.warns)
	assert.Equal(t, 0, res.MaxRatePeriods)
	assertDecimal(t, "5200", res.Final().CumulativeIndividual)
	assert.False(t, res.MaxNotReached)

	p.IndividualCapAmount = dec("1000")
	res, err = cs.Generate(p)
	require.NoError(t, err)
	assert.Equal(t, 26, res.MaxRatePeriods)
	assertDecimal(t, "1000", res.Final().CumulativeIndividual)
	assert.True(t, res.MaxReachedEarly)
}

func TestGenerate_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		edit func(*domain.ContributionParameters)
	}{
		{"no pay periods", func(p *domain.ContributionParameters) { p.TotalPayPeriods = 0 }},
		{"all periods elapsed", func(p *domain.ContributionParameters) { p.PayPeriodsElapsed = 26 }},
		{"negative elapsed", func(p *domain.ContributionParameters) { p.PayPeriodsElapsed = -1 }},
		{"min above max", func(p *domain.ContributionParameters) { p.MinContributionPercent = dec("60") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := biweekly52k()
			tt.edit(&p)
			res, err := GenerateSchedule(p)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
			assert.Nil(t, res)
		})
	}
}

func TestGenerate_RegeneratesIdentically(t *testing.T) {
	p := biweekly52k()
	p.PayPeriodsElapsed = 4
	p.IndividualContributedSoFar = dec("3000")

	first, err := GenerateSchedule(p)
	require.NoError(t, err)
	second, err := GenerateSchedule(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_Invariants(t *testing.T) {
	salaries := []string{"52000", "60000", "87500", "150000", "333333"}
	periods := []int{12, 24, 26, 52}
	caps := []string{"20500", "22500"}
	bounds := [][2]string{{"0", "15"}, {"3", "6"}, {"6", "90"}, {"4", "50"}, {"1", "100"}}

	for _, salary := range salaries {
		for _, n := range periods {
			for _, capAmount := range caps {
				for _, b := range bounds {
					for _, elapsed := range []int{0, 5} {
						for _, autoCap := range []bool{true, false} {
							p := domain.ContributionParameters{
								Salary:                   dec(salary),
								TotalPayPeriods:          n,
								PayPeriodsElapsed:        elapsed,
								IndividualCapAmount:      dec(capAmount),
								TotalCapAmount:           dec("61000"),
								MinContributionPercent:   dec(b[0]),
								MaxContributionPercent:   dec(b[1]),
								EmployerMatchBasePercent: dec("2"),
								EmployerMatchPercent:     dec("100"),
								EmployerMatchUpToPercent: dec("4"),
								AutomaticallyCap:         autoCap,
							}
							if elapsed > 0 {
								p.IndividualContributedSoFar = dec("1000")
								p.EmployerContributedSoFar = dec("400")
							}
							name := fmt.Sprintf("%s/%d/%s/%s-%s/%d/%t", salary, n, capAmount, b[0], b[1], elapsed, autoCap)
							t.Run(name, func(t *testing.T) {
								checkScheduleInvariants(t, p)
							})
						}
					}
				}
			}
		}
	}
}

func checkScheduleInvariants(t *testing.T, p domain.ContributionParameters) {
	t.Helper()
	res, err := GenerateSchedule(p)
	require.NoError(t, err)
	require.Len(t, res.Rows, p.TotalPayPeriods)

	for i, r := range res.Rows {
		assert.True(t, r.CumulativeIndividual.LessThanOrEqual(p.IndividualCapAmount),
			"row %d cumulative %s exceeds cap", i, r.CumulativeIndividual)

		if i >= 1 {
			prev := res.Rows[i-1]
			assert.True(t, prev.CumulativeIndividual.Add(r.ContributionAmount).Equal(r.CumulativeIndividual), "row %d individual", i)
			assert.True(t, prev.CumulativeWithEmployer.Add(r.ContributionAmount).Add(r.EmployerAmount).Equal(r.CumulativeWithEmployer), "row %d with employer", i)
			assert.True(t, prev.CumulativeTotal.Add(r.ContributionAmount).Add(r.EmployerAmount).Add(r.AfterTaxAmount).Equal(r.CumulativeTotal), "row %d total", i)
		}

		if i >= p.PayPeriodsElapsed {
			pay := p.Salary.Div(decimal.NewFromInt(int64(p.TotalPayPeriods)))
			base := p.EmployerMatchBasePercent.Div(hundred).Mul(pay).Round(2)
			proportional := r.EmployerAmount.Sub(base)
			assert.True(t, proportional.LessThanOrEqual(r.ContributionAmount),
				"row %d match %s above contribution %s", i, proportional, r.ContributionAmount)
			combined := r.ContributionFraction.Add(r.AfterTaxFraction).Mul(hundred)
			assert.True(t, combined.LessThanOrEqual(p.MaxContributionPercent.Ceil()), "row %d combined percent %s", i, combined)
			assert.False(t, r.ContributionAmount.IsNegative(), "row %d", i)
		}
	}

	total := res.Final().CumulativeTotal
	assert.True(t, total.LessThanOrEqual(decimal.Max(p.TotalCapAmount, p.IndividualCapAmount.Add(res.MaxEmployerAmount))),
		"total %s above total cap", total)
}
