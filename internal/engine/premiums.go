package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

// priorYearMAGI resolves year y's Modified Adjusted Gross Income from the
// profile's supplied history, falling back to an already-simulated Tax
// Record for that year. Returns (magi, true) when found.
func (e *Engine) priorYearMAGI(y int) (decimal.Decimal, bool) {
	if magi, ok := e.cfg.Profile.MAGI[y]; ok {
		return magi, true
	}
	for _, r := range e.taxRecords {
		if r.Year == y {
			return r.AGI, true
		}
	}
	return decimal.Zero, false
}

// applyMarketplacePremium runs spec.md §4.8 step 2: before retirement and
// under age 65, withdraw the ACA marketplace premium (capped at 8.5% of
// prior-year MAGI) from Cash. A missing prior-year MAGI simply yields no
// cap information worth applying — the premium is skipped with a
// warning, since marketplace premiums (unlike IRMAA) are not a fatal
// failure mode under spec.md §7.
func (e *Engine) applyMarketplacePremium(ctx *domain.ApplyContext) {
	if !ctx.Month.Before(e.cfg.Profile.RetirementMonth) || ctx.AgeYears() >= 65 {
		return
	}
	magi, ok := e.priorYearMAGI(ctx.Month.Year - 1)
	if !ok {
		e.warn(ctx.Month, "no prior-year MAGI available; marketplace premium skipped")
		return
	}
	dependentAge := e.cfg.Profile.DependentAge(ctx.Month)
	premium := tax.MarketplacePremium(e.cfg.TaxConfig.Marketplace, magi, dependentAge)
	if premium.Sign() <= 0 {
		return
	}
	e.cash.Withdraw(e.ledger, e.logger, premium, "Marketplace Premium", ctx.Month, domain.LedgerKindWithdraw)
}

// applyIRMAAPremium runs spec.md §4.8 step 3: at age 65 or older, withdraw
// the IRMAA-surcharged Medicare Part B + D premium from Cash, using MAGI
// from year (y-2) against that year's inflation-indexed IRMAA tiers. A
// missing required MAGI year is fatal for the trial (spec.md §7, §9 Open
// Question #3 resolves the look-back to y-2).
func (e *Engine) applyIRMAAPremium(ctx *domain.ApplyContext, modifier decimal.Decimal) error {
	if ctx.AgeYears() < 65 {
		return nil
	}
	lookbackYear := ctx.Month.Year - 2
	magi, ok := e.priorYearMAGI(lookbackYear)
	if !ok {
		return fmt.Errorf("missing required MAGI for year %d (IRMAA look-back)", lookbackYear)
	}
	tiers := e.cfg.TaxConfig.IndexForYear(modifier).IRMAATiers
	premium := tax.IRMAAPremium(magi, tiers, e.cfg.TaxConfig.MedicareBase, e.cfg.Profile.MFJ)
	if premium.Sign() <= 0 {
		return nil
	}
	e.cash.Withdraw(e.ledger, e.logger, premium, "IRMAA/Medicare Premium", ctx.Month, domain.LedgerKindWithdraw)
	return nil
}
