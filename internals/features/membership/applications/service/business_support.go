package service

import (
	"errors"
	"fmt"

	"jaaliya_backend/internals/features/membership/applications/model"
	requestService "jaaliya_backend/internals/features/requests/service"
)

/* ===================== Tier menus ===================== */

// Annual sponsorship tiers, in pence.
var AnnualTierAmountsPence = map[string]int64{
	"bronze":   10000,  // £100
	"silver":   25000,  // £250
	"gold":     50000,  // £500
	"platinum": 100000, // £1000
}

// Fixed preset amounts for monthly / one-time pledges, in pence.
var (
	MonthlyPresetsPence = []int64{1000, 2500, 5000}
	OneTimePresetsPence = []int64{2500, 5000, 10000}
)

var ErrUnknownTier = errors.New("unknown business support tier")

/* ===================== Resolution ===================== */

// ResolveBusinessSupportAmount picks the pledge amount in pence from the
// tier/preset/custom selection. Annual pledges must name a tier; monthly and
// one-time pledges take a preset from the menu or a free-form custom amount
// (normalized and floored at £10 by the pricing service).
func ResolveBusinessSupportAmount(frequency string, tier *string, presetPence *int64, customAmount *string) (int64, error) {
	switch frequency {
	case model.PaymentFrequencyAnnual:
		if tier == nil {
			return 0, errors.New("annual business support requires a tier")
		}
		amount, ok := AnnualTierAmountsPence[*tier]
		if !ok {
			return 0, ErrUnknownTier
		}
		return amount, nil

	case model.PaymentFrequencyMonthly, model.PaymentFrequencyOneTime:
		if presetPence != nil {
			if !presetAllowed(frequency, *presetPence) {
				return 0, fmt.Errorf("amount %dp is not in the %s preset menu", *presetPence, frequency)
			}
			return *presetPence, nil
		}
		if customAmount != nil {
			pounds, err := requestService.NormalizeCustomAmount(*customAmount)
			if err != nil {
				return 0, err
			}
			return pounds * 100, nil
		}
		return 0, errors.New("monthly/one-time business support requires a preset or custom amount")

	default:
		return 0, fmt.Errorf("unknown payment frequency %q", frequency)
	}
}

func presetAllowed(frequency string, amount int64) bool {
	menu := MonthlyPresetsPence
	if frequency == model.PaymentFrequencyOneTime {
		menu = OneTimePresetsPence
	}
	for _, v := range menu {
		if v == amount {
			return true
		}
	}
	return false
}
