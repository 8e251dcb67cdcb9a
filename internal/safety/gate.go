package safety

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"domainbid/internal/models"
)

// Hard limits. These are deliberately not configuration: no downstream stage
// and no operator knob may loosen them.
var (
	minBudget          = decimal.NewFromInt(100)
	overpaymentRatio   = decimal.NewFromFloat(1.30)
	concentrationRatio = decimal.NewFromFloat(0.50)
)

// Gate runs the deterministic pre-filter ahead of any strategy selection.
type Gate struct {
	Logger *zap.Logger
}

// Result is the gate verdict plus the per-check audit trail.
type Result struct {
	Blocked bool                 `json:"blocked"`
	Reason  string               `json:"reason,omitempty"`
	Checks  []models.SafetyCheck `json:"checks"`
}

// Check evaluates the four rules in fixed order and stops at the first
// failure. Pure: no I/O, no mutation of the input.
func (g *Gate) Check(auction models.AuctionContext) Result {
	res := Result{}

	if !auction.EstimatedValue.IsPositive() {
		return g.block(res, "valuation", auction.EstimatedValue.StringFixed(2),
			fmt.Sprintf("INVALID VALUATION: estimated value $%s must be positive", auction.EstimatedValue.StringFixed(2)))
	}
	res.Checks = append(res.Checks, models.SafetyCheck{Name: "valuation", Status: "pass", Value: auction.EstimatedValue.StringFixed(2)})

	if auction.BudgetAvailable.LessThan(minBudget) {
		return g.block(res, "min_budget", auction.BudgetAvailable.StringFixed(2),
			fmt.Sprintf("INSUFFICIENT BUDGET: $%s available is below the $%s minimum", auction.BudgetAvailable.StringFixed(2), minBudget.StringFixed(0)))
	}
	res.Checks = append(res.Checks, models.SafetyCheck{Name: "min_budget", Status: "pass", Value: auction.BudgetAvailable.StringFixed(2)})

	// Exactly 130% of value is still acceptable; only strictly above blocks.
	overpayCap := auction.EstimatedValue.Mul(overpaymentRatio)
	if auction.CurrentBid.GreaterThan(overpayCap) {
		return g.block(res, "overpayment", auction.CurrentBid.StringFixed(2),
			fmt.Sprintf("OVERPAYMENT PROTECTION: current bid $%s exceeds 130%% of estimated value ($%s)", auction.CurrentBid.StringFixed(2), overpayCap.StringFixed(2)))
	}
	res.Checks = append(res.Checks, models.SafetyCheck{Name: "overpayment", Status: "pass", Value: auction.CurrentBid.StringFixed(2)})

	concentrationCap := auction.BudgetAvailable.Mul(concentrationRatio)
	if auction.EstimatedValue.GreaterThan(concentrationCap) {
		return g.block(res, "concentration", auction.EstimatedValue.StringFixed(2),
			fmt.Sprintf("PORTFOLIO CONCENTRATION: domain value $%s exceeds 50%% of available budget ($%s)", auction.EstimatedValue.StringFixed(2), concentrationCap.StringFixed(2)))
	}
	res.Checks = append(res.Checks, models.SafetyCheck{Name: "concentration", Status: "pass", Value: auction.EstimatedValue.StringFixed(2)})

	return res
}

func (g *Gate) block(res Result, name, value, reason string) Result {
	res.Blocked = true
	res.Reason = reason
	res.Checks = append(res.Checks, models.SafetyCheck{Name: name, Status: "fail", Value: value, Msg: reason})
	if g != nil && g.Logger != nil {
		g.Logger.Info("safety gate blocked auction", zap.String("check", name), zap.String("reason", reason))
	}
	return res
}
