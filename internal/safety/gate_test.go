package safety

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"domainbid/internal/models"
)

func mkAuction(value, bid, budget int64) models.AuctionContext {
	return models.AuctionContext{
		Domain:          "example.com",
		Platform:        models.PlatformGoDaddy,
		EstimatedValue:  decimal.NewFromInt(value),
		CurrentBid:      decimal.NewFromInt(bid),
		BudgetAvailable: decimal.NewFromInt(budget),
	}
}

func TestCheck_AllPass(t *testing.T) {
	g := &Gate{}
	res := g.Check(mkAuction(1000, 200, 5000))
	if res.Blocked {
		t.Fatalf("blocked=%v reason=%q want pass", res.Blocked, res.Reason)
	}
	if len(res.Checks) != 4 {
		t.Fatalf("checks=%d want=4", len(res.Checks))
	}
	for _, c := range res.Checks {
		if c.Status != "pass" {
			t.Fatalf("check %s status=%s want pass", c.Name, c.Status)
		}
	}
}

func TestCheck_ZeroValuationBlocks(t *testing.T) {
	g := &Gate{}
	res := g.Check(mkAuction(0, 0, 5000))
	if !res.Blocked {
		t.Fatal("want block on zero valuation")
	}
	if !strings.Contains(res.Reason, "INVALID VALUATION") {
		t.Fatalf("reason=%q want INVALID VALUATION", res.Reason)
	}
	if len(res.Checks) != 1 || res.Checks[0].Name != "valuation" {
		t.Fatalf("checks=%v want single failed valuation check", res.Checks)
	}
}

func TestCheck_BudgetBoundary(t *testing.T) {
	g := &Gate{}

	// Exactly $100 passes.
	res := g.Check(mkAuction(50, 10, 100))
	if res.Blocked {
		t.Fatalf("budget=100 blocked with reason %q, want pass", res.Reason)
	}

	res = g.Check(mkAuction(50, 10, 99))
	if !res.Blocked || !strings.Contains(res.Reason, "INSUFFICIENT BUDGET") {
		t.Fatalf("budget=99 blocked=%v reason=%q want budget block", res.Blocked, res.Reason)
	}
}

func TestCheck_OverpaymentBoundary(t *testing.T) {
	g := &Gate{}

	// current_bid == 1.30*value does not block; strictly above does.
	res := g.Check(mkAuction(1000, 1300, 5000))
	if res.Blocked {
		t.Fatalf("bid=1300 blocked with reason %q, want pass", res.Reason)
	}

	res = g.Check(mkAuction(1000, 1301, 5000))
	if !res.Blocked || !strings.Contains(res.Reason, "OVERPAYMENT PROTECTION") {
		t.Fatalf("bid=1301 blocked=%v reason=%q want overpayment block", res.Blocked, res.Reason)
	}
}

func TestCheck_Concentration(t *testing.T) {
	g := &Gate{}

	// value == 50% of budget passes; above blocks.
	res := g.Check(mkAuction(500, 10, 1000))
	if res.Blocked {
		t.Fatalf("value=500 budget=1000 blocked with reason %q, want pass", res.Reason)
	}

	res = g.Check(mkAuction(600, 10, 1000))
	if !res.Blocked || !strings.Contains(res.Reason, "PORTFOLIO CONCENTRATION") {
		t.Fatalf("value=600 budget=1000 blocked=%v reason=%q want concentration block", res.Blocked, res.Reason)
	}
}

func TestCheck_OrderStopsAtFirstFailure(t *testing.T) {
	g := &Gate{}

	// Budget fails before overpayment is ever evaluated.
	auction := mkAuction(100, 1000, 50)
	res := g.Check(auction)
	if !res.Blocked {
		t.Fatal("want block")
	}
	if !strings.Contains(res.Reason, "INSUFFICIENT BUDGET") {
		t.Fatalf("reason=%q want budget block to fire first", res.Reason)
	}
	for _, c := range res.Checks {
		if c.Name == "overpayment" || c.Name == "concentration" {
			t.Fatalf("check %s evaluated after blocking failure", c.Name)
		}
	}
}
