package reasoner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"domainbid/internal/models"
)

// flexFloat accepts both JSON numbers and quoted numbers.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type rawDecision struct {
	Strategy             string          `json:"strategy"`
	RecommendedBidAmount decimal.Decimal `json:"recommended_bid_amount"`
	Confidence           flexFloat       `json:"confidence"`
	RiskLevel            string          `json:"risk_level"`
	Reasoning            string          `json:"reasoning"`
}

// ParseDecision turns a raw completion into a StrategyDecision, coercing the
// sloppiness models produce: code fences, prose around the object, quoted
// numbers, percentage-scale confidence, label casing. Anything that cannot be
// coerced is an error; the pipeline treats it as missing output.
func ParseDecision(raw string) (*models.StrategyDecision, error) {
	text := extractJSON(raw)
	if text == "" {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	var r rawDecision
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return nil, fmt.Errorf("unmarshal completion: %w", err)
	}

	strategy := normalizeStrategy(r.Strategy)
	if !models.KnownStrategy(strategy) {
		return nil, fmt.Errorf("unknown strategy %q", r.Strategy)
	}

	if r.RecommendedBidAmount.IsNegative() {
		return nil, fmt.Errorf("negative bid amount %s", r.RecommendedBidAmount)
	}

	conf := float64(r.Confidence)
	if conf > 1 && conf <= 100 {
		// Model answered on the percentage scale.
		conf /= 100
	}
	if conf < 0 || conf > 1 {
		return nil, fmt.Errorf("confidence %v out of range", float64(r.Confidence))
	}

	risk := models.NormalizeRiskLevel(r.RiskLevel)
	if risk == "" {
		return nil, fmt.Errorf("unknown risk level %q", r.RiskLevel)
	}

	return &models.StrategyDecision{
		Strategy:             strategy,
		RecommendedBidAmount: r.RecommendedBidAmount,
		Confidence:           conf,
		RiskLevel:            risk,
		Reasoning:            strings.TrimSpace(r.Reasoning),
	}, nil
}

// extractJSON strips markdown fences and any prose around the outermost
// object.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		}
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func normalizeStrategy(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
