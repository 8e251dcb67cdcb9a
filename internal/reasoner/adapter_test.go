package reasoner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"domainbid/internal/models"
)

type stubClient struct {
	text string
	err  error

	lastSystem string
	lastUser   string
}

func (s *stubClient) Reason(ctx context.Context, system, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.text, s.err
}

func TestAdapterProposeSuccess(t *testing.T) {
	client := &stubClient{text: validJSON}
	a := NewAdapter(client, zap.NewNop())

	dec, ok := a.Propose(context.Background(), promptAuction(), models.MarketIntelligence{}, models.HistoricalContext{})
	if !ok {
		t.Fatalf("Propose returned ok=false for a valid completion")
	}
	if dec.Strategy != models.StrategyProxyMax {
		t.Fatalf("strategy = %s", dec.Strategy)
	}
	if client.lastSystem == "" || !strings.Contains(client.lastUser, "crypto.com") {
		t.Fatalf("prompts not delivered to the client")
	}
}

func TestAdapterProposeClientError(t *testing.T) {
	a := NewAdapter(&stubClient{err: errors.New("rate limited")}, zap.NewNop())
	if _, ok := a.Propose(context.Background(), promptAuction(), models.MarketIntelligence{}, models.HistoricalContext{}); ok {
		t.Fatalf("transport error must yield ok=false")
	}
}

func TestAdapterProposeUnparseable(t *testing.T) {
	a := NewAdapter(&stubClient{text: "the market feels bullish today"}, zap.NewNop())
	if _, ok := a.Propose(context.Background(), promptAuction(), models.MarketIntelligence{}, models.HistoricalContext{}); ok {
		t.Fatalf("unparseable output must yield ok=false")
	}
}

func TestAdapterWithoutClient(t *testing.T) {
	a := NewAdapter(nil, zap.NewNop())
	if a.Available() {
		t.Fatalf("adapter without client reports available")
	}
	if _, ok := a.Propose(context.Background(), promptAuction(), models.MarketIntelligence{}, models.HistoricalContext{}); ok {
		t.Fatalf("adapter without client must yield ok=false")
	}

	var nilAdapter *Adapter
	if nilAdapter.Available() {
		t.Fatalf("nil adapter reports available")
	}
}
