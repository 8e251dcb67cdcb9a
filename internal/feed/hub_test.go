package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"nhooyr.io/websocket"

	"domainbid/internal/models"
)

func sampleDecision(domain string) models.FinalDecision {
	return models.FinalDecision{
		Domain:               domain,
		Platform:             models.PlatformGoDaddy,
		Strategy:             models.StrategyProxyMax,
		RecommendedBidAmount: decimal.NewFromInt(350),
		Confidence:           0.75,
		RiskLevel:            models.RiskLow,
		DecisionSource:       models.SourceRulesFallback,
	}
}

func TestPublishReachesSubscriber(t *testing.T) {
	h := NewHub(4, nil)
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	h.Publish(sampleDecision("crypto.com"))

	select {
	case got := <-sub.C():
		if got.Domain != "crypto.com" {
			t.Fatalf("domain = %q, want crypto.com", got.Domain)
		}
	case <-time.After(time.Second):
		t.Fatal("decision not delivered")
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	h := NewHub(1, nil)
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	h.Publish(sampleDecision("a.com"))
	h.Publish(sampleDecision("b.com"))

	stats := h.Stats()
	if stats.Published != 2 {
		t.Fatalf("published = %d, want 2", stats.Published)
	}
	if stats.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", stats.Dropped)
	}

	got := <-sub.C()
	if got.Domain != "a.com" {
		t.Fatalf("survivor = %q, want the first message", got.Domain)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub(4, nil)
	sub := h.Subscribe()

	h.Unsubscribe(sub)
	h.Unsubscribe(sub) // second call is a no-op

	if _, ok := <-sub.C(); ok {
		t.Fatal("channel still open after unsubscribe")
	}
	if n := h.Stats().Subscribers; n != 0 {
		t.Fatalf("subscribers = %d, want 0", n)
	}

	// No subscribers left; publish must not panic or block.
	h.Publish(sampleDecision("c.com"))
}

func TestServeWSStreamsDecisions(t *testing.T) {
	h := NewHub(8, nil)
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// Wait for the hub to register the subscriber before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for h.Stats().Subscribers == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never attached")
		}
		time.Sleep(10 * time.Millisecond)
	}

	want := sampleDecision("stream.io")
	h.Publish(want)

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got models.FinalDecision
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	if got.Domain != want.Domain || got.Strategy != want.Strategy {
		t.Fatalf("streamed %+v, want %s/%s", got, want.Domain, want.Strategy)
	}
}
