package intel

import (
	"os"
	"path/filepath"
	"testing"

	"domainbid/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func writeFixtureTables(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, biddersFile,
		"bidder_id,total_auctions,avg_bid_increase,avg_reaction_time_s,win_rate,late_bid_ratio,aggression_score\n"+
			"sniper-1,120,25.5,45,0.55,0.85,6\n"+
			"casual-1,15,10,120,0.2,0.3,2\n")
	writeFile(t, dir, domainsFile,
		"domain,avg_final_price,volatility,p25,p50,p75,p90,sample_size\n"+
			"crypto.com,900,0.3,700,850,1000,1200,50\n")
	writeFile(t, dir, archetypesFile,
		"platform,avg_late_bid_ratio,avg_bid_jump,avg_duration_s\n"+
			"godaddy,0.75,40,3600\n"+
			"NameJet,0.25,220,7200\n")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFixtureTables(t, dir)

	tables, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(tables.Bidders) != 2 || len(tables.Domains) != 1 || len(tables.Archetypes) != 2 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/2",
			len(tables.Bidders), len(tables.Domains), len(tables.Archetypes))
	}

	p := tables.Bidders["sniper-1"]
	if p.TotalAuctions != 120 || p.LateBidRatio != 0.85 {
		t.Fatalf("sniper-1 = %+v", p)
	}
	// Platform names normalize to their canonical form.
	if _, ok := tables.Archetypes[models.PlatformGoDaddy]; !ok {
		t.Fatalf("godaddy row not keyed by canonical platform name")
	}
	if _, ok := tables.Archetypes[models.PlatformNameJet]; !ok {
		t.Fatalf("NameJet row not keyed by canonical platform name")
	}
}

func TestLoadDirSkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, biddersFile,
		"bidder_id,total_auctions,avg_bid_increase,avg_reaction_time_s,win_rate,late_bid_ratio,aggression_score\n"+
			"good,10,5,30,0.5,0.4,3\n"+
			"bad,not-a-number,5,30,0.5,0.4,3\n"+
			",10,5,30,0.5,0.4,3\n")

	tables, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(tables.Bidders) != 1 {
		t.Fatalf("bidders = %d, want 1", len(tables.Bidders))
	}
	if tables.SkippedRows != 2 {
		t.Fatalf("skipped = %d, want 2", tables.SkippedRows)
	}
}

func TestLoadDirMissingFilesAreEmptyTables(t *testing.T) {
	tables, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir on empty dir: %v", err)
	}
	if len(tables.Bidders) != 0 || len(tables.Domains) != 0 || len(tables.Archetypes) != 0 {
		t.Fatalf("expected all tables empty")
	}
}

func TestLoadDirMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, domainsFile, "domain,avg_final_price\nfoo.com,100\n")
	if _, err := LoadDir(dir); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestMergeOpponentProfiles(t *testing.T) {
	tables := NewTables()
	tables.Bidders["known"] = BidderProfile{BidderID: "known", TotalAuctions: 10, WinRate: 0.5}

	merged := tables.MergeOpponentProfiles([]models.OpponentProfile{
		{BidderID: "known", AuctionsFaced: 10, WinsAgainst: 10},
		{BidderID: "fresh", AuctionsFaced: 4, WinsAgainst: 1},
		{BidderID: "", AuctionsFaced: 3},
		{BidderID: "empty", AuctionsFaced: 0},
	})
	if merged != 2 {
		t.Fatalf("merged = %d, want 2", merged)
	}

	known := tables.Bidders["known"]
	if known.TotalAuctions != 20 {
		t.Fatalf("known samples = %d, want 20", known.TotalAuctions)
	}
	// (0.5·10 + 1.0·10) / 20
	if known.WinRate != 0.75 {
		t.Fatalf("known win rate = %v, want 0.75", known.WinRate)
	}

	fresh := tables.Bidders["fresh"]
	if fresh.TotalAuctions != 4 || fresh.WinRate != 0.25 {
		t.Fatalf("fresh = %+v", fresh)
	}
}
