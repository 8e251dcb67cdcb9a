package intel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"domainbid/internal/models"
)

const (
	biddersFile    = "bidders.csv"
	domainsFile    = "domains.csv"
	archetypesFile = "archetypes.csv"
)

// LoadDir reads the three statistics tables from dir. A missing file leaves
// its table empty; a present but unreadable file is an error. Rows that fail
// to parse are skipped and counted in the snapshot.
func LoadDir(dir string) (*Tables, error) {
	t := NewTables()
	t.LoadedAt = time.Now().UTC()

	err := readTable(filepath.Join(dir, biddersFile),
		[]string{"bidder_id", "total_auctions", "avg_bid_increase", "avg_reaction_time_s", "win_rate", "late_bid_ratio", "aggression_score"},
		func(get func(string) string) error {
			p := BidderProfile{BidderID: strings.TrimSpace(get("bidder_id"))}
			if p.BidderID == "" {
				return errors.New("empty bidder_id")
			}
			var err error
			if p.TotalAuctions, err = parseInt(get("total_auctions")); err != nil {
				return err
			}
			if p.AvgBidIncrease, err = parseFloat(get("avg_bid_increase")); err != nil {
				return err
			}
			if p.AvgReactionTime, err = parseFloat(get("avg_reaction_time_s")); err != nil {
				return err
			}
			if p.WinRate, err = parseFloat(get("win_rate")); err != nil {
				return err
			}
			if p.LateBidRatio, err = parseFloat(get("late_bid_ratio")); err != nil {
				return err
			}
			if p.AggressionScore, err = parseFloat(get("aggression_score")); err != nil {
				return err
			}
			t.Bidders[p.BidderID] = p
			return nil
		}, &t.SkippedRows)
	if err != nil {
		return nil, err
	}

	err = readTable(filepath.Join(dir, domainsFile),
		[]string{"domain", "avg_final_price", "volatility", "p25", "p50", "p75", "p90", "sample_size"},
		func(get func(string) string) error {
			d := DomainStats{Domain: strings.ToLower(strings.TrimSpace(get("domain")))}
			if d.Domain == "" {
				return errors.New("empty domain")
			}
			var err error
			if d.AvgFinalPrice, err = parseFloat(get("avg_final_price")); err != nil {
				return err
			}
			if d.Volatility, err = parseFloat(get("volatility")); err != nil {
				return err
			}
			if d.P25, err = parseFloat(get("p25")); err != nil {
				return err
			}
			if d.P50, err = parseFloat(get("p50")); err != nil {
				return err
			}
			if d.P75, err = parseFloat(get("p75")); err != nil {
				return err
			}
			if d.P90, err = parseFloat(get("p90")); err != nil {
				return err
			}
			if d.SampleSize, err = parseInt(get("sample_size")); err != nil {
				return err
			}
			t.Domains[d.Domain] = d
			return nil
		}, &t.SkippedRows)
	if err != nil {
		return nil, err
	}

	err = readTable(filepath.Join(dir, archetypesFile),
		[]string{"platform", "avg_late_bid_ratio", "avg_bid_jump", "avg_duration_s"},
		func(get func(string) string) error {
			raw := strings.TrimSpace(get("platform"))
			if raw == "" {
				return errors.New("empty platform")
			}
			key := models.NormalizePlatform(raw)
			if key == "" {
				key = strings.ToLower(raw)
			}
			a := PlatformArchetype{Platform: key}
			var err error
			if a.AvgLateBidRatio, err = parseFloat(get("avg_late_bid_ratio")); err != nil {
				return err
			}
			if a.AvgBidJump, err = parseFloat(get("avg_bid_jump")); err != nil {
				return err
			}
			if a.AvgDurationS, err = parseFloat(get("avg_duration_s")); err != nil {
				return err
			}
			t.Archetypes[key] = a
			return nil
		}, &t.SkippedRows)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// readTable streams one CSV file, resolving columns by header name so column
// order and extra columns do not matter. Bad rows bump skipped and continue.
func readTable(path string, required []string, row func(get func(string) string) error, skipped *int) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return fmt.Errorf("%s: missing column %q", path, name)
		}
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				*skipped++
				continue
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		get := func(name string) string {
			i := idx[name]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}
		if err := row(get); err != nil {
			*skipped++
		}
	}
	return nil
}

// MergeOpponentProfiles folds history-learned opponent rows into the bidder
// table before the snapshot is published. Observed win rates blend with any
// tabulated profile weighted by sample count. Returns rows merged.
func (t *Tables) MergeOpponentProfiles(profiles []models.OpponentProfile) int {
	merged := 0
	for _, op := range profiles {
		if op.BidderID == "" || op.AuctionsFaced <= 0 {
			continue
		}
		obsN := int(op.AuctionsFaced)
		obsRate := float64(op.WinsAgainst) / float64(op.AuctionsFaced)

		p, ok := t.Bidders[op.BidderID]
		if !ok {
			t.Bidders[op.BidderID] = BidderProfile{
				BidderID:      op.BidderID,
				TotalAuctions: obsN,
				WinRate:       obsRate,
			}
			merged++
			continue
		}
		totalN := p.TotalAuctions + obsN
		p.WinRate = (p.WinRate*float64(p.TotalAuctions) + obsRate*float64(obsN)) / float64(totalN)
		p.TotalAuctions = totalN
		t.Bidders[op.BidderID] = p
		merged++
	}
	return merged
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
