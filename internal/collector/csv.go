package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ImpulseSystem/internal/model"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
}

type column struct {
	idx int
	dst *float64
}

// CSVFetcher reads a price history export with a header row such as
// Date,Open,High,Low,Close,Adj Close,Volume. Adj Close and Volume are optional.
type CSVFetcher struct {
	Path string
}

// NewCSVFetcher creates a fetcher over the export at path.
func NewCSVFetcher(path string) *CSVFetcher {
	return &CSVFetcher{Path: path}
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchSeries(ctx context.Context, symbol string, start, end time.Time, interval string) (*model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	bars, err := ReadBars(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}

	filtered := bars[:0]
	for _, b := range bars {
		if !start.IsZero() && b.Time.Before(start) {
			continue
		}
		if !end.IsZero() && b.Time.After(end) {
			continue
		}
		filtered = append(filtered, b)
	}

	return &model.PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      filtered,
		FetchedAt: time.Now(),
	}, nil
}

// ReadBars parses CSV price rows and returns them sorted by time. A row with a null open, high,
// low or close is skipped; a null adj close or volume is left zero.
func ReadBars(r io.Reader) ([]model.PriceBar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"date", "open", "high", "low", "close"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	adjCol, hasAdj := cols["adj close"]
	volCol, hasVol := cols["volume"]

	var bars []model.PriceBar
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ts, err := parseDate(record[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if anyNull(record, cols["open"], cols["high"], cols["low"], cols["close"]) {
			continue // holidays etc.
		}

		bar := model.PriceBar{Time: ts}
		fields := []column{
			{cols["open"], &bar.Open},
			{cols["high"], &bar.High},
			{cols["low"], &bar.Low},
			{cols["close"], &bar.Close},
		}
		if hasAdj {
			fields = append(fields, column{adjCol, &bar.AdjClose})
		}
		if hasVol {
			fields = append(fields, column{volCol, &bar.Volume})
		}
		for _, fl := range fields {
			raw := record[fl.idx]
			if isNull(raw) {
				continue
			}
			d, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("line %d: parse %q: %w", line, raw, err)
			}
			*fl.dst = d.InexactFloat64()
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func anyNull(record []string, idx ...int) bool {
	for _, i := range idx {
		if isNull(record[i]) {
			return true
		}
	}
	return false
}

func isNull(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "nan")
}
