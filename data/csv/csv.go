// Package csv loads daily bar and FX rate files into market events for the
// backtest runner. Expected layouts:
//
//	bars: date,asset,open,high,low,close,adj_close,volume,dividend,split_coefficient
//	fx:   date,currency,rate
//
// Dates are ISO-8601 days. The loader sorts output by date so the stream
// satisfies the engine's ordering requirement regardless of file order.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"portsim/currency"
	"portsim/data"
	"portsim/eventtypes/event"
	"portsim/eventtypes/market"
)

var errBadRecord = errors.New("malformed csv record")

// LoadEvents reads a bar file and an optional FX file into date-ordered
// market events. Pass an empty fxPath for single-currency runs
func LoadEvents(barsPath, fxPath string) ([]*market.Event, error) {
	byDate := make(map[time.Time]*market.Event)

	barRows, err := readAll(barsPath)
	if err != nil {
		return nil, err
	}
	for i, row := range barRows {
		if len(row) != 10 {
			return nil, fmt.Errorf("%w: %v row %d has %d fields, want 10", errBadRecord, barsPath, i+1, len(row))
		}
		t, err := time.Parse(time.DateOnly, row[0])
		if err != nil {
			return nil, fmt.Errorf("%v row %d: %w", barsPath, i+1, err)
		}
		fields := make([]decimal.Decimal, 8)
		for j := 2; j < 10; j++ {
			fields[j-2], err = decimal.NewFromString(row[j])
			if err != nil {
				return nil, fmt.Errorf("%v row %d field %d: %w", barsPath, i+1, j+1, err)
			}
		}
		bar, err := data.NewBar(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6], fields[7])
		if err != nil {
			return nil, fmt.Errorf("%v row %d: %w", barsPath, i+1, err)
		}
		ev := eventFor(byDate, t)
		ev.Bars[row[1]] = bar
	}

	if fxPath != "" {
		fxRows, err := readAll(fxPath)
		if err != nil {
			return nil, err
		}
		for i, row := range fxRows {
			if len(row) != 3 {
				return nil, fmt.Errorf("%w: %v row %d has %d fields, want 3", errBadRecord, fxPath, i+1, len(row))
			}
			t, err := time.Parse(time.DateOnly, row[0])
			if err != nil {
				return nil, fmt.Errorf("%v row %d: %w", fxPath, i+1, err)
			}
			rate, err := decimal.NewFromString(row[2])
			if err != nil {
				return nil, fmt.Errorf("%v row %d: %w", fxPath, i+1, err)
			}
			ev := eventFor(byDate, t)
			ev.Rates[currency.NewCode(row[1])] = rate
		}
	}

	out := make([]*market.Event, 0, len(byDate))
	for _, ev := range byDate {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetTime().Before(out[j].GetTime()) })
	return out, nil
}

func eventFor(byDate map[time.Time]*market.Event, t time.Time) *market.Event {
	t = data.Day(t)
	ev, ok := byDate[t]
	if !ok {
		ev = &market.Event{
			Base:  event.Base{Time: t},
			Bars:  make(map[string]data.Bar),
			Rates: make(map[currency.Code]decimal.Decimal),
		}
		byDate[t] = ev
	}
	return ev
}

// readAll reads every record, skipping a header row when the first field is
// not a parseable date
func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %v: %w", path, err)
	}
	if len(rows) > 0 {
		if _, err := time.Parse(time.DateOnly, rows[0][0]); err != nil {
			rows = rows[1:]
		}
	}
	return rows, nil
}
