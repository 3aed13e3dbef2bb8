// Package vanguard loads the interest-related dividend data published by
// Vanguard for nonresident aliens.
//
// Vanguard publishes, per fund and payment date, the interest-related amount
// per share (the "NRA layout" file). The exempt fraction is that amount over
// the total dividend per share paid on the same date, which comes from the
// fund's dividend history, one file per symbol.
package vanguard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

// Provider is the name under which symbols are registered in the store.
const Provider = "vanguard"

// Load reads the NRA layout file at path into the tax year's exemption store,
// then the dividend history of every symbol it lists from historyDir.
//
// A symbol without a history file is registered anyway: its lookups fail
// with nec.ErrMissingReference.
func Load(ty *nec.TaxYear, path, historyDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := parseLayout(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, r := range rows {
		if err := ty.Exemptions.SetInterest(r.Symbol, r.CUSIP, r.Date, r.Amount, Provider); err != nil {
			return err
		}
	}

	var errs error
	for _, symbol := range symbols(rows) {
		if ty.Exemptions.HasDividendHistory(symbol) {
			continue
		}
		found, err := loadHistory(ty.Exemptions, symbol, historyDir)
		if err != nil {
			ty.Exemptions.SetHint(symbol, profileHint(symbol, historyDir))
			errs = errors.Join(errs, fmt.Errorf("dividend history of %s: %w", symbol, err))
			continue
		}
		if !found {
			ty.Exemptions.SetHint(symbol, profileHint(symbol, historyDir))
			ty.Warn("missing dividend history", "symbol", symbol, "dir", historyDir)
		}
	}
	ty.Log.Info("loaded Vanguard interest data", "file", path, "symbols", len(symbols(rows)), "rows", len(rows))
	return errs
}

// profileHint tells where to download the missing history from.
func profileHint(symbol, dir string) string {
	return fmt.Sprintf("download it from https://investor.vanguard.com/investment-products/etfs/profile/%s into %s",
		strings.ToLower(symbol), filepath.Join(dir, symbol+".csv"))
}

// interestRow is one qualifying line of the NRA layout file.
type interestRow struct {
	CUSIP  string
	Symbol string
	Date   date.Date
	Amount nec.Money
}

// symbols returns the symbols of rows in order of first appearance.
func symbols(rows []interestRow) []string {
	var list []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Symbol] {
			seen[r.Symbol] = true
			list = append(list, r.Symbol)
		}
	}
	return list
}

// isTicker reports whether s is made of upper case letters only.
func isTicker(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsUpper(c) {
			return false
		}
	}
	return true
}

// parseLayout reads the NRA layout. A line qualifies when it has at least 7
// columns and a ticker in column 2. Totals and zero amounts are skipped.
//
//	Fund name, CUSIP, Ticker, ..., ..., Payable date, Interest per share
func parseLayout(r io.Reader) ([]interestRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows []interestRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if len(record) < 7 || !isTicker(strings.TrimSpace(record[2])) {
			continue
		}
		if strings.TrimSpace(record[0]) == "TOTALS" {
			continue
		}
		amount, err := nec.ParseMoney(record[6])
		if err != nil {
			return nil, err
		}
		if amount.IsZero() {
			continue
		}
		on, err := nec.ParseDate(record[5])
		if err != nil {
			return nil, err
		}
		rows = append(rows, interestRow{
			CUSIP:  strings.TrimSpace(record[1]),
			Symbol: strings.TrimSpace(record[2]),
			Date:   on,
			Amount: amount,
		})
	}
	return rows, nil
}
