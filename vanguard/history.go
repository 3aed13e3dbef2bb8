package vanguard

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

// distributionsPath selects the distributions in the JSON returned by the
// fund profile pages.
const distributionsPath = "$.fundDistributionList.fundDistribution"

// payment is one dividend of a fund history.
type payment struct {
	Date   date.Date
	Amount nec.Money
}

// loadHistory loads <dir>/<symbol>.csv or else <dir>/<symbol>.json into the
// store. It returns false when neither exists.
func loadHistory(store *nec.Store, symbol, dir string) (bool, error) {
	for _, ext := range []string{".csv", ".json"} {
		path := filepath.Join(dir, symbol+ext)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, err
		}
		defer f.Close()

		var payments []payment
		if ext == ".csv" {
			payments, err = parseHistoryCSV(f)
		} else {
			payments, err = parseHistoryJSON(f)
		}
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", path, err)
		}
		for _, p := range payments {
			if err := store.SetDividend(symbol, p.Date, p.Amount); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}

// parseHistoryCSV reads the history as downloaded from the fund page. Only
// the dividend rows matter:
//
//	Dividend,$0.1840,03/31/2023,...
func parseHistoryCSV(r io.Reader) ([]payment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	payments := []payment{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if len(record) < 3 || strings.TrimSpace(record[0]) != "Dividend" {
			continue
		}
		amount, err := nec.ParseMoney(record[1])
		if err != nil {
			return nil, err
		}
		on, err := nec.ParseDate(record[2])
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment{Date: on, Amount: amount})
	}
	return payments, nil
}

/*
	{
	  "fundDistributionList": {
	    "fundDistribution": [
	      {
	        "type": "Dividend",
	        "amount": 0.184,
	        "payableDate": "2023-03-31T00:00:00-04:00"
	      },
	      ...
*/
func parseHistoryJSON(r io.Reader) ([]payment, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	jval, err := jsonpath.Get(distributionsPath, jobj)
	if err != nil {
		return nil, &nec.ParseError{Kind: "json", Value: distributionsPath, Err: err}
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, &nec.ParseError{Kind: "json", Value: distributionsPath, Err: fmt.Errorf("%T is not a list", jval)}
	}

	payments := []payment{}
	for _, item := range list {
		dist, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if kind, _ := dist["type"].(string); !strings.EqualFold(kind, "Dividend") {
			continue
		}
		amount, err := nec.ParseMoney(dist["amount"])
		if err != nil {
			return nil, err
		}
		payable, ok := dist["payableDate"].(string)
		if !ok {
			return nil, &nec.ParseError{Kind: "date", Value: fmt.Sprint(dist["payableDate"])}
		}
		on, err := nec.ParseDate(payable)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment{Date: on, Amount: amount})
	}
	return payments, nil
}
