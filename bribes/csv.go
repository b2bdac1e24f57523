package bribes

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/safeops/payloadeye/utils"
)

const (
	PlatformAura     = "aura"
	PlatformBalancer = "balancer"
)

// Row is one line of the bribe allocation CSV.
type Row struct {
	Target   string `csv:"target"`
	Platform string `csv:"platform"`
	Amount   string `csv:"amount"`
}

// Bribe is one resolved allocation: a gauge and the whole-token amount to
// deposit on it.
type Bribe struct {
	Gauge  string
	Amount decimal.Decimal
}

// Allocation groups the parsed bribes per incentive market, keeping CSV
// order. A gauge listed twice keeps its first position with the last amount.
type Allocation struct {
	Balancer []Bribe
	Aura     []Bribe
}

// LoadCSV reads and groups the bribe allocation file.
func LoadCSV(path string) (*Allocation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bribe csv %s is err: %v", path, err)
	}
	defer file.Close()

	rows := []Row{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse bribe csv %s is err: %v", path, err)
	}
	return groupRows(rows)
}

func groupRows(rows []Row) (*Allocation, error) {
	alloc := Allocation{}
	for i, row := range rows {
		amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
		if err != nil {
			return nil, fmt.Errorf("bribe row %d: parse amount %q is err: %v", i, row.Amount, err)
		}
		bribe := Bribe{Gauge: utils.ChecksumAddress(strings.TrimSpace(row.Target)), Amount: amount}
		switch strings.ToLower(strings.TrimSpace(row.Platform)) {
		case PlatformBalancer:
			alloc.Balancer = upsert(alloc.Balancer, bribe)
		case PlatformAura:
			alloc.Aura = upsert(alloc.Aura, bribe)
		default:
			return nil, fmt.Errorf("bribe row %d: unknown platform %q", i, row.Platform)
		}
	}
	return &alloc, nil
}

func upsert(bribes []Bribe, bribe Bribe) []Bribe {
	for i := range bribes {
		if bribes[i].Gauge == bribe.Gauge {
			bribes[i].Amount = bribe.Amount
			return bribes
		}
	}
	return append(bribes, bribe)
}
