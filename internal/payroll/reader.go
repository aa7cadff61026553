// Package payroll reads the contributor payout table.
package payroll

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Payout is one row of the payout table.
type Payout struct {
	Label      string
	Address    string
	FiatAmount decimal.Decimal
}

// Load reads payouts from a CSV file.
func Load(path string) ([]Payout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payout file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads the payout table. The first row is a header and is skipped.
// Column 1 holds the contributor label, column 3 the recipient address and
// column 4 the fiat amount. A malformed row fails the whole load; partial
// batches never reach the encoder.
func Parse(r io.Reader) ([]Payout, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may carry trailing extra columns

	var payouts []Payout
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errno.ErrEncoding.WithDetail("row %d: %v", row+1, err)
		}
		row++

		if row == 1 {
			continue // header
		}
		if isBlank(record) {
			continue
		}
		if len(record) < 4 {
			return nil, errno.ErrEncoding.WithDetail("row %d: expected at least 4 columns, got %d", row, len(record))
		}

		addr := strings.TrimSpace(record[2])
		if !common.IsHexAddress(addr) {
			return nil, errno.ErrEncoding.WithDetail("row %d: malformed address %q", row, addr)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, errno.ErrEncoding.WithDetail("row %d: malformed amount %q", row, record[3])
		}

		payouts = append(payouts, Payout{
			Label:      strings.TrimSpace(record[0]),
			Address:    addr,
			FiatAmount: amount,
		})
	}

	if len(payouts) == 0 {
		return nil, errno.ErrEncoding.WithDetail("payout table has no rows")
	}
	return payouts, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
