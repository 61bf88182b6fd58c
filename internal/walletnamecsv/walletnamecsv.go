// Package walletnamecsv reads wallet names from a CSV file for bulk imports.
//
// The file has one row per wallet address:
//
//	domain_name,name,currency,wallet_address,external_id
//	example.com,alice,btc,1BoatSLRHtKNngkdXEeobR76b53LETtpyT,user-1
//	example.com,alice,ltc,LZ3EfhRzoexSBt4rDEQvFjMo9RvMJmHjVn,user-1
//
// Rows that share a domain and a name are folded into a single Entry.
package walletnamecsv

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dimchansky/utfbom"
	"github.com/gocarina/gocsv"

	"github.com/netkicorp/go-partner-client/internal/utils"
)

type Row struct {
	DomainName    string `csv:"domain_name"`
	Name          string `csv:"name"`
	Currency      string `csv:"currency"`
	WalletAddress string `csv:"wallet_address"`
	ExternalID    string `csv:"external_id"`
}

// Entry is a wallet name assembled from one or more rows.
type Entry struct {
	DomainName string
	Name       string
	ExternalID string
	Wallets    map[string]string
	// Line is the first line of the file that mentions this wallet name.
	Line int
}

// ValidationError lists the problems found in a file, by line number. Line 0 is used for the file as a whole.
type ValidationError struct {
	Errors map[int]string
}

func (e *ValidationError) Error() string {
	lines := make([]int, 0, len(e.Errors))
	for line := range e.Errors {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	msgs := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == 0 {
			msgs = append(msgs, e.Errors[line])
			continue
		}
		msgs = append(msgs, fmt.Sprintf("line %d: %s", line, e.Errors[line]))
	}
	return "invalid wallet names file: " + strings.Join(msgs, "; ")
}

type validator struct {
	errors map[int]string
}

func (v *validator) checkError(err error, line int) {
	if err == nil {
		return
	}
	if _, ok := v.errors[line]; ok {
		return
	}
	v.errors[line] = err.Error()
}

func (v *validator) check(ok bool, line int, message string) {
	if !ok {
		v.checkError(fmt.Errorf("%s", message), line)
	}
}

func sanitizeRow(row *Row) *Row {
	return &Row{
		DomainName:    strings.ToLower(strings.TrimSpace(row.DomainName)),
		Name:          strings.TrimSpace(row.Name),
		Currency:      strings.ToLower(strings.TrimSpace(row.Currency)),
		WalletAddress: strings.TrimSpace(row.WalletAddress),
		ExternalID:    strings.TrimSpace(row.ExternalID),
	}
}

// Parse reads the rows of reader and groups them into entries, in the order they first appear. A leading UTF-8 BOM is
// ignored. All validation problems are reported together in a *ValidationError.
func Parse(reader io.Reader) ([]Entry, error) {
	rows := []*Row{}
	if err := gocsv.Unmarshal(utfbom.SkipOnly(reader), &rows); err != nil {
		return nil, fmt.Errorf("parsing csv file: %w", err)
	}

	v := &validator{errors: map[int]string{}}
	v.check(len(rows) > 0, 0, "no wallet names found")

	entries := []Entry{}
	index := map[string]int{}
	for i, rawRow := range rows {
		row := sanitizeRow(rawRow)
		lineNumber := i + 2 // +1 for header row, +1 for 0-index

		v.checkError(utils.ValidateDNS(row.DomainName), lineNumber)
		v.checkError(utils.ValidateWalletNameLabel(row.Name), lineNumber)
		v.checkError(utils.ValidateCurrency(row.Currency), lineNumber)
		v.checkError(utils.ValidateWalletAddress(row.WalletAddress), lineNumber)
		if _, hasErr := v.errors[lineNumber]; hasErr {
			continue
		}

		key := row.DomainName + "/" + row.Name
		pos, found := index[key]
		if !found {
			index[key] = len(entries)
			entries = append(entries, Entry{
				DomainName: row.DomainName,
				Name:       row.Name,
				ExternalID: row.ExternalID,
				Wallets:    map[string]string{row.Currency: row.WalletAddress},
				Line:       lineNumber,
			})
			continue
		}

		entry := &entries[pos]
		_, duplicated := entry.Wallets[row.Currency]
		v.check(!duplicated, lineNumber, fmt.Sprintf("currency %q is repeated for %s.%s", row.Currency, row.Name, row.DomainName))
		v.check(row.ExternalID == entry.ExternalID, lineNumber, fmt.Sprintf("external_id %q does not match %q from line %d", row.ExternalID, entry.ExternalID, entry.Line))
		if _, hasErr := v.errors[lineNumber]; hasErr {
			continue
		}
		entry.Wallets[row.Currency] = row.WalletAddress
	}

	if len(v.errors) > 0 {
		return nil, &ValidationError{Errors: v.errors}
	}

	return entries, nil
}
