// Package ofx reads OFX/QFX bank statements and surfaces debit charges
// for the bank-import path, which turns recurring charges into
// subscription entries.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/subwatch/internal/model"
)

// Reader parses OFX/QFX statement files into charge records.
type Reader struct{}

// NewReader creates a new OFX reader.
func NewReader() *Reader {
	return &Reader{}
}

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRe  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in bank-exported OFX files:
// leading blank lines, mixed-case SEVERITY values, and SGML-style tags
// missing their closing bracket.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagRe.ReplaceAllString(content, "$1>")
	return content
}

// ReadCharges parses a statement file and returns its debit charges.
// Credits (deposits, refunds) are skipped: only money leaving the
// account can be a subscription charge.
func (r *Reader) ReadCharges(_ context.Context, reader io.Reader) ([]model.Charge, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var charges []model.Charge

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		charges = append(charges, convertTransactions(stmt.BankTranList.Transactions)...)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		charges = append(charges, convertTransactions(stmt.BankTranList.Transactions)...)
	}

	slog.Info("Parsed OFX statement", "charges", len(charges))
	return charges, nil
}

func convertTransactions(txns []ofxgo.Transaction) []model.Charge {
	var charges []model.Charge
	for _, tx := range txns {
		amount, _ := tx.TrnAmt.Float64()
		if amount >= 0 {
			// OFX uses negative amounts for debits.
			continue
		}

		name := merchantName(tx)
		charges = append(charges, model.Charge{
			Name:     name,
			Provider: name,
			Amount:   -amount,
			Posted:   tx.DtPosted.Time,
		})
	}
	return charges
}

// cardPrefixes are processor boilerplate that obscures the merchant.
var cardPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// merchantName extracts the cleanest merchant name the statement offers.
func merchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if name == "" && tx.Memo != "" {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	return name
}
