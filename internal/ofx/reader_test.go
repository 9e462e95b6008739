package ofx

import (
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(n int64) ofxgo.Amount {
	var a ofxgo.Amount
	a.SetFrac64(n, 1)
	return a
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips leading whitespace",
			in:   "\r\n\n  OFXHEADER:100",
			want: "OFXHEADER:100",
		},
		{
			name: "uppercases severity",
			in:   "<SEVERITY>Info</SEVERITY>",
			want: "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name: "closes bare SGML tags",
			in:   "<STMTTRN\n<TRNTYPE>DEBIT",
			want: "<STMTTRN>\n<TRNTYPE>DEBIT",
		},
		{
			name: "leaves wellformed content alone",
			in:   "<TRNAMT>-55.00</TRNAMT>",
			want: "<TRNAMT>-55.00</TRNAMT>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocess(tt.in))
		})
	}
}

func TestConvertTransactionsSkipsCredits(t *testing.T) {
	posted := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	txns := []ofxgo.Transaction{
		{Name: "NETFLIX.COM", TrnAmt: amount(-55), DtPosted: ofxgo.Date{Time: posted}},
		{Name: "SALARY DEPOSIT", TrnAmt: amount(12000), DtPosted: ofxgo.Date{Time: posted}},
		{Name: "REFUND SPOTIFY", TrnAmt: amount(25), DtPosted: ofxgo.Date{Time: posted}},
	}

	charges := convertTransactions(txns)
	require.Len(t, charges, 1)
	assert.Equal(t, "NETFLIX.COM", charges[0].Name)
	assert.InDelta(t, 55.0, charges[0].Amount, 0.001, "debit amounts are reported positive")
	assert.True(t, charges[0].Posted.Equal(posted))
}

func TestMerchantName(t *testing.T) {
	tests := []struct {
		name string
		tx   ofxgo.Transaction
		want string
	}{
		{
			name: "payee wins over name",
			tx: ofxgo.Transaction{
				Name:  "POS 1234",
				Payee: &ofxgo.Payee{Name: "Netflix"},
			},
			want: "Netflix",
		},
		{
			name: "strips processor prefix",
			tx:   ofxgo.Transaction{Name: "POS PURCHASE SPOTIFY AB"},
			want: "SPOTIFY AB",
		},
		{
			name: "strips authorized-on prefix",
			tx:   ofxgo.Transaction{Name: "PURCHASE AUTHORIZED ON ADOBE SYSTEMS"},
			want: "ADOBE SYSTEMS",
		},
		{
			name: "falls back to memo",
			tx:   ofxgo.Transaction{Memo: "DU TELECOM MONTHLY"},
			want: "DU TELECOM MONTHLY",
		},
		{
			name: "plain name passes through",
			tx:   ofxgo.Transaction{Name: "Etisalat"},
			want: "Etisalat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, merchantName(tt.tx))
		})
	}
}
