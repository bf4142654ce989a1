package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// PaymentQR holds the inputs for a Czech SPD (Short Payment Descriptor)
// payment string, the format understood by Czech banking apps' QR scanners.
type PaymentQR struct {
	Account        string // IBAN, e.g. CZ6508000000192000145399
	AmountCZK      int
	VariableSymbol string
	Message        string
}

// SPD renders the descriptor, e.g.
// SPD*1.0*ACC:CZ65...*AM:200.00*CC:CZK*X-VS:12345*MSG:Vstupne
func (p PaymentQR) SPD() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SPD*1.0*ACC:%s*AM:%d.00*CC:CZK", p.Account, p.AmountCZK)
	if p.VariableSymbol != "" {
		fmt.Fprintf(&b, "*X-VS:%s", p.VariableSymbol)
	}
	if p.Message != "" {
		fmt.Fprintf(&b, "*MSG:%s", url.QueryEscape(p.Message))
	}
	return b.String()
}
