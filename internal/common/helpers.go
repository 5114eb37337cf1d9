package common

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const (
	BTCDecimals = 8  // BTC has 8 decimals (satoshi)
	ETHDecimals = 18 // ETH has 18 decimals (wei)
)

// SatoshiToBTC converts satoshi to BTC string without float precision loss
func SatoshiToBTC(satoshi int64) string {
	return formatWithDecimals(big.NewInt(satoshi), BTCDecimals)
}

// BTCToSatoshi converts BTC string to satoshi without float precision loss
func BTCToSatoshi(btc string) (int64, error) {
	n, err := parseWithDecimals(btc, BTCDecimals)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("amount %s overflows satoshi range", btc)
	}
	return n.Int64(), nil
}

// WeiToETH converts wei to ETH string without float precision loss
func WeiToETH(wei *big.Int) string {
	return formatWithDecimals(wei, ETHDecimals)
}

// ETHToWei converts ETH string to wei without float precision loss
func ETHToWei(eth string) (*big.Int, error) {
	return parseWithDecimals(eth, ETHDecimals)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 8) = "0.24981836"
func formatWithDecimals(value *big.Int, decimals int) string {
	s := value.String()
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	if negative {
		return "-" + s[:pos] + "." + s[pos:]
	}
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.24981836", 8) = 24981836
func parseWithDecimals(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", s)
	}
	return n, nil
}

// StripHexPrefix removes a leading 0x or 0X
func StripHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// IsHex reports whether s (without prefix) is non-empty even-length hex
func IsHex(s string) bool {
	s = StripHexPrefix(s)
	if s == "" || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// DecodeHex decodes hex with an optional 0x prefix, left-padding odd lengths with a zero nibble
func DecodeHex(s string) ([]byte, error) {
	s = StripHexPrefix(s)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}
