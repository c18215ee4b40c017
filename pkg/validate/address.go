package validate

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// IsMoneroAddress performs a surface check of a Monero mainnet address:
// prefix 4 (standard) or 8 (subaddress), expected length, base58 alphabet.
// Authoritative validation is delegated to the wallet daemon when reachable.
func IsMoneroAddress(s string) bool {
	if len(s) != 95 && len(s) != 106 {
		return false
	}
	if s[0] != '4' && s[0] != '8' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isBase58(s[i]) {
			return false
		}
	}
	return true
}

func isBase58(c byte) bool {
	for i := 0; i < len(base58Alphabet); i++ {
		if base58Alphabet[i] == c {
			return true
		}
	}
	return false
}
