package utils

import (
	"math/rand"
	"strings"
)

// vinAlphabet excludes I, O and Q per the identifier convention.
const vinAlphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

const vinLength = 17

// RandomVIN generates a random 17-character identifier.
func RandomVIN() string {
	var b strings.Builder
	b.Grow(vinLength)
	for i := 0; i < vinLength; i++ {
		b.WriteByte(vinAlphabet[rand.Intn(len(vinAlphabet))])
	}
	return b.String()
}

// NormalizeVIN uppercases the input, drops characters outside the VIN
// alphabet and cuts or right-pads with zeros to 17 characters. An empty
// input stays empty.
func NormalizeVIN(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range upper {
		if strings.ContainsRune(vinAlphabet, r) {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return ""
	}
	if len(s) > vinLength {
		return s[:vinLength]
	}
	return s + strings.Repeat("0", vinLength-len(s))
}

// ValidVIN reports whether s is a 17-character string over the VIN alphabet.
func ValidVIN(s string) bool {
	if len(s) != vinLength {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(vinAlphabet, r) {
			return false
		}
	}
	return true
}
