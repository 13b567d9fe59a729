package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"motorchat/internal/model"
)

// synonym maps one surface form to its canonical label. The tables below are
// ordered slices on purpose: the first entry whose key occurs in the message
// wins its dimension, so enumeration order is part of the contract.
type synonym struct {
	key   string
	label string
}

var bodyTypes = []synonym{
	{"suv", "SUV"},
	{"hatch", "Hatch"},
	{"sedan", "Sedan"},
	{"picape", "Picape"},
	{"pickup", "Picape"},
	{"perua", "Perua"},
	{"wagon", "Perua"},
	{"coupe", "Coupé"},
	{"coupé", "Coupé"},
}

var transmissions = []synonym{
	{"manual", "Manual"},
	{"automatica", "Automática"},
	{"automática", "Automática"},
	{"auto", "Automática"},
	{"cvt", "CVT"},
}

var fuels = []synonym{
	{"flex", "flex"},
	{"gasolina", "gasolina"},
	{"alcool", "alcool"},
	{"álcool", "alcool"},
	{"etanol", "alcool"},
	{"diesel", "diesel"},
	{"elétrico", "eletrico"},
	{"eletrico", "eletrico"},
	{"híbrido", "hibrido"},
	{"hibrido", "hibrido"},
}

// Patterns run against the folded (lowercased, accent-stripped) message.
var (
	priceTriggerRE = regexp.MustCompile(`(?:ate|<=|<|por|no\s+maximo)\s*r?\$?\s*([\d.,]+)`)
	priceNumberRE  = regexp.MustCompile(`(\d{2,3}[.\d]*)\s*(?:mil)?`)
	yearMinRE      = regexp.MustCompile(`(?:a partir de|>=|de)\s*((?:19|20)\d{2})`)
	yearRangeRE    = regexp.MustCompile(`((?:19|20)\d{2})\s*-\s*((?:19|20)\d{2})`)
	doorsRE        = regexp.MustCompile(`\b([245])\b\s*portas`)
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText lowercases and strips diacritics. One-way: used only for
// matching, never echoed back to the user.
func foldText(s string) string {
	folded, _, err := transform.String(foldChain, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// ParseFilters extracts a FilterSet from a free-form chat message. It is
// pure and total: any input yields a full FilterSet, dimensions that do not
// match stay nil, and nothing here can fail. Dimensions are extracted
// independently; conflicting mentions are resolved by table order, first
// match wins.
func ParseFilters(message string) *model.FilterSet {
	msg := foldText(message)
	f := &model.FilterSet{}

	for _, s := range bodyTypes {
		if strings.Contains(msg, foldText(s.key)) {
			v := s.label
			f.BodyType = &v
			break
		}
	}
	for _, s := range transmissions {
		if strings.Contains(msg, foldText(s.key)) {
			v := s.label
			f.Transmission = &v
			break
		}
	}
	for _, s := range fuels {
		if strings.Contains(msg, foldText(s.key)) {
			v := s.label
			f.Fuel = &v
			break
		}
	}

	if m := priceTriggerRE.FindStringSubmatch(msg); m != nil {
		if v, ok := parseMoney(m[1]); ok {
			f.PriceMax = &v
		}
	} else if strings.Contains(msg, "mil") {
		// "120 mil" without an explicit trigger phrase
		if raw := priceNumberRE.FindString(msg); raw != "" {
			if v, ok := parseMoney(raw); ok {
				f.PriceMax = &v
			}
		}
	}

	if m := yearMinRE.FindStringSubmatch(msg); m != nil {
		y, _ := strconv.Atoi(m[1])
		f.YearMin = &y
	}

	if m := yearRangeRE.FindStringSubmatch(msg); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		r := [2]int{a, b}
		if a > b {
			r = [2]int{b, a}
		}
		f.YearRange = &r
	}

	if m := doorsRE.FindStringSubmatch(msg); m != nil {
		d, _ := strconv.Atoi(m[1])
		f.Doors = &d
	}

	return f
}

// parseMoney normalizes Brazilian money spellings ("120 mil", "120.000",
// "95.000,50") into an exact decimal. A value under 1000 is read as
// thousands. Anything unparseable reports false, never an error.
func parseMoney(txt string) (decimal.Decimal, bool) {
	m := priceNumberRE.FindStringSubmatch(strings.TrimSpace(txt))
	if m == nil {
		return decimal.Decimal{}, false
	}
	raw := strings.ReplaceAll(m[1], ".", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val == 0 {
		return decimal.Decimal{}, false
	}
	if val < 1000 {
		val *= 1000
	}
	return decimal.NewFromFloat(val).Round(2), true
}
