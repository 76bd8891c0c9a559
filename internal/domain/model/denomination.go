package model

// CountryIndia is the only country with a dedicated denomination table.
const CountryIndia = "IN"

var (
	denominationsIndia   = []int64{10000, 20000, 30000, 50000, 80000, 100000}
	denominationsDefault = []int64{500000, 1000000, 1500000}
)

// Denominations returns the allow-listed withdrawal amounts for a country.
func Denominations(country string) []int64 {
	if country == CountryIndia {
		return denominationsIndia
	}
	return denominationsDefault
}

// ValidDenomination reports whether points is redeemable for the country.
func ValidDenomination(country string, points int64) bool {
	for _, d := range Denominations(country) {
		if d == points {
			return true
		}
	}
	return false
}
