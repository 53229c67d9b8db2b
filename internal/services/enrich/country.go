package enrich

// nameToISO maps the country strings the profile endpoint emits (full names,
// common abbreviations, or bare ISO codes) to ISO 3166-1 alpha-2. There is
// no US default: unknown values stay unmapped.
var nameToISO = map[string]string{
	"United States":            "US",
	"United States of America": "US",
	"USA":                      "US",
	"US":                       "US",
	"Canada":                   "CA",
	"CA":                       "CA",
	"United Kingdom":           "GB",
	"UK":                       "GB",
	"GB":                       "GB",
	"Great Britain":            "GB",
	"Spain":                    "ES",
	"ES":                       "ES",
	"France":                   "FR",
	"FR":                       "FR",
	"Germany":                  "DE",
	"DE":                       "DE",
	"Italy":                    "IT",
	"IT":                       "IT",
	"Netherlands":              "NL",
	"NL":                       "NL",
	"Switzerland":              "CH",
	"CH":                       "CH",
	"Austria":                  "AT",
	"AT":                       "AT",
	"Belgium":                  "BE",
	"BE":                       "BE",
	"Denmark":                  "DK",
	"DK":                       "DK",
	"Finland":                  "FI",
	"FI":                       "FI",
	"Sweden":                   "SE",
	"SE":                       "SE",
	"Norway":                   "NO",
	"NO":                       "NO",
	"Ireland":                  "IE",
	"IE":                       "IE",
	"Portugal":                 "PT",
	"PT":                       "PT",
	"Poland":                   "PL",
	"PL":                       "PL",
	"Brazil":                   "BR",
	"BR":                       "BR",
	"Korea, Republic of":       "KR",
	"South Korea":              "KR",
	"KR":                       "KR",
	"Russian Federation":       "RU",
	"Russia":                   "RU",
	"RU":                       "RU",
	"China":                    "CN",
	"CN":                       "CN",
	"Japan":                    "JP",
	"JP":                       "JP",
	"India":                    "IN",
	"IN":                       "IN",
	"Australia":                "AU",
	"AU":                       "AU",
	"New Zealand":              "NZ",
	"NZ":                       "NZ",
	"Mexico":                   "MX",
	"MX":                       "MX",
	"Argentina":                "AR",
	"AR":                       "AR",
	"Chile":                    "CL",
	"CL":                       "CL",
	"Colombia":                 "CO",
	"CO":                       "CO",
	"Israel":                   "IL",
	"IL":                       "IL",
	"South Africa":             "ZA",
	"ZA":                       "ZA",
	"Taiwan":                   "TW",
	"TW":                       "TW",
	"Hong Kong":                "HK",
	"HK":                       "HK",
	"Singapore":                "SG",
	"SG":                       "SG",
	"Luxembourg":               "LU",
	"LU":                       "LU",
	"Greece":                   "GR",
	"GR":                       "GR",
	"Turkey":                   "TR",
	"TR":                       "TR",
	"Indonesia":                "ID",
	"ID":                       "ID",
	"Uruguay":                  "UY",
	"UY":                       "UY",
	"Bermuda":                  "BM",
	"BM":                       "BM",
	"Cayman Islands":           "KY",
	"KY":                       "KY",
}

// isoToName is the canonical display name per code, for profiles that only
// carry a bare code.
var isoToName = map[string]string{
	"US": "United States",
	"CA": "Canada",
	"GB": "United Kingdom",
	"ES": "Spain",
	"FR": "France",
	"DE": "Germany",
	"IT": "Italy",
	"NL": "Netherlands",
	"CH": "Switzerland",
	"AT": "Austria",
	"BE": "Belgium",
	"DK": "Denmark",
	"FI": "Finland",
	"SE": "Sweden",
	"NO": "Norway",
	"IE": "Ireland",
	"PT": "Portugal",
	"PL": "Poland",
	"BR": "Brazil",
	"KR": "South Korea",
	"RU": "Russia",
	"CN": "China",
	"JP": "Japan",
	"IN": "India",
	"AU": "Australia",
	"NZ": "New Zealand",
	"MX": "Mexico",
	"AR": "Argentina",
	"CL": "Chile",
	"CO": "Colombia",
	"IL": "Israel",
	"ZA": "South Africa",
	"TW": "Taiwan",
	"HK": "Hong Kong",
	"SG": "Singapore",
	"LU": "Luxembourg",
	"GR": "Greece",
	"TR": "Turkey",
	"ID": "Indonesia",
	"UY": "Uruguay",
	"BM": "Bermuda",
	"KY": "Cayman Islands",
}

// countryCode resolves a profile country string to an ISO alpha-2 code, or ""
// when unknown.
func countryCode(country string) string {
	return nameToISO[country]
}

// countryName resolves the display name for a profile country string. A bare
// code resolves to its canonical name; anything else, known or not, passes
// through as given.
func countryName(country string) string {
	if len(country) == 2 {
		if name, ok := isoToName[nameToISO[country]]; ok {
			return name
		}
	}
	return country
}
