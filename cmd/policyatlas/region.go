package main

import (
	"regexp"
	"strings"
)

// cchpFilenamePattern matches report filenames like
// "CCHP Alabama Telehealth Laws Report, 07-18-2025.pdf".
var cchpFilenamePattern = regexp.MustCompile(`(?i)CCHP\s+(.+?)\s+Telehealth`)

var stateAbbreviations = map[string]string{
	"alabama":                  "AL",
	"alaska":                   "AK",
	"arizona":                  "AZ",
	"arkansas":                 "AR",
	"california":               "CA",
	"colorado":                 "CO",
	"connecticut":              "CT",
	"delaware":                 "DE",
	"district of columbia":     "DC",
	"florida":                  "FL",
	"georgia":                  "GA",
	"hawaii":                   "HI",
	"idaho":                    "ID",
	"illinois":                 "IL",
	"indiana":                  "IN",
	"iowa":                     "IA",
	"kansas":                   "KS",
	"kentucky":                 "KY",
	"louisiana":                "LA",
	"maine":                    "ME",
	"maryland":                 "MD",
	"massachusetts":            "MA",
	"michigan":                 "MI",
	"minnesota":                "MN",
	"mississippi":              "MS",
	"missouri":                 "MO",
	"montana":                  "MT",
	"nebraska":                 "NE",
	"nevada":                   "NV",
	"new hampshire":            "NH",
	"new jersey":               "NJ",
	"new mexico":               "NM",
	"new york":                 "NY",
	"north carolina":           "NC",
	"north dakota":             "ND",
	"ohio":                     "OH",
	"oklahoma":                 "OK",
	"oregon":                   "OR",
	"pennsylvania":             "PA",
	"rhode island":             "RI",
	"south carolina":           "SC",
	"south dakota":             "SD",
	"tennessee":                "TN",
	"texas":                    "TX",
	"utah":                     "UT",
	"vermont":                  "VT",
	"virginia":                 "VA",
	"washington":               "WA",
	"west virginia":            "WV",
	"wisconsin":                "WI",
	"wyoming":                  "WY",
	"puerto rico":              "PR",
	"virgin islands":           "VI",
	"guam":                     "GU",
	"american samoa":           "AS",
	"northern mariana islands": "MP",
	"unknown":                  "UN",
}

// regionFromFilename derives a region name from a CCHP-style report
// filename. Files that do not match the pattern land in "Unknown".
func regionFromFilename(fileName string) (name, code string) {
	name = "Unknown"
	if match := cchpFilenamePattern.FindStringSubmatch(fileName); match != nil {
		name = match[1]
	}
	return name, regionAbbreviation(name)
}

// regionAbbreviation returns the postal code for a known state name, or an
// initials-based fallback for anything else.
func regionAbbreviation(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "UN"
	}
	if code, ok := stateAbbreviations[normalized]; ok {
		return code
	}

	var initials strings.Builder
	for _, part := range strings.Fields(normalized) {
		initials.WriteString(strings.ToUpper(part[:1]))
	}
	code := initials.String()
	if len(code) > 3 {
		code = code[:3]
	}
	if code == "" {
		return "UN"
	}
	return code
}
