package attribution

import "strings"

// DefaultLicense is used when no known source matches.
const DefaultLicense = "See source page for license"

// licenseRules are checked in order; the last match wins.
var licenseRules = []struct {
	substr  string
	license string
}{
	{"FractionCircles_Blank", "CC0 (Public Domain)"},
	{"Place_values", "CC BY-SA 4.0"},
	{"Skip_counting_on_a_number_line", "CC0 (Public Domain)"},
	{"PerimeterRectangle", "CC0 (Public Domain)"},
	{"Protractor", "CC0 (Public Domain / OpenClipart)"},
	{"Long_division", "CC BY-SA 4.0"},
	{"Grouped_Bar_Chart", "CC BY-SA 3.0"},
	{"Measuring_-_Fractions_of_an_inch", "Public Domain / CC0"},
}

// LicenseFor returns the license text for an image URL.
func LicenseFor(url string) string {
	license := DefaultLicense
	for _, r := range licenseRules {
		if strings.Contains(url, r.substr) {
			license = r.license
		}
	}
	return license
}
