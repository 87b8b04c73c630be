package calendar

// ZoneFromCountry maps an ISO 3166-1 alpha-3 country code to an IANA zone
// with geographical naming. Only countries with a single zone resolve; the
// mapping is best effort and covers the European OCPI footprint.
func ZoneFromCountry(code string) (string, bool) {
	zones := map[string]string{
		"AND": "Europe/Andorra",
		"ALB": "Europe/Tirane",
		"AUT": "Europe/Vienna",
		"BIH": "Europe/Sarajevo",
		"BEL": "Europe/Brussels",
		"BGR": "Europe/Sofia",
		"BLR": "Europe/Minsk",
		"CHE": "Europe/Zurich",
		"CYP": "Europe/Nicosia",
		"CZE": "Europe/Prague",
		"DEU": "Europe/Berlin",
		"DNK": "Europe/Copenhagen",
		"EST": "Europe/Tallinn",
		"ESP": "Europe/Madrid",
		"FIN": "Europe/Helsinki",
		"FRA": "Europe/Paris",
		"GBR": "Europe/London",
		"GRC": "Europe/Athens",
		"HRV": "Europe/Zagreb",
		"HUN": "Europe/Budapest",
		"IRL": "Europe/Dublin",
		"ISL": "Iceland",
		"ITA": "Europe/Rome",
		"LIE": "Europe/Vaduz",
		"LTU": "Europe/Vilnius",
		"LUX": "Europe/Luxembourg",
		"LVA": "Europe/Riga",
		"MCO": "Europe/Monaco",
		"MDA": "Europe/Chisinau",
		"MNE": "Europe/Podgorica",
		"MKD": "Europe/Skopje",
		"MLT": "Europe/Malta",
		"NLD": "Europe/Amsterdam",
		"NOR": "Europe/Oslo",
		"POL": "Europe/Warsaw",
		"PRT": "Europe/Lisbon",
		"ROU": "Europe/Bucharest",
		"SRB": "Europe/Belgrade",
		"RUS": "Europe/Moscow",
		"SWE": "Europe/Stockholm",
		"SVN": "Europe/Ljubljana",
		"SVK": "Europe/Bratislava",
		"SMR": "Europe/San_Marino",
		"TUR": "Turkey",
		"UKR": "Europe/Kiev",
	}

	zone, ok := zones[code]
	return zone, ok
}
