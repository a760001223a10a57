package clock

// Zone pairs a human-readable city label with its IANA tz database name.
type Zone struct {
	Name string
	TZ   string
}

// Zones is the static timezone table offered by the configuration UI.
// DST rules come from the tz database, so entries here are just lookups.
// The first entry is the compiled-in default.
var Zones = []Zone{
	// Australia & Oceania
	{"Sydney, Australia", "Australia/Sydney"},
	{"Melbourne, Australia", "Australia/Melbourne"},
	{"Brisbane, Australia", "Australia/Brisbane"},
	{"Adelaide, Australia", "Australia/Adelaide"},
	{"Perth, Australia", "Australia/Perth"},
	{"Darwin, Australia", "Australia/Darwin"},
	{"Hobart, Australia", "Australia/Hobart"},
	{"Auckland, New Zealand", "Pacific/Auckland"},
	{"Wellington, New Zealand", "Pacific/Auckland"},
	{"Fiji", "Pacific/Fiji"},
	{"Port Moresby, Papua New Guinea", "Pacific/Port_Moresby"},
	{"Noumea, New Caledonia", "Pacific/Noumea"},

	// North America
	{"New York, USA", "America/New_York"},
	{"Los Angeles, USA", "America/Los_Angeles"},
	{"Chicago, USA", "America/Chicago"},
	{"Denver, USA", "America/Denver"},
	{"Phoenix, USA", "America/Phoenix"},
	{"Anchorage, USA", "America/Anchorage"},
	{"Honolulu, USA", "Pacific/Honolulu"},
	{"Toronto, Canada", "America/Toronto"},
	{"Vancouver, Canada", "America/Vancouver"},
	{"Montreal, Canada", "America/Toronto"},
	{"Mexico City, Mexico", "America/Mexico_City"},

	// South America
	{"Sao Paulo, Brazil", "America/Sao_Paulo"},
	{"Buenos Aires, Argentina", "America/Argentina/Buenos_Aires"},
	{"Santiago, Chile", "America/Santiago"},
	{"Lima, Peru", "America/Lima"},
	{"Bogota, Colombia", "America/Bogota"},
	{"Caracas, Venezuela", "America/Caracas"},

	// Western Europe
	{"London, UK", "Europe/London"},
	{"Paris, France", "Europe/Paris"},
	{"Berlin, Germany", "Europe/Berlin"},
	{"Rome, Italy", "Europe/Rome"},
	{"Madrid, Spain", "Europe/Madrid"},
	{"Amsterdam, Netherlands", "Europe/Amsterdam"},
	{"Brussels, Belgium", "Europe/Brussels"},
	{"Vienna, Austria", "Europe/Vienna"},
	{"Zurich, Switzerland", "Europe/Zurich"},
	{"Lisbon, Portugal", "Europe/Lisbon"},
	{"Dublin, Ireland", "Europe/Dublin"},
	{"Reykjavik, Iceland", "Atlantic/Reykjavik"},

	// Northern Europe
	{"Stockholm, Sweden", "Europe/Stockholm"},
	{"Oslo, Norway", "Europe/Oslo"},
	{"Copenhagen, Denmark", "Europe/Copenhagen"},
	{"Helsinki, Finland", "Europe/Helsinki"},

	// Central & Eastern Europe
	{"Prague, Czech Republic", "Europe/Prague"},
	{"Warsaw, Poland", "Europe/Warsaw"},
	{"Budapest, Hungary", "Europe/Budapest"},
	{"Athens, Greece", "Europe/Athens"},
	{"Bucharest, Romania", "Europe/Bucharest"},
	{"Sofia, Bulgaria", "Europe/Sofia"},
	{"Kyiv, Ukraine", "Europe/Kiev"},
	{"Moscow, Russia", "Europe/Moscow"},
	{"Minsk, Belarus", "Europe/Minsk"},

	// Middle East
	{"Dubai, UAE", "Asia/Dubai"},
	{"Tel Aviv, Israel", "Asia/Jerusalem"},
	{"Istanbul, Turkey", "Europe/Istanbul"},
	{"Riyadh, Saudi Arabia", "Asia/Riyadh"},
	{"Tehran, Iran", "Asia/Tehran"},

	// South Asia
	{"Mumbai, India", "Asia/Kolkata"},
	{"Colombo, Sri Lanka", "Asia/Colombo"},
	{"Kathmandu, Nepal", "Asia/Kathmandu"},
	{"Dhaka, Bangladesh", "Asia/Dhaka"},
	{"Karachi, Pakistan", "Asia/Karachi"},
	{"Kabul, Afghanistan", "Asia/Kabul"},
	{"Thimphu, Bhutan", "Asia/Thimphu"},

	// Southeast Asia
	{"Bangkok, Thailand", "Asia/Bangkok"},
	{"Singapore", "Asia/Singapore"},
	{"Jakarta, Indonesia", "Asia/Jakarta"},
	{"Manila, Philippines", "Asia/Manila"},
	{"Kuala Lumpur, Malaysia", "Asia/Kuala_Lumpur"},
	{"Ho Chi Minh, Vietnam", "Asia/Ho_Chi_Minh"},
	{"Yangon, Myanmar", "Asia/Yangon"},

	// East Asia
	{"Hong Kong", "Asia/Hong_Kong"},
	{"Shanghai, China", "Asia/Shanghai"},
	{"Taipei, Taiwan", "Asia/Taipei"},
	{"Tokyo, Japan", "Asia/Tokyo"},
	{"Seoul, South Korea", "Asia/Seoul"},
	{"Ulaanbaatar, Mongolia", "Asia/Ulaanbaatar"},

	// Central Asia
	{"Tashkent, Uzbekistan", "Asia/Tashkent"},
	{"Almaty, Kazakhstan", "Asia/Almaty"},
	{"Bishkek, Kyrgyzstan", "Asia/Bishkek"},

	// Caucasus
	{"Yerevan, Armenia", "Asia/Yerevan"},
	{"Tbilisi, Georgia", "Asia/Tbilisi"},
	{"Baku, Azerbaijan", "Asia/Baku"},

	// Africa
	{"Johannesburg, South Africa", "Africa/Johannesburg"},
	{"Cairo, Egypt", "Africa/Cairo"},
	{"Lagos, Nigeria", "Africa/Lagos"},
	{"Nairobi, Kenya", "Africa/Nairobi"},
}

// ValidZoneIndex reports whether i addresses an entry in the table.
func ValidZoneIndex(i int) bool {
	return i >= 0 && i < len(Zones)
}
