package reference

// Default returns the built-in reference set, already normalized. It is a
// small illustrative fixture; production deployments point
// REFERENCE_DATA_PATH at a maintained list.
func Default() *Data {
	return builtin.Normalize()
}

var builtin = Data{
	SanctionedEntities: []string{
		"Korea Mining Development Trading Corporation",
		"Islamic Republic of Iran Shipping Lines",
		"Rosoboronexport",
		"Tehran Petrochemical Trading Company",
		"Syrian Arab Petroleum Company",
		"Banco Nacional de Cuba",
		"Dandong Hongxiang Industrial Development",
		"Mahan Air",
	},
	SanctionKeywords: []string{
		"sanctioned", "embargoed", "blacklisted", "terror", "militia", "cartel",
	},
	SanctionedCountries: []string{
		"Iran", "North Korea", "DPRK", "Syria", "Cuba", "Venezuela", "Belarus", "Russia", "Myanmar",
	},
	HighRiskRegions: []string{
		"Afghanistan", "Iraq", "Libya", "Somalia", "Yemen", "South Sudan", "Sudan",
		"Crimea", "Donetsk", "Luhansk", "Mali", "Central African Republic",
	},
	TradeRoutes: []Route{
		{From: "China", To: "North Korea"},
		{From: "United Arab Emirates", To: "Iran"},
		{From: "Turkey", To: "Iran"},
		{From: "China", To: "Iran"},
		{From: "Hong Kong", To: "Russia"},
		{From: "Armenia", To: "Russia"},
		{From: "Kyrgyzstan", To: "Russia"},
		{From: "Lebanon", To: "Syria"},
	},

	FraudKeywords: []string{
		"fake", "fraud", "scam", "shell", "dummy", "ghost", "phantom",
		"anonymous", "bearer", "nominee", "offshore",
	},
	HighRiskEntityKeywords: []string{
		"casino", "gambling", "crypto", "remittance", "money transfer",
		"pawn", "arms", "precious metals",
	},
	ShellCompanyWords: []string{
		"holding", "holdings", "venture", "ventures", "capital", "investments", "enterprises",
	},
	GlobalReachWords: []string{
		"global", "international", "worldwide", "universal", "overseas",
	},
	FraudCorridors: []Route{
		{From: "Panama", To: "British Virgin Islands"},
		{From: "Cayman Islands", To: "Panama"},
		{From: "Seychelles", To: "United Arab Emirates"},
		{From: "Cyprus", To: "British Virgin Islands"},
		{From: "Belize", To: "Panama"},
		{From: "Marshall Islands", To: "Hong Kong"},
	},
	LowValueCommodities: []string{
		"textiles", "agricultural", "agriculture", "food", "grain", "paper",
		"plastic", "plastics", "furniture", "toys", "apparel", "scrap",
	},
	HighValueCommodities: []string{
		"gold", "diamonds", "precious metals", "jewelry", "electronics",
		"semiconductors", "pharmaceuticals", "machinery", "aircraft",
	},

	HighRiskCommodities: []string{
		"weapons", "weapon", "arms", "ammunition", "firearms", "explosives",
		"nuclear", "uranium", "plutonium", "military", "dual use",
		"conflict minerals", "coltan", "tantalum", "tungsten", "cassiterite",
		"rough diamonds", "ivory",
	},
	HighRiskCountries: []string{
		"Iran", "North Korea", "Syria", "Afghanistan", "Yemen", "Venezuela",
		"Myanmar", "Russia", "Sudan", "Somalia", "Libya", "Iraq",
	},
}
