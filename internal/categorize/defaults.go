package categorize

// DefaultMappings returns the built-in keyword lists, tuned for Finnish merchants.
func DefaultMappings() Mappings {
	return Mappings{
		{Name: "food", Keywords: []string{
			"LIDL", "K-MARKET", "K MARKET", "S-MARKET", "ALEPA", "PRISMA",
			"CITYMARKET", "SALE", "TOKMANNI", "RUOHONJUURI",
		}},
		{Name: "transport", Keywords: []string{
			"HSL", "VR", "FINNAIR", "NORWEGIAN", "TAXI", "TAKSI",
			"UBER", "BOLT.EU", "VANTAAN TAKSI", "LÄHITAKSI",
		}},
		{Name: "utilities", Keywords: []string{
			"HELEN", "VANTAAN ENERGIA", "CARUNA", "HSY", "DNA OYJ",
			"ELISA", "TELIA", "FORTUM",
		}},
		{Name: "entertainment", Keywords: []string{
			"NETFLIX", "SPOTIFY", "HBO", "ELOKUVA", "FINNKINO", "ZYNGA",
			"STEAM", "SUPERCELL", "NINTENDO", "PLAYSTATION",
		}},
		{Name: "health", Keywords: []string{
			"APTEEKKI", "YLIOPISTON APTEEKKI", "MEHILÄINEN", "TERVEYSTALO",
			"AAVA", "HAMMASLÄÄKÄRI", "FYSIOS", "HOITO",
		}},
		{Name: "rent", Keywords: []string{
			"VUOKRA", "VUOKRANANTAJA", "SATO", "LUMO", "KOJAMO", "ASUNTO OY",
			"RENTAL", "MAANVUOKRA",
		}},
	}
}
