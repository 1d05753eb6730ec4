package location

// DefaultAliasGroups returns the built-in country alias groups. Bare two-letter
// codes are listed only where they are unambiguous in directory data; short
// generic fragments ("korea", "congo", "america") are left out because they are
// substrings of other country names.
func DefaultAliasGroups() []AliasGroup {
	return []AliasGroup{
		{Name: "united-arab-emirates", Keys: []string{"United Arab Emirates", "UAE", "U.A.E.", "Emirates"}},
		{Name: "united-kingdom", Keys: []string{"United Kingdom", "UK", "U.K.", "Great Britain", "Britain"}},
		{Name: "united-states", Keys: []string{"United States", "USA", "US", "U.S.A.", "United States of America"}},
		{Name: "saudi-arabia", Keys: []string{"Saudi Arabia", "KSA", "Kingdom of Saudi Arabia"}},
		{Name: "netherlands", Keys: []string{"Netherlands", "The Netherlands", "Holland"}},
		{Name: "germany", Keys: []string{"Germany", "Deutschland"}},
		{Name: "spain", Keys: []string{"Spain", "España"}},
		{Name: "italy", Keys: []string{"Italy", "Italia"}},
		{Name: "austria", Keys: []string{"Austria", "Österreich"}},
		{Name: "switzerland", Keys: []string{"Switzerland", "Schweiz", "Suisse"}},
		{Name: "czechia", Keys: []string{"Czechia", "Czech Republic"}},
		{Name: "turkey", Keys: []string{"Türkiye", "Turkey"}},
		{Name: "russia", Keys: []string{"Russia", "Russian Federation"}},
		{Name: "china", Keys: []string{"China", "People's Republic of China", "PRC"}},
		{Name: "hong-kong", Keys: []string{"Hong Kong", "Hong Kong SAR"}},
		{Name: "macao", Keys: []string{"Macao", "Macau"}},
		{Name: "south-korea", Keys: []string{"South Korea", "Korea, Republic of"}},
		{Name: "vietnam", Keys: []string{"Vietnam", "Viet Nam"}},
		{Name: "myanmar", Keys: []string{"Myanmar", "Burma"}},
		{Name: "iran", Keys: []string{"Iran", "Islamic Republic of Iran"}},
		{Name: "syria", Keys: []string{"Syria", "Syrian Arab Republic"}},
		{Name: "north-macedonia", Keys: []string{"North Macedonia", "Macedonia"}},
		{Name: "eswatini", Keys: []string{"Eswatini", "Swaziland"}},
		{Name: "cabo-verde", Keys: []string{"Cabo Verde", "Cape Verde"}},
		{Name: "cote-divoire", Keys: []string{"Côte d'Ivoire", "Ivory Coast"}},
		{Name: "timor-leste", Keys: []string{"Timor-Leste", "East Timor"}},
	}
}

// DefaultAliasTable builds the table from DefaultAliasGroups.
func DefaultAliasTable() *AliasTable {
	t, err := NewAliasTable(DefaultAliasGroups())
	if err != nil {
		panic("location: built-in alias groups are inconsistent: " + err.Error())
	}
	return t
}
