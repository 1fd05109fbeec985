package game

// SwissMap builds the built-in map: the 26 cantons of Switzerland with the
// seven statistical regions as continents.
func SwissMap() *GraphMap {
	territories := make([]Territory, 0, len(cantonAbbreviations))
	for i, abbrev := range cantonAbbreviations {
		t := Territory{
			ID:           TerritoryID(abbrev),
			Name:         cantonNames[i],
			Abbreviation: abbrev,
		}
		for _, adj := range adjacencyData[abbrev] {
			t.AdjacentIDs = append(t.AdjacentIDs, TerritoryID(adj))
		}
		territories = append(territories, t)
	}

	m, err := NewGraphMap("swiss", "Switzerland", territories, swissRegions)
	if err != nil {
		panic(err)
	}
	return m
}

var cantonAbbreviations = []string{
	"AG", "AI", "AR", "BE", "BL", "BS", "FR", "GE", "GL", "GR",
	"JU", "LU", "NE", "NW", "OW", "SG", "SH", "SO", "SZ", "TG",
	"TI", "UR", "VD", "VS", "ZG", "ZH",
}

var cantonNames = []string{
	"Aargau", "Appenzell Innerrhoden", "Appenzell Ausserrhoden", "Bern",
	"Basel-Landschaft", "Basel-Stadt", "Fribourg", "Geneva", "Glarus",
	"Graubünden", "Jura", "Lucerne", "Neuchâtel", "Nidwalden", "Obwalden",
	"St. Gallen", "Schaffhausen", "Solothurn", "Schwyz", "Thurgau",
	"Ticino", "Uri", "Vaud", "Valais", "Zug", "Zürich",
}

var adjacencyData = map[string][]string{
	"AG": {"BL", "LU", "ZG", "ZH", "SO"},
	"AI": {"AR", "SG"},
	"AR": {"AI", "SG"},
	"BE": {"FR", "JU", "NE", "SO", "VD", "VS", "LU"},
	"BL": {"AG", "BS", "SO", "JU"},
	"BS": {"BL"},
	"FR": {"BE", "VD", "NE"},
	"GE": {"VD"},
	"GL": {"SG", "SZ", "GR"},
	"GR": {"SG", "TI", "GL", "UR"},
	"JU": {"BE", "SO", "BL"},
	"LU": {"AG", "BE", "NW", "OW", "ZG"},
	"NE": {"BE", "FR", "VD"},
	"NW": {"OW", "LU", "UR"},
	"OW": {"NW", "UR", "LU"},
	"SG": {"AI", "AR", "GL", "TG", "ZH", "GR"},
	"SH": {"ZH", "TG"},
	"SO": {"BE", "BL", "JU", "AG"},
	"SZ": {"ZG", "UR", "GL"},
	"TG": {"SH", "SG", "ZH"},
	"TI": {"GR", "VS", "UR"},
	"UR": {"SZ", "OW", "GR", "TI", "NW"},
	"VD": {"GE", "FR", "VS", "NE", "BE"},
	"VS": {"VD", "BE", "TI", "UR"},
	"ZG": {"AG", "SZ", "LU", "ZH"},
	"ZH": {"AG", "SG", "TG", "SH", "ZG"},
}

var swissRegions = []Continent{
	{ID: "lake-geneva", Name: "Lake Geneva Region", Territories: []TerritoryID{"VD", "VS", "GE"}, Bonus: 2},
	{ID: "mittelland", Name: "Espace Mittelland", Territories: []TerritoryID{"BE", "FR", "SO", "NE", "JU"}, Bonus: 3},
	{ID: "northwest", Name: "Northwestern Switzerland", Territories: []TerritoryID{"BS", "BL", "AG"}, Bonus: 2},
	{ID: "zurich", Name: "Zürich", Territories: []TerritoryID{"ZH"}, Bonus: 1},
	{ID: "east", Name: "Eastern Switzerland", Territories: []TerritoryID{"GL", "SH", "AR", "AI", "SG", "GR", "TG"}, Bonus: 4},
	{ID: "central", Name: "Central Switzerland", Territories: []TerritoryID{"LU", "UR", "SZ", "OW", "NW", "ZG"}, Bonus: 3},
	{ID: "ticino", Name: "Ticino", Territories: []TerritoryID{"TI"}, Bonus: 1},
}
