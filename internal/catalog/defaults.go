package catalog

import (
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// defaultEntries is the built-in catalog used until the database tables are
// seeded, and whenever loading them fails. Part and field names here are the
// canonical ones the normalization rules produce.
func defaultEntries() []Entry {
	return []Entry{
		{
			Type:  enums.ServicePaint,
			Label: "Lackierung",
			Parts: []string{
				"Stoßstange vorne", "Stoßstange hinten", "Motorhaube", "Dach",
				"Tür vorne links", "Tür vorne rechts", "Tür hinten links", "Tür hinten rechts",
				"Kotflügel links", "Kotflügel rechts", "Heckklappe", "Schweller links", "Schweller rechts",
				"Außenspiegel links", "Außenspiegel rechts",
			},
			Operations: []enums.RepairOperation{enums.OpPaint, enums.OpSmartRepair, enums.OpPolish},
			Fields: []types.FieldSpec{
				{ID: "farbcode", Label: "Farbcode", Type: enums.FieldText, Required: true},
				{ID: "lackart", Label: "Lackart", Type: enums.FieldSelect, Options: []string{"uni", "metallic", "perlmutt"}},
				{ID: "ganzlackierung", Label: "Ganzlackierung", Type: enums.FieldBoolean},
			},
		},
		{
			Type:  enums.ServiceBodywork,
			Label: "Karosserie",
			Parts: []string{
				"Stoßstange vorne", "Stoßstange hinten", "Motorhaube", "Dach",
				"Tür vorne links", "Tür vorne rechts", "Tür hinten links", "Tür hinten rechts",
				"Kotflügel links", "Kotflügel rechts", "Heckklappe", "Schweller links", "Schweller rechts",
			},
			Operations: []enums.RepairOperation{enums.OpDentPull, enums.OpReplace, enums.OpWeld, enums.OpGlue, enums.OpSmartRepair},
			Fields: []types.FieldSpec{
				{ID: "dellen_anzahl", Label: "Anzahl Dellen", Type: enums.FieldSelect, Options: []string{"1-5", "6-15", "16-30", "31+"}},
				{ID: "hagelschaden", Label: "Hagelschaden", Type: enums.FieldBoolean},
				{ID: "unfallschaden", Label: "Unfallschaden", Type: enums.FieldBoolean},
			},
		},
		{
			Type:  enums.ServiceTires,
			Label: "Reifen & Räder",
			Parts: []string{
				"Reifen vorne links", "Reifen vorne rechts", "Reifen hinten links", "Reifen hinten rechts",
				"Felge vorne links", "Felge vorne rechts", "Felge hinten links", "Felge hinten rechts",
			},
			Operations: []enums.RepairOperation{enums.OpMount, enums.OpBalance, enums.OpReplace},
			Fields: []types.FieldSpec{
				{ID: "reifentyp", Label: "Reifentyp", Type: enums.FieldSelect, Options: []string{"sommer", "winter", "allseason"}, Required: true},
				{ID: "reifengroesse", Label: "Reifengröße", Type: enums.FieldText},
				{ID: "reifen_anzahl", Label: "Anzahl", Type: enums.FieldNumber},
				{ID: "einlagerung", Label: "Einlagerung", Type: enums.FieldBoolean},
			},
		},
		{
			Type:  enums.ServiceGlass,
			Label: "Glas",
			Parts: []string{
				"Frontscheibe", "Heckscheibe", "Seitenscheibe vorne links", "Seitenscheibe vorne rechts",
				"Seitenscheibe hinten links", "Seitenscheibe hinten rechts",
			},
			Operations: []enums.RepairOperation{enums.OpReplace, enums.OpGlue, enums.OpCalibrate},
			Fields: []types.FieldSpec{
				{ID: "scheiben_position", Label: "Scheibe", Type: enums.FieldSelect, Options: []string{"frontscheibe", "heckscheibe", "seitenscheibe_links", "seitenscheibe_rechts"}},
				{ID: "steinschlag_anzahl", Label: "Anzahl Steinschläge", Type: enums.FieldNumber},
			},
		},
		{
			Type:  enums.ServiceMechanical,
			Label: "Mechanik",
			Parts: []string{
				"Scheinwerfer links", "Scheinwerfer rechts", "Rückleuchte links", "Rückleuchte rechts",
				"Außenspiegel links", "Außenspiegel rechts", "Unterfahrschutz",
			},
			Operations: []enums.RepairOperation{enums.OpReplace, enums.OpCalibrate, enums.OpMount},
		},
		{
			Type:       enums.ServiceCosmetic,
			Label:      "Fahrzeugpflege",
			Parts:      []string{"Innenraum", "Außenbereich", "Scheinwerfer links", "Scheinwerfer rechts", "Felgen"},
			Operations: []enums.RepairOperation{enums.OpPolish},
			Fields: []types.FieldSpec{
				{ID: "innenreinigung", Label: "Innenreinigung", Type: enums.FieldBoolean},
				{ID: "aussenreinigung", Label: "Außenreinigung", Type: enums.FieldBoolean},
				{ID: "politur", Label: "Politur", Type: enums.FieldBoolean},
			},
		},
		{
			Type:       enums.ServiceInspection,
			Label:      "Inspektion",
			Parts:      []string{"Gesamtfahrzeug"},
			Operations: []enums.RepairOperation{enums.OpCalibrate},
			Fields: []types.FieldSpec{
				{ID: "kilometerstand", Label: "Kilometerstand", Type: enums.FieldNumber, Required: true},
				{ID: "letzter_service", Label: "Letzter Service", Type: enums.FieldText},
			},
		},
		{
			Type:       enums.ServiceClimate,
			Label:      "Klimaservice",
			Parts:      []string{"Klimaanlage"},
			Operations: []enums.RepairOperation{enums.OpCalibrate},
			Fields: []types.FieldSpec{
				{ID: "kaeltemittel", Label: "Kältemittel", Type: enums.FieldSelect, Options: []string{"r134a", "r1234yf"}},
				{ID: "desinfektion", Label: "Desinfektion", Type: enums.FieldBoolean},
			},
		},
		{
			Type:  enums.ServiceWrap,
			Label: "Folierung",
			Parts: []string{
				"Motorhaube", "Dach", "Heckklappe", "Tür vorne links", "Tür vorne rechts",
				"Tür hinten links", "Tür hinten rechts", "Gesamtfahrzeug",
			},
			Operations: []enums.RepairOperation{enums.OpGlue},
			Fields: []types.FieldSpec{
				{ID: "folienart", Label: "Folienart", Type: enums.FieldSelect, Options: []string{"matt", "glanz", "carbon"}},
			},
		},
		{
			Type:       enums.ServiceProtectiveFilm,
			Label:      "Steinschlagschutz",
			Parts:      []string{"Motorhaube", "Stoßstange vorne", "Kotflügel links", "Kotflügel rechts", "Außenspiegel links", "Außenspiegel rechts"},
			Operations: []enums.RepairOperation{enums.OpGlue},
			Fields: []types.FieldSpec{
				{ID: "frontpaket", Label: "Frontpaket", Type: enums.FieldBoolean},
			},
		},
		{
			Type:       enums.ServiceAdWrap,
			Label:      "Werbebeklebung",
			Parts:      []string{"Tür vorne links", "Tür vorne rechts", "Heckklappe", "Heckscheibe", "Gesamtfahrzeug"},
			Operations: []enums.RepairOperation{enums.OpGlue},
			Fields: []types.FieldSpec{
				{ID: "beidseitig", Label: "Beidseitig", Type: enums.FieldBoolean},
				{ID: "motiv", Label: "Motiv", Type: enums.FieldFile},
			},
		},
		{
			Type:       enums.ServiceInsuranceClaim,
			Label:      "Versicherungsfall",
			Parts:      []string{"Gesamtfahrzeug"},
			Operations: []enums.RepairOperation{enums.OpSmartRepair},
			Fields: []types.FieldSpec{
				{ID: "versicherung_name", Label: "Versicherung", Type: enums.FieldText, Required: true},
				{ID: "schaden_nummer", Label: "Schadennummer", Type: enums.FieldText, Required: true},
				{ID: "vollkasko", Label: "Vollkasko", Type: enums.FieldBoolean},
			},
		},
	}
}
