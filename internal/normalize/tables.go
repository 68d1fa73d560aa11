package normalize

import "github.com/quotewerk/quotewerk-backend/pkg/enums"

// renames maps legacy field IDs to their canonical IDs, per service type.
// The two upstream shapes disagree on several names; the canonical form is
// the one the catalog field schemas use.
var renames = map[enums.ServiceType]map[string]string{
	enums.ServiceTires: {
		"typ":          "reifentyp",
		"reifen_typ":   "reifentyp",
		"dimension":    "reifengroesse",
		"groesse":      "reifengroesse",
		"einlagern":    "einlagerung",
		"anzahl":       "reifen_anzahl",
		"reifenanzahl": "reifen_anzahl",
	},
	enums.ServicePaint: {
		"farbe":      "farbcode",
		"lackfarbe":  "farbcode",
		"lack_art":   "lackart",
		"komplett":   "ganzlackierung",
		"vollfolie":  "ganzlackierung",
		"smartspot":  "smart_repair",
		"smart_spot": "smart_repair",
	},
	enums.ServiceBodywork: {
		"anzahl_dellen": "dellen_anzahl",
		"dellenanzahl":  "dellen_anzahl",
		"dellen":        "dellen_anzahl",
		"hagel":         "hagelschaden",
		"unfall":        "unfallschaden",
	},
	enums.ServiceGlass: {
		"scheibe":       "scheiben_position",
		"position":      "scheiben_position",
		"steinschlaege": "steinschlag_anzahl",
	},
	enums.ServiceCosmetic: {
		"innen":  "innenreinigung",
		"aussen": "aussenreinigung",
	},
	enums.ServiceClimate: {
		"mittel":      "kaeltemittel",
		"kühlmittel":  "kaeltemittel",
		"kuehlmittel": "kaeltemittel",
	},
	enums.ServiceInspection: {
		"km":             "kilometerstand",
		"km_stand":       "kilometerstand",
		"letzte_wartung": "letzter_service",
	},
	enums.ServiceWrap: {
		"folie":      "folienart",
		"folien_art": "folienart",
	},
	enums.ServiceInsuranceClaim: {
		"versicherer":    "versicherung_name",
		"schadennummer":  "schaden_nummer",
		"schadensnummer": "schaden_nummer",
	},
}

// transforms canonicalize field values after renaming. Every transform is a
// fixed point on canonical values.
var transforms = map[enums.ServiceType]map[string]func(string) string{
	enums.ServiceTires: {
		"reifentyp": synonym(map[string]string{
			"ganzjahr":         "allseason",
			"ganzjahresreifen": "allseason",
			"allwetter":        "allseason",
			"sommerreifen":     "sommer",
			"winterreifen":     "winter",
		}),
		"einlagerung": jaNein,
		"mit_felgen":  jaNein,
	},
	enums.ServicePaint: {
		"ganzlackierung": jaNein,
		"smart_repair":   jaNein,
		"lackart": synonym(map[string]string{
			"metallic-lack": "metallic",
			"uni-lack":      "uni",
			"perleffekt":    "perlmutt",
		}),
	},
	enums.ServiceBodywork: {
		"dellen_anzahl": bucketDentCount,
		"hagelschaden":  jaNein,
		"unfallschaden": jaNein,
	},
	enums.ServiceGlass: {
		"scheiben_position": synonym(map[string]string{
			"front":        "frontscheibe",
			"windschutz":   "frontscheibe",
			"heck":         "heckscheibe",
			"seite links":  "seitenscheibe_links",
			"seite rechts": "seitenscheibe_rechts",
		}),
	},
	enums.ServiceCosmetic: {
		"innenreinigung":  jaNein,
		"aussenreinigung": jaNein,
		"politur":         jaNein,
	},
	enums.ServiceClimate: {
		"desinfektion": jaNein,
	},
	enums.ServiceWrap: {
		"folienart": synonym(map[string]string{
			"matt-folie":   "matt",
			"glanz-folie":  "glanz",
			"carbonfolie":  "carbon",
			"carbon-folie": "carbon",
		}),
	},
	enums.ServiceProtectiveFilm: {
		"frontpaket": jaNein,
	},
	enums.ServiceAdWrap: {
		"beidseitig": jaNein,
	},
	enums.ServiceInsuranceClaim: {
		"vollkasko": jaNein,
	},
}
