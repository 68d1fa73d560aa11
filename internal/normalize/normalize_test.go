package normalize

import (
	"reflect"
	"testing"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
)

func TestFieldsRenamesPerService(t *testing.T) {
	t.Parallel()

	got := Fields(enums.ServiceTires, map[string]string{
		"typ":       "winterreifen",
		"dimension": "205/55 R16",
	})

	if got["reifentyp"] != "winter" {
		t.Fatalf("expected canonical reifentyp=winter, got %q", got["reifentyp"])
	}
	if got["reifengroesse"] != "205/55 R16" {
		t.Fatalf("expected dimension renamed to reifengroesse, got %v", got)
	}
	if _, exists := got["typ"]; exists {
		t.Fatalf("legacy key should be removed after rename: %v", got)
	}
}

func TestFieldsRenameNeverOverwritesCanonical(t *testing.T) {
	t.Parallel()

	got := Fields(enums.ServiceTires, map[string]string{
		"reifentyp": "sommer",
		"typ":       "winter",
	})

	if got["reifentyp"] != "sommer" {
		t.Fatalf("explicit canonical value must win, got %q", got["reifentyp"])
	}
}

func TestFieldsScopesRulesByService(t *testing.T) {
	t.Parallel()

	// "typ" is only a tire alias; other services keep it verbatim.
	got := Fields(enums.ServicePaint, map[string]string{"typ": "metallic"})

	if got["typ"] != "metallic" {
		t.Fatalf("unscoped key should pass through untouched, got %v", got)
	}
}

func TestFieldsBucketsDentCounts(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"3":             "1-5",
		"6":             "6-15",
		"30":            "16-30",
		"31":            "31+",
		"120":           "31+",
		"ca. 12 Dellen": "6-15",
		"6-15":          "6-15",
		"31+":           "31+",
		"keine Angabe":  "keine Angabe",
	}

	for input, want := range cases {
		got := Fields(enums.ServiceBodywork, map[string]string{"anzahl_dellen": input})
		if got["dellen_anzahl"] != want {
			t.Fatalf("dent count %q: expected bucket %q, got %q", input, want, got["dellen_anzahl"])
		}
	}
}

func TestFieldsIsIdempotent(t *testing.T) {
	t.Parallel()

	raw := map[string]string{
		"anzahl_dellen": "17",
		"hagel":         "true",
		"teilebereich":  "hinten links",
	}

	once := Fields(enums.ServiceBodywork, raw)
	twice := Fields(enums.ServiceBodywork, once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("pipeline must be idempotent: first %v, second %v", once, twice)
	}
	if once["hagelschaden"] != "ja" {
		t.Fatalf("expected boolean mapped to ja, got %q", once["hagelschaden"])
	}
}

func TestFromPayloadStringifiesAndDropsJunk(t *testing.T) {
	t.Parallel()

	got := FromPayload(enums.ServiceTires, map[string]any{
		"einlagern": true,
		"anzahl":    float64(4),
		"notiz":     nil,
		"extras":    []any{"felgen"},
		"typ":       "ganzjahr",
	})

	want := map[string]string{
		"einlagerung":   "ja",
		"reifen_anzahl": "4",
		"reifentyp":     "allseason",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMergeTiersHigherTierWins(t *testing.T) {
	t.Parallel()

	inProgress := map[string]string{"farbcode": "LC9A"}
	loaded := map[string]string{"farbcode": "LY7W", "lackart": "metallic"}

	merged := MergeTiers(inProgress, TierQuoteInProgress, loaded, TierIntakeDraft)

	if merged["farbcode"] != "LC9A" {
		t.Fatalf("in-progress value must survive a reload, got %q", merged["farbcode"])
	}
	if merged["lackart"] != "metallic" {
		t.Fatalf("new keys from the lower tier should still land, got %v", merged)
	}
}

func TestMergeTiersOverlayWinsAtEqualOrHigherTier(t *testing.T) {
	t.Parallel()

	draft := map[string]string{"reifentyp": "sommer"}
	partner := map[string]string{"reifentyp": "winter"}

	merged := MergeTiers(draft, TierIntakeDraft, partner, TierPartnerSubmission)

	if merged["reifentyp"] != "winter" {
		t.Fatalf("partner submission outranks an intake draft, got %q", merged["reifentyp"])
	}
}
