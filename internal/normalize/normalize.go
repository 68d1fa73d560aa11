// Package normalize reconciles service-detail fields from the two upstream
// record shapes (intake drafts and partner submissions) into one canonical
// form. Rules are scoped per service type: a generic key like "art" means
// something different per service, so nothing is renamed unless a
// service-specific rule exists. The pipeline is idempotent; re-running it on
// its own output changes nothing.
package normalize

import (
	"strconv"
	"strings"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Tier orders the sources a detail value can come from. Higher tiers win on
// merge: a quote already in progress overrides a freshly loaded draft.
type Tier int

const (
	TierIntakeDraft Tier = iota + 1
	TierPartnerSubmission
	TierQuoteInProgress
)

// Fields canonicalizes one raw field map for the given service type.
// Unrecognized keys pass through untouched; null-ish values are dropped.
func Fields(service enums.ServiceType, raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if strings.TrimSpace(value) == "" {
			continue
		}
		out[key] = value
	}

	// Renames apply only when the canonical key is not already present, so a
	// legacy value never overwrites an explicit canonical one.
	for sourceKey, canonicalKey := range renames[service] {
		value, ok := out[sourceKey]
		if !ok {
			continue
		}
		if _, exists := out[canonicalKey]; !exists {
			out[canonicalKey] = value
		}
		delete(out, sourceKey)
	}

	for fieldID, transform := range transforms[service] {
		if value, ok := out[fieldID]; ok {
			out[fieldID] = transform(value)
		}
	}

	return out
}

// FromPayload stringifies a raw JSON field map and canonicalizes it.
// Booleans, numbers and strings are supported; anything else is treated as
// absent rather than failing the load.
func FromPayload(service enums.ServiceType, payload map[string]any) map[string]string {
	raw := make(map[string]string, len(payload))
	for key, value := range payload {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			raw[key] = v
		case bool:
			raw[key] = strconv.FormatBool(v)
		case float64:
			if v == float64(int64(v)) {
				raw[key] = strconv.FormatInt(int64(v), 10)
				continue
			}
			raw[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			raw[key] = strconv.Itoa(v)
		default:
			continue
		}
	}
	return Fields(service, raw)
}

// MergeTiers folds an overlay field map into base. The higher tier wins per
// key; equal tiers are last-write-wins in call order.
func MergeTiers(base map[string]string, baseTier Tier, overlay map[string]string, overlayTier Tier) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		if _, exists := merged[key]; exists && overlayTier < baseTier {
			continue
		}
		merged[key] = value
	}
	return merged
}

// Details runs the pipeline over every service section of a loaded record.
func Details(sections map[enums.ServiceType]map[string]any) types.ServiceDetails {
	out := types.ServiceDetails{}
	for service, payload := range sections {
		fields := FromPayload(service, payload)
		if len(fields) > 0 {
			out[service] = fields
		}
	}
	return out
}

func jaNein(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "ja", "yes", "1":
		return "ja"
	case "false", "nein", "no", "0":
		return "nein"
	}
	return value
}

// dentBuckets are ordered; the label itself is a fixed point of the transform.
var dentBuckets = []struct {
	max   int
	label string
}{
	{5, "1-5"},
	{15, "6-15"},
	{30, "16-30"},
}

const dentBucketMax = "31+"

func bucketDentCount(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, bucket := range dentBuckets {
		if trimmed == bucket.label {
			return bucket.label
		}
	}
	if trimmed == dentBucketMax {
		return dentBucketMax
	}
	count, err := strconv.Atoi(trimmed)
	if err != nil {
		// Free-text counts like "ca. 12 Dellen" keep their first number.
		count = firstNumber(trimmed)
		if count < 0 {
			return value
		}
	}
	if count < 1 {
		return value
	}
	for _, bucket := range dentBuckets {
		if count <= bucket.max {
			return bucket.label
		}
	}
	return dentBucketMax
}

func firstNumber(value string) int {
	start := -1
	for i, r := range value {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(value[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(value[start:])
		return n
	}
	return -1
}

func synonym(table map[string]string) func(string) string {
	return func(value string) string {
		key := strings.ToLower(strings.TrimSpace(value))
		if mapped, ok := table[key]; ok {
			return mapped
		}
		return value
	}
}
