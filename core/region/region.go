// Package region maps human-readable region labels to the canonical short
// codes used in artifact filenames and provides stable region bucketing.
package region

import "hash/fnv"

// codeTable lists the region labels that embed a parenthetical abbreviation.
// Lookup is exact string equality; any other label is its own code.
var codeTable = map[string]string{
	"Dadra & Nagar Haveli (DNH)": "DNH",
	"Himachal Pradesh (HP)":      "HP",
	"Jammu & Kashmir (J&K)":      "J&K",
	"Madhya Pradesh (MP)":        "MP",
	"Puducherry (Pondy)":         "Pondy",
	"Uttar Pradesh (UP)":         "UP",
}

// Normalize returns the canonical code for a region label. Unmapped labels
// are returned unchanged, so the function is idempotent.
func Normalize(label string) string {
	if code, ok := codeTable[label]; ok {
		return code
	}
	return label
}

// HashBucket maps a region label to a bucket in [0, 1000). The hash is
// FNV-1a 32-bit over the raw label bytes: cross-process stable, and any
// change to it shifts every synthesized base usage value. Collisions
// between regions are acceptable.
func HashBucket(label string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	return int(h.Sum32() % 1000)
}
