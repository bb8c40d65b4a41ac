// Package sampler draws randomized symptom presentations from a
// syndrome's item list. Key items always appear; filler items are
// included at a randomized ratio so repeated drills read differently.
package sampler

import (
	"math"
	"sort"
	"strings"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

// Inclusion ratio bounds, applied to the full item list.
const (
	MinRatio = 0.6
	MaxRatio = 0.9
)

// Result is one sampled presentation.
type Result struct {
	Items []dataset.SymptomItem
	Text  string
}

// Sample draws a presentation from the bundle. Every key item is
// included; non-key items fill up to a ratio drawn from
// [MinRatio, MaxRatio] of the total list. Item order follows the
// bundle, and Text joins the item texts with a full-width comma.
func Sample(r *randutil.Rand, bundle dataset.SymptomBundle) Result {
	items := bundle.Items
	if len(items) == 0 {
		return Result{}
	}

	ratio := r.FloatBetween(MinRatio, MaxRatio)
	target := int(math.Ceil(ratio * float64(len(items))))

	var keyIdx, fillerIdx []int
	for i, item := range items {
		if item.IsKey {
			keyIdx = append(keyIdx, i)
		} else {
			fillerIdx = append(fillerIdx, i)
		}
	}

	if target < len(keyIdx) {
		target = len(keyIdx)
	}
	if target > len(items) {
		target = len(items)
	}

	chosen := append([]int(nil), keyIdx...)
	fillerCount := target - len(keyIdx)
	if fillerCount > 0 {
		chosen = append(chosen, randutil.PickManyUnique(r, fillerIdx, fillerCount)...)
	}
	sort.Ints(chosen)

	picked := make([]dataset.SymptomItem, len(chosen))
	texts := make([]string, len(chosen))
	for i, idx := range chosen {
		picked[i] = items[idx]
		texts[i] = items[idx].Text
	}

	return Result{Items: picked, Text: strings.Join(texts, "，")}
}
