package sampler

import (
	"math"
	"strings"
	"testing"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

func bundle(items ...dataset.SymptomItem) dataset.SymptomBundle {
	var texts []string
	for _, it := range items {
		texts = append(texts, it.Text)
	}
	return dataset.SymptomBundle{FullText: strings.Join(texts, "，"), Items: items}
}

func TestSampleAlwaysIncludesKeyItems(t *testing.T) {
	b := bundle(
		dataset.SymptomItem{Text: "恶寒重", IsKey: true},
		dataset.SymptomItem{Text: "头痛", IsKey: false},
		dataset.SymptomItem{Text: "无汗", IsKey: false},
		dataset.SymptomItem{Text: "流清涕", IsKey: false},
		dataset.SymptomItem{Text: "脉浮紧", IsKey: true},
	)
	r := randutil.NewRandom()

	for i := 0; i < 200; i++ {
		got := Sample(r, b)
		var hasChill, hasPulse bool
		for _, item := range got.Items {
			if item.Text == "恶寒重" {
				hasChill = true
			}
			if item.Text == "脉浮紧" {
				hasPulse = true
			}
		}
		if !hasChill || !hasPulse {
			t.Fatalf("iteration %d dropped a key item: %v", i, got.Items)
		}
	}
}

func TestSamplePreservesOrder(t *testing.T) {
	b := bundle(
		dataset.SymptomItem{Text: "a", IsKey: true},
		dataset.SymptomItem{Text: "b", IsKey: false},
		dataset.SymptomItem{Text: "c", IsKey: false},
		dataset.SymptomItem{Text: "d", IsKey: false},
		dataset.SymptomItem{Text: "e", IsKey: false},
		dataset.SymptomItem{Text: "f", IsKey: true},
	)
	order := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3, "e": 4, "f": 5}
	r := randutil.NewRandom()

	for i := 0; i < 200; i++ {
		got := Sample(r, b)
		for j := 1; j < len(got.Items); j++ {
			if order[got.Items[j-1].Text] >= order[got.Items[j].Text] {
				t.Fatalf("iteration %d out of order: %v", i, got.Items)
			}
		}
	}
}

func TestSampleCountWithinRatioBounds(t *testing.T) {
	items := make([]dataset.SymptomItem, 10)
	for i := range items {
		items[i] = dataset.SymptomItem{Text: string(rune('a' + i)), IsKey: i < 2}
	}
	b := bundle(items...)
	r := randutil.NewRandom()

	lo := int(math.Ceil(MinRatio * 10))
	hi := int(math.Ceil(MaxRatio * 10))
	for i := 0; i < 500; i++ {
		got := Sample(r, b)
		if n := len(got.Items); n < lo || n > hi {
			t.Fatalf("iteration %d picked %d items, want in [%d, %d]", i, n, lo, hi)
		}
	}
}

func TestSampleTextJoinsWithFullWidthComma(t *testing.T) {
	b := bundle(
		dataset.SymptomItem{Text: "发热", IsKey: true},
		dataset.SymptomItem{Text: "恶寒", IsKey: true},
	)
	got := Sample(randutil.NewRandom(), b)
	if got.Text != "发热，恶寒" {
		t.Errorf("Text = %q, want %q", got.Text, "发热，恶寒")
	}
}

func TestSampleAllKeysDegenerate(t *testing.T) {
	b := bundle(
		dataset.SymptomItem{Text: "x", IsKey: true},
		dataset.SymptomItem{Text: "y", IsKey: true},
	)
	got := Sample(randutil.NewRandom(), b)
	if len(got.Items) != 2 {
		t.Errorf("got %d items, want 2", len(got.Items))
	}
}

func TestSampleEmptyBundle(t *testing.T) {
	got := Sample(randutil.NewRandom(), dataset.SymptomBundle{})
	if len(got.Items) != 0 || got.Text != "" {
		t.Errorf("empty bundle produced %+v", got)
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	items := make([]dataset.SymptomItem, 8)
	for i := range items {
		items[i] = dataset.SymptomItem{Text: string(rune('a' + i)), IsKey: i == 0}
	}
	b := bundle(items...)

	a := Sample(randutil.New(7, 11), b)
	c := Sample(randutil.New(7, 11), b)
	if a.Text != c.Text {
		t.Errorf("same seed gave %q and %q", a.Text, c.Text)
	}
}
