package casegen

import (
	"fmt"
	"strings"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

// ageRange is inclusive; pediatric ranges are in months, adult in years.
type ageRange struct{ lo, hi int }

// Pediatric age windows in months. Diseases outside the table fall back
// to pediatricDefaultMonths.
var pediatricAgeMonths = map[string]ageRange{
	"D012": {6, 36},  // 肺炎喘嗽
	"D013": {6, 48},  // 小儿泄泻
	"D014": {8, 60},  // 麻疹
	"D015": {36, 108}, // 痄腮
	"D016": {12, 84}, // 水痘
}

var pediatricDefaultMonths = ageRange{12, 72}

// Female-only diseases and their adult age windows in years.
var femaleAgeYears = map[string]ageRange{
	"D007": {14, 30}, // 痛经
	"D008": {18, 48}, // 崩漏
	"D009": {22, 38}, // 妊娠恶阻
	"D010": {22, 40}, // 产后发热
	"D011": {24, 38}, // 不孕症
}

var femaleDefaultYears = ageRange{20, 50}

var femaleMarkers = []string{"经", "带", "胎", "产", "乳", "妊", "孕", "崩", "漏"}

// Male-only diseases; currently the prostate group.
var maleOnly = map[string]ageRange{
	"D017": {55, 78}, // 精癃
}

var maleMarkers = []string{"精癃", "阳痿", "遗精"}

var defaultAgeYears = ageRange{22, 72}

// demographics is the resolved patient identity for one case.
type demographics struct {
	descriptor string // "患者，女，32岁" or "患儿，男，8个月"
	context    string // e.g. "妊娠8周，", empty for most diseases
	pediatric  bool
}

// resolveDemographics walks the decision table in priority order:
// pediatric set, then female-only, then male-only, then the default.
func resolveDemographics(r *randutil.Rand, d *dataset.Disease) demographics {
	if d.Category == dataset.CategoryPediatrics {
		months := pickRange(r, pediatricAgeMonths, d.ID, pediatricDefaultMonths)
		age := fmt.Sprintf("%d个月", months)
		if months >= 12 {
			age = fmt.Sprintf("%d岁", months/12)
		}
		return demographics{
			descriptor: fmt.Sprintf("患儿，%s，%s", uniformGender(r), age),
			pediatric:  true,
		}
	}

	if _, ok := femaleAgeYears[d.ID]; ok || containsAny(d.Name, femaleMarkers) {
		years := pickRange(r, femaleAgeYears, d.ID, femaleDefaultYears)
		return demographics{
			descriptor: fmt.Sprintf("患者，女，%d岁", years),
			context:    femaleContext(r, d.ID),
		}
	}

	if _, ok := maleOnly[d.ID]; ok || containsAny(d.Name, maleMarkers) {
		years := pickRange(r, maleOnly, d.ID, defaultAgeYears)
		return demographics{descriptor: fmt.Sprintf("患者，男，%d岁", years)}
	}

	years := r.IntBetween(defaultAgeYears.lo, defaultAgeYears.hi)
	return demographics{descriptor: fmt.Sprintf("患者，%s，%d岁", uniformGender(r), years)}
}

// femaleContext attaches obstetric qualifiers for the diseases that
// need them to make the vignette read plausibly.
func femaleContext(r *randutil.Rand, diseaseID string) string {
	switch diseaseID {
	case "D009":
		return fmt.Sprintf("妊娠%d周，", r.IntBetween(6, 12))
	case "D010":
		return fmt.Sprintf("产后%d天，", r.IntBetween(3, 20))
	case "D011":
		return fmt.Sprintf("婚后%d年未孕，", r.IntBetween(2, 8))
	}
	return ""
}

func pickRange(r *randutil.Rand, table map[string]ageRange, id string, fallback ageRange) int {
	rg, ok := table[id]
	if !ok {
		rg = fallback
	}
	return r.IntBetween(rg.lo, rg.hi)
}

func uniformGender(r *randutil.Rand) string {
	if r.IntBetween(0, 1) == 0 {
		return "男"
	}
	return "女"
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
