package casegen

import (
	"strings"

	"github.com/qihuang/bianzheng/internal/randutil"
)

// Seasonal priors for pediatric infectious diseases, consulted only when
// the syndrome name itself gives no seasonal signal.
var diseaseSeasonPriors = map[string][]string{
	"D014": {"冬季", "春季"}, // 麻疹
	"D015": {"春季"},       // 痄腮
	"D016": {"冬季", "春季"}, // 水痘
}

// inferSeason resolves the case's season. Syndrome-name markers take
// precedence over disease priors; an empty result means the narrative
// carries no season sentence.
func inferSeason(r *randutil.Rand, diseaseID, syndromeName string) string {
	switch {
	case strings.Contains(syndromeName, "暑") || strings.Contains(syndromeName, "湿热"):
		return "夏季"
	case strings.Contains(syndromeName, "风寒"):
		s, _ := randutil.PickOne(r, []string{"冬季", "初春", "深秋"})
		return s
	case strings.Contains(syndromeName, "风热"):
		s, _ := randutil.PickOne(r, []string{"春季", "初夏"})
		return s
	case strings.Contains(syndromeName, "燥"):
		return "秋季"
	}

	if prior, ok := diseaseSeasonPriors[diseaseID]; ok {
		s, _ := randutil.PickOne(r, prior)
		return s
	}
	return ""
}
