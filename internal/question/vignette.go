package question

import (
	"fmt"
	"strings"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

// Disease-name markers indicating a gynecological or obstetric context;
// such cases are always female.
var femaleMarkers = []string{"经", "带", "胎", "产", "乳", "妊", "孕", "崩", "漏"}

var durations = []string{"2天", "3天", "5天", "1周", "2周", "1个月", "3个月", "半年"}

var seasons = []string{"春季", "夏季", "秋季", "冬季"}

// vignette builds the one-paragraph clinical prefix for vignette-bearing
// archetypes: demographics, duration, season, then the sampled symptoms.
func vignette(r *randutil.Rand, d *dataset.Disease, s *dataset.Syndrome, symptomText string) string {
	gender := "男"
	if isFemaleContext(d.Name) || r.IntBetween(0, 1) == 1 {
		gender = "女"
	}

	var subject string
	var age string
	if d.Category == dataset.CategoryPediatrics {
		subject = "患儿"
		age = fmt.Sprintf("%d岁", r.IntBetween(1, 9))
	} else {
		subject = "患者"
		age = fmt.Sprintf("%d岁", r.IntBetween(22, 72))
	}

	duration, _ := randutil.PickOne(r, durations)
	season := seasonFor(r, s.Name)

	return fmt.Sprintf("%s，%s，%s。%s发病，%s前出现%s。",
		subject, gender, age, season, duration, symptomText)
}

func isFemaleContext(diseaseName string) bool {
	for _, m := range femaleMarkers {
		if strings.Contains(diseaseName, m) {
			return true
		}
	}
	return false
}

// seasonFor forces summer for summer-damp and damp-heat patterns,
// otherwise draws uniformly.
func seasonFor(r *randutil.Rand, syndromeName string) string {
	if strings.Contains(syndromeName, "暑") || strings.Contains(syndromeName, "湿热") {
		return "夏季"
	}
	season, _ := randutil.PickOne(r, seasons)
	return season
}
