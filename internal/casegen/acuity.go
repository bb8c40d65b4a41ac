package casegen

import "github.com/qihuang/bianzheng/internal/randutil"

// acuity buckets select the duration phrasing of the chief complaint.
type acuity int

const (
	acuityAcute acuity = iota
	acuitySubacute
	acuityChronic
	acuityChronicWithFlare
)

var acuityByDisease = map[string]acuity{
	"D001": acuityAcute, // 感冒
	"D005": acuityAcute, // 泄泻
	"D006": acuityAcute, // 肠痈
	"D013": acuityAcute, // 小儿泄泻
	"D014": acuityAcute, // 麻疹
	"D015": acuityAcute, // 痄腮
	"D016": acuityAcute, // 水痘

	"D003": acuityChronicWithFlare, // 喘证
	"D004": acuityChronicWithFlare, // 胃痛

	"D008": acuityChronic, // 崩漏
	"D011": acuityChronic, // 不孕症
	"D017": acuityChronic, // 精癃
}

var (
	acutePhrases    = []string{"1天", "2天", "3天", "5天", "1周"}
	subacutePhrases = []string{"1周", "10天", "2周", "3周", "1个月"}
	chronicPhrases  = []string{"半年", "1年", "2年", "3年", "数年"}
)

// durationPhrase samples the chief-complaint duration for a disease.
// Chronic-with-flare composes a chronic span with a superimposed acute
// flare, e.g. "2年，加重3天".
func durationPhrase(r *randutil.Rand, diseaseID string) string {
	bucket, ok := acuityByDisease[diseaseID]
	if !ok {
		bucket = acuitySubacute
	}

	switch bucket {
	case acuityAcute:
		p, _ := randutil.PickOne(r, acutePhrases)
		return p
	case acuityChronic:
		p, _ := randutil.PickOne(r, chronicPhrases)
		return p
	case acuityChronicWithFlare:
		base, _ := randutil.PickOne(r, chronicPhrases)
		flare, _ := randutil.PickOne(r, acutePhrases)
		return base + "，加重" + flare
	default:
		p, _ := randutil.PickOne(r, subacutePhrases)
		return p
	}
}
