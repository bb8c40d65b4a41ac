package casegen

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

func syn(id, diseaseID, name string, items []dataset.SymptomItem) dataset.Syndrome {
	var texts []string
	for _, it := range items {
		texts = append(texts, it.Text)
	}
	return dataset.Syndrome{
		ID:        id,
		DiseaseID: diseaseID,
		Name:      name,
		Symptoms: dataset.SymptomBundle{
			FullText: strings.Join(texts, "，"),
			Items:    items,
		},
		Pathogenesis:       "病机" + id,
		TreatmentMethod:    "治法" + id,
		Prescription:       dataset.Prescription{Primary: "方剂" + id},
		KeySymptomAnalysis: []string{"辨析" + id},
	}
}

func coldItems() []dataset.SymptomItem {
	return []dataset.SymptomItem{
		{Text: "恶寒重", IsKey: true},
		{Text: "发热轻", IsKey: true},
		{Text: "头痛", IsKey: false},
		{Text: "舌苔薄白", IsKey: true},
		{Text: "脉浮紧", IsKey: true},
	}
}

func testDataset() *dataset.Dataset {
	diseases := []dataset.Disease{
		{ID: "D001", Name: "感冒", Category: dataset.CategoryInternal,
			KeySymptoms: "鼻塞流涕，喷嚏，恶寒发热，头身疼痛", KeyPulse: "脉浮",
			Syndromes: []string{"D001_S01"}},
		{ID: "D009", Name: "妊娠恶阻", Category: dataset.CategoryGynecology,
			KeySymptoms: "妊娠早期恶心呕吐", KeyPulse: "脉滑",
			Syndromes: []string{"D009_S01"}},
		{ID: "D013", Name: "小儿泄泻", Category: dataset.CategoryPediatrics,
			KeySymptoms: "大便次数增多", KeyPulse: "脉濡",
			Syndromes: []string{"D013_S01"}},
		{ID: "D017", Name: "精癃", Category: dataset.CategoryOther,
			KeySymptoms: "小便频数，排尿困难", KeyPulse: "脉沉细",
			Syndromes: []string{"D017_S01"}},
	}
	syndromes := []dataset.Syndrome{
		syn("D001_S01", "D001", "风寒束表证", coldItems()),
		syn("D009_S01", "D009", "脾胃虚弱证", []dataset.SymptomItem{
			{Text: "呕吐清涎", IsKey: true},
			{Text: "舌淡", IsKey: true},
			{Text: "脉缓滑无力", IsKey: true},
		}),
		syn("D013_S01", "D013", "湿热泻", []dataset.SymptomItem{
			{Text: "大便水样", IsKey: true},
			{Text: "舌红", IsKey: true},
			{Text: "脉滑数", IsKey: true},
		}),
		syn("D017_S01", "D017", "肾阳不足证", []dataset.SymptomItem{
			{Text: "夜尿频多", IsKey: true},
			{Text: "舌淡胖", IsKey: true},
			{Text: "脉沉细无力", IsKey: true},
		}),
	}
	return dataset.New(diseases, syndromes)
}

func TestGenerateNarrativeStructure(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	c, err := g.GenerateByID("D001_S01")
	if err != nil {
		t.Fatalf("GenerateByID: %v", err)
	}

	n := c.Narrative
	for _, part := range []string{"患者", "主诉：", "现症见：", "舌象：", "脉象："} {
		if !strings.Contains(n, part) {
			t.Errorf("narrative lacks %q: %s", part, n)
		}
	}
	// Fixed assembly order.
	order := []string{"主诉：", "现症见：", "舌象：", "脉象："}
	last := -1
	for _, part := range order {
		idx := strings.Index(n, part)
		if idx < last {
			t.Errorf("narrative section %q out of order: %s", part, n)
		}
		last = idx
	}
	// Tongue and pulse findings must not leak into the main symptoms.
	mainPart := n[strings.Index(n, "现症见："):strings.Index(n, "舌象：")]
	if strings.Contains(mainPart, "舌苔薄白") || strings.Contains(mainPart, "脉浮紧") {
		t.Errorf("findings leaked into main symptoms: %s", mainPart)
	}
}

func TestGenerateStandardAnswer(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	c, err := g.GenerateByID("D001_S01")
	if err != nil {
		t.Fatalf("GenerateByID: %v", err)
	}

	a := c.Answer
	if a.Diagnosis != "感冒·风寒束表证" {
		t.Errorf("Diagnosis = %q", a.Diagnosis)
	}
	if a.Pathogenesis != "病机D001_S01" || a.TreatmentMethod != "治法D001_S01" ||
		a.Prescription != "方剂D001_S01" {
		t.Errorf("answer incomplete: %+v", a)
	}
	if a.SymptomText == "" || len(a.KeySymptomAnalysis) == 0 {
		t.Errorf("answer missing context: %+v", a)
	}
}

func TestGenerateChiefComplaintCondensed(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	c, err := g.GenerateByID("D001_S01")
	if err != nil {
		t.Fatalf("GenerateByID: %v", err)
	}
	if strings.Contains(c.Narrative, "鼻塞流涕，喷嚏") {
		t.Errorf("chief complaint kept separator punctuation: %s", c.Narrative)
	}
	if !strings.Contains(c.Narrative, "鼻塞流涕喷嚏") {
		t.Errorf("chief complaint missing condensed key symptoms: %s", c.Narrative)
	}
}

func TestPediatricDemographics(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	agePattern := regexp.MustCompile(`患儿，(男|女)，(\d+个月|\d+岁)`)

	for i := 0; i < 100; i++ {
		c, err := g.GenerateByID("D013_S01")
		if err != nil {
			t.Fatalf("GenerateByID: %v", err)
		}
		if !agePattern.MatchString(c.Narrative) {
			t.Fatalf("iteration %d: pediatric identity line malformed: %s", i, c.Narrative)
		}
	}
}

func TestFemaleOnlyDiseaseWithContext(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	weekPattern := regexp.MustCompile(`妊娠(\d+)周`)

	for i := 0; i < 100; i++ {
		c, err := g.GenerateByID("D009_S01")
		if err != nil {
			t.Fatalf("GenerateByID: %v", err)
		}
		if !strings.Contains(c.Narrative, "患者，女，") {
			t.Fatalf("iteration %d: gynecological case not female: %s", i, c.Narrative)
		}
		if !weekPattern.MatchString(c.Narrative) {
			t.Fatalf("iteration %d: missing gestational qualifier: %s", i, c.Narrative)
		}
	}
}

func TestMaleOnlyDisease(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	agePattern := regexp.MustCompile(`患者，男，(\d+)岁`)

	for i := 0; i < 100; i++ {
		c, err := g.GenerateByID("D017_S01")
		if err != nil {
			t.Fatalf("GenerateByID: %v", err)
		}
		m := agePattern.FindStringSubmatch(c.Narrative)
		if m == nil {
			t.Fatalf("iteration %d: prostate case not male: %s", i, c.Narrative)
		}
	}
}

func TestSeasonInferenceChain(t *testing.T) {
	r := randutil.NewRandom()

	for i := 0; i < 100; i++ {
		if s := inferSeason(r, "D001", "暑湿伤表证"); s != "夏季" {
			t.Fatalf("summer-damp season = %q", s)
		}
		if s := inferSeason(r, "D001", "风寒束表证"); s != "冬季" && s != "初春" && s != "深秋" {
			t.Fatalf("wind-cold season = %q", s)
		}
		if s := inferSeason(r, "D001", "风热犯表证"); s != "春季" && s != "初夏" {
			t.Fatalf("wind-heat season = %q", s)
		}
		if s := inferSeason(r, "D015", "热毒壅盛证"); s != "春季" {
			t.Fatalf("mumps prior season = %q", s)
		}
		if s := inferSeason(r, "D004", "脾胃虚寒证"); s != "" {
			t.Fatalf("unmatched season = %q, want empty", s)
		}
	}

	// Syndrome markers beat disease priors.
	if s := inferSeason(r, "D015", "暑湿证"); s != "夏季" {
		t.Errorf("marker did not take precedence: %q", s)
	}
}

func TestNoSeasonLineWhenUnmatched(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	c, err := g.GenerateByID("D017_S01")
	if err != nil {
		t.Fatalf("GenerateByID: %v", err)
	}
	if strings.Contains(c.Narrative, "发病于") {
		t.Errorf("unexpected season sentence: %s", c.Narrative)
	}
}

func TestDurationPhraseBuckets(t *testing.T) {
	r := randutil.NewRandom()
	flare := regexp.MustCompile(`，加重`)

	for i := 0; i < 50; i++ {
		if p := durationPhrase(r, "D004"); !flare.MatchString(p) {
			t.Fatalf("chronic-with-flare phrase = %q", p)
		}
		if p := durationPhrase(r, "D001"); flare.MatchString(p) {
			t.Fatalf("acute phrase = %q", p)
		}
	}
}

func TestGenerateByDisease(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	cases, err := g.GenerateByDisease("D001")
	if err != nil {
		t.Fatalf("GenerateByDisease: %v", err)
	}
	if len(cases) != 1 || cases[0].SyndromeID != "D001_S01" {
		t.Errorf("unexpected cases: %+v", cases)
	}

	_, err = g.GenerateByDisease("D999")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGenerateRandomDiversifiesAcrossDiseases(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())

	for i := 0; i < 50; i++ {
		cases, err := g.GenerateRandom(4)
		if err != nil {
			t.Fatalf("GenerateRandom: %v", err)
		}
		if len(cases) != 4 {
			t.Fatalf("got %d cases, want 4", len(cases))
		}
		seen := map[string]bool{}
		for _, c := range cases {
			if seen[c.DiseaseID] {
				t.Fatalf("iteration %d repeated disease %s with spare capacity", i, c.DiseaseID)
			}
			seen[c.DiseaseID] = true
		}
	}
}

func TestGenerateRandomPadsBeyondDiseases(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	cases, err := g.GenerateRandom(7)
	if err != nil {
		t.Fatalf("GenerateRandom: %v", err)
	}
	if len(cases) != 7 {
		t.Errorf("got %d cases, want 7", len(cases))
	}
}

func TestGenerateAll(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	cases, err := g.GenerateAll()
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if len(cases) != 4 {
		t.Errorf("got %d cases, want one per syndrome", len(cases))
	}
}

func TestGenerateUnknownSyndrome(t *testing.T) {
	g := NewGenerator(testDataset(), randutil.NewRandom())
	_, err := g.GenerateByID("D999_S99")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
