package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// TestName identifies the test that produced a Result. It is fixed per result
// type and selects the report layout, if any.
type TestName string

const (
	TestIndependentT TestName = "indt"         // independent samples t-test battery
	TestMannWhitneyU TestName = "mannwhitneyu" // Mann-Whitney U test
	TestCorrelation  TestName = "correlation"  // Pearson/Spearman/Kendall matrix
	TestNormality    TestName = "normality"    // KS/Shapiro-Wilk/D'Agostino battery
)

// Result is the output of one test call. Implementations are the four variants
// below; the set is closed.
type Result interface {
	TestName() TestName
	isResult()
}

// Float is a statistic that may be undefined (NaN or infinite), which encodes as
// JSON null.
type Float float64

// IsDefined reports whether f is a finite number
func (f Float) IsDefined() bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.IsDefined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid statistic %s: %w", b, err)
	}
	*f = Float(v)
	return nil
}

// SampleStats are the descriptive statistics of one group
type SampleStats struct {
	N      int   `json:"N" yaml:"N"`
	Mean   Float `json:"Mean" yaml:"Mean"`
	StdDev Float `json:"StdDev" yaml:"StdDev"`
	StdErr Float `json:"StdErr" yaml:"StdErr"`
}

// GroupStats pairs a group label with its statistics
type GroupStats struct {
	Group string
	Stats SampleStats
}

// GroupStatsList keeps group 1 before group 2. It encodes as a list of
// single-entry objects keyed by group label: [{"A": {...}}, {"B": {...}}].
type GroupStatsList []GroupStats

func (l GroupStatsList) entries() []map[string]SampleStats {
	out := make([]map[string]SampleStats, len(l))
	for i, g := range l {
		out[i] = map[string]SampleStats{g.Group: g.Stats}
	}
	return out
}

func (l GroupStatsList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.entries())
}

func (l GroupStatsList) MarshalYAML() (interface{}, error) {
	return l.entries(), nil
}

func (l *GroupStatsList) UnmarshalJSON(b []byte) error {
	var raw []map[string]SampleStats
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(GroupStatsList, 0, len(raw))
	for i, entry := range raw {
		if len(entry) != 1 {
			return fmt.Errorf("groupStats entry %d has %d keys, expected 1", i, len(entry))
		}
		for group, s := range entry {
			out = append(out, GroupStats{Group: group, Stats: s})
		}
	}
	*l = out
	return nil
}

// Get returns the statistics of the named group
func (l GroupStatsList) Get(group string) (SampleStats, bool) {
	for _, g := range l {
		if g.Group == group {
			return g.Stats, true
		}
	}
	return SampleStats{}, false
}

// TTest is the pooled-variance t-test block
type TTest struct {
	T            Float `json:"t" yaml:"t"`
	DF           int   `json:"df" yaml:"df"`
	SigTwoTailed Float `json:"sigTwoTailed" yaml:"sigTwoTailed"`
}

// LeveneTest is the mean-centered equality-of-variances block
type LeveneTest struct {
	F            Float `json:"F" yaml:"F"`
	SigTwoTailed Float `json:"sigTwoTailed" yaml:"sigTwoTailed"`
}

// WelchTest is the unequal-variance t-test block. Its df is not reported;
// consumers display TTest.DF in its place.
type WelchTest struct {
	T            Float `json:"t" yaml:"t"`
	SigTwoTailed Float `json:"sigTwoTailed" yaml:"sigTwoTailed"`
}

// MannWhitneyUTest carries U for the first group. DF is the pooled n1+n2-2,
// kept for schema uniformity with TTest; it has no meaning for U.
type MannWhitneyUTest struct {
	U            Float `json:"u" yaml:"u"`
	DF           int   `json:"df" yaml:"df"`
	SigTwoTailed Float `json:"sigTwoTailed" yaml:"sigTwoTailed"`
}

// IndependentTTest bundles the t-test, Levene and Welch results for two groups.
// Every statistic is rounded to 3 decimals.
type IndependentTTest struct {
	IndVariable string         `json:"Ind_Variable" yaml:"Ind_Variable"`
	DepVariable string         `json:"Dep_Variable" yaml:"Dep_Variable"`
	GroupStats  GroupStatsList `json:"groupStats" yaml:"groupStats"`
	TTest       TTest          `json:"TTest" yaml:"TTest"`
	LeveneTest  LeveneTest     `json:"LeveneTest" yaml:"LeveneTest"`
	WelchTest   WelchTest      `json:"WelchTest" yaml:"WelchTest"`
}

func (IndependentTTest) TestName() TestName { return TestIndependentT }
func (IndependentTTest) isResult()          {}

func (r IndependentTTest) MarshalJSON() ([]byte, error) {
	type body IndependentTTest
	return json.Marshal(struct {
		TestName TestName `json:"TestName"`
		body
	}{r.TestName(), body(r)})
}

func (r IndependentTTest) MarshalYAML() (interface{}, error) {
	type body IndependentTTest
	return struct {
		TestName TestName `yaml:"TestName"`
		body     `yaml:",inline"`
	}{r.TestName(), body(r)}, nil
}

// MannWhitneyU is the non-parametric two-group comparison. Values are unrounded.
type MannWhitneyU struct {
	IndVariable      string           `json:"Ind_Variable" yaml:"Ind_Variable"`
	DepVariable      string           `json:"Dep_Variable" yaml:"Dep_Variable"`
	GroupStats       GroupStatsList   `json:"groupStats" yaml:"groupStats"`
	MannWhitneyUTest MannWhitneyUTest `json:"MannWhitneyUTest" yaml:"MannWhitneyUTest"`
}

func (MannWhitneyU) TestName() TestName { return TestMannWhitneyU }
func (MannWhitneyU) isResult()          {}

func (r MannWhitneyU) MarshalJSON() ([]byte, error) {
	type body MannWhitneyU
	return json.Marshal(struct {
		TestName TestName `json:"TestName"`
		body
	}{r.TestName(), body(r)})
}

func (r MannWhitneyU) MarshalYAML() (interface{}, error) {
	type body MannWhitneyU
	return struct {
		TestName TestName `yaml:"TestName"`
		body     `yaml:",inline"`
	}{r.TestName(), body(r)}, nil
}

// Coefficient is one correlation and its significance
type Coefficient struct {
	Correlation Float `json:"correlation" yaml:"correlation"`
	P           Float `json:"p" yaml:"p"`
}

// Correlation holds one entry per ordered column pair, keyed "<col1>_<col2>",
// self-pairs included.
type Correlation struct {
	Pearsons  map[string]Coefficient `json:"Pearsons" yaml:"Pearsons"`
	Spearmans map[string]Coefficient `json:"Spearmans" yaml:"Spearmans"`
	Kendalls  map[string]Coefficient `json:"Kendalls" yaml:"Kendalls"`
}

func (Correlation) TestName() TestName { return TestCorrelation }
func (Correlation) isResult()          {}

func (r Correlation) MarshalJSON() ([]byte, error) {
	type body Correlation
	return json.Marshal(struct {
		TestName TestName `json:"TestName"`
		body
	}{r.TestName(), body(r)})
}

func (r Correlation) MarshalYAML() (interface{}, error) {
	type body Correlation
	return struct {
		TestName TestName `yaml:"TestName"`
		body     `yaml:",inline"`
	}{r.TestName(), body(r)}, nil
}

// NormalityStat is one normality statistic and its significance
type NormalityStat struct {
	Normality Float `json:"normality" yaml:"normality"`
	P         Float `json:"p" yaml:"p"`
}

// Normality holds one entry per column for each test family
type Normality struct {
	KolmogorovSmirnov map[string]NormalityStat `json:"KolmogorovSmirnov" yaml:"KolmogorovSmirnov"`
	ShapiroWilk       map[string]NormalityStat `json:"ShapiroWilk" yaml:"ShapiroWilk"`
	DAgostino         map[string]NormalityStat `json:"DAgostino" yaml:"DAgostino"`
}

func (Normality) TestName() TestName { return TestNormality }
func (Normality) isResult()          {}

func (r Normality) MarshalJSON() ([]byte, error) {
	type body Normality
	return json.Marshal(struct {
		TestName TestName `json:"TestName"`
		body
	}{r.TestName(), body(r)})
}

func (r Normality) MarshalYAML() (interface{}, error) {
	type body Normality
	return struct {
		TestName TestName `yaml:"TestName"`
		body     `yaml:",inline"`
	}{r.TestName(), body(r)}, nil
}
