package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap/pkg/logging"
	"github.com/agentstation/unitmap/pkg/units"
)

// fixedScorer always proposes the same choice with a fixed score.
type fixedScorer struct {
	index int
	score int
	calls int
}

func (f *fixedScorer) Name() string { return "fixed" }

func (f *fixedScorer) ExtractOne(_ string, choices []string) (Match, bool) {
	f.calls++
	if f.index >= len(choices) {
		return Match{}, false
	}
	return Match{Choice: choices[f.index], Index: f.index, Score: f.score}, true
}

func ccrCatalog() *units.Catalog {
	return units.New([]units.Unit{
		{Canonical: "Centre for Cancer Research", Acronym: "CCR", Type: units.TypeCentre, Aliases: []string{"Cancer Research Centre"}},
	})
}

func strp(s string) *string { return &s }

func TestResolveCancerResearchScenario(t *testing.T) {
	r := New(ccrCatalog())

	exact := r.Resolve("CCR")
	assert.Equal(t, Result{
		Canonical: "Centre for Cancer Research",
		Acronym:   strp("CCR"),
		Type:      strp(units.TypeCentre),
		Method:    MethodExact,
		Key:       "CCR",
	}, exact)
	assert.True(t, exact.OK())

	fuzzy := r.Resolve("cancer researc")
	assert.Equal(t, "Centre for Cancer Research", fuzzy.Canonical)
	assert.Equal(t, "CCR", *fuzzy.Acronym)
	assert.Equal(t, MethodSimilarity, fuzzy.Method)
	assert.Equal(t, "Cancer Research Centre", fuzzy.Key)
	assert.Equal(t, 78, fuzzy.Score)
	assert.Empty(t, fuzzy.Error)
}

func TestResolveNearMissAcronym(t *testing.T) {
	r := New(units.New([]units.Unit{
		{Canonical: "Lee Kong Chian Faculty of Engineering and Science", Acronym: "LKC FES", Type: units.TypeFaculty},
	}))

	res := r.Resolve("LKC FEC")
	assert.Equal(t, MethodSimilarity, res.Method)
	assert.Equal(t, "LKC FES", res.Key)
	assert.Equal(t, 86, res.Score)
	assert.Equal(t, "Lee Kong Chian Faculty of Engineering and Science", res.Canonical)
}

func TestResolveNonLatinBySimilarity(t *testing.T) {
	r := New(units.New([]units.Unit{{Canonical: "中文系", Type: units.TypeDepartment}}))

	res := r.Resolve("中文學系")
	assert.Equal(t, MethodSimilarity, res.Method)
	assert.Equal(t, "中文系", res.Canonical)
	assert.Equal(t, 86, res.Score)
	assert.Empty(t, res.Error)
}

func TestResolveEmptyQuery(t *testing.T) {
	r := New(ccrCatalog())
	for _, q := range []string{"", "   ", "\t\n"} {
		res := r.Resolve(q)
		assert.Equal(t, Result{Detail: DetailEmptyQuery, Method: MethodNone}, res, "query %q", q)
		assert.False(t, res.OK())
	}
}

func TestResolveExactTakesPrecedence(t *testing.T) {
	c := units.New([]units.Unit{
		{Canonical: "Department of Physics", Acronym: "DP"},
		{Canonical: "Department of Psychology", Acronym: "DPS"},
	})
	scorer := &fixedScorer{index: 2, score: 100}
	r := New(c, WithScorer(scorer))

	res := r.Resolve("  dp ")
	assert.Equal(t, MethodExact, res.Method)
	assert.Equal(t, "Department of Physics", res.Canonical)
	assert.Zero(t, scorer.calls, "similarity must not run after an exact hit")
}

func TestResolveCollisionKeepsFirstUnit(t *testing.T) {
	c := units.New([]units.Unit{
		{Canonical: "Department of Physics", Acronym: "DP"},
		{Canonical: "Department of Psychology", Acronym: "DP"},
	})
	res := New(c).Resolve("DP")
	assert.Equal(t, "Department of Physics", res.Canonical)
}

func TestResolveIsIdempotent(t *testing.T) {
	r := New(units.NewTestCatalog())
	for _, q := range []string{"CCR", "cancer researc", "LKC FEC", "fict", "Human Resource"} {
		first := r.Resolve(q)
		require.True(t, first.OK(), "query %q", q)

		second := r.Resolve(first.Canonical)
		assert.Equal(t, MethodExact, second.Method)
		assert.Equal(t, first.Canonical, second.Canonical)
		assert.Equal(t, first.Acronym, second.Acronym)
	}
}

func TestResolveSimilarityTieKeepsEarliestKey(t *testing.T) {
	c := units.New([]units.Unit{
		{Canonical: "abcx"},
		{Canonical: "abcy"},
	})
	r := New(c, WithMinSubstringLength(100))

	for i := 0; i < 5; i++ {
		res := r.Resolve("abcz")
		assert.Equal(t, MethodSimilarity, res.Method)
		assert.Equal(t, "abcx", res.Canonical)
		assert.Equal(t, 75, res.Score)
	}
}

func TestResolveThresholdIsStrict(t *testing.T) {
	c := units.New([]units.Unit{{Canonical: "Institute of Postgraduate Studies", Acronym: "IPSR"}})

	t.Run("score equal to threshold is rejected", func(t *testing.T) {
		r := New(c, WithScorer(&fixedScorer{score: 50}))
		res := r.Resolve("zzzzzz")
		assert.Equal(t, MethodNone, res.Method)
		assert.Equal(t, "zzzzzz", res.Canonical)
	})

	t.Run("score above threshold is accepted", func(t *testing.T) {
		r := New(c, WithScorer(&fixedScorer{score: 51}))
		res := r.Resolve("zzzzzz")
		assert.Equal(t, MethodSimilarity, res.Method)
		assert.Equal(t, "Institute of Postgraduate Studies", res.Canonical)
		assert.Equal(t, 51, res.Score)
	})

	t.Run("real scorer at boundary", func(t *testing.T) {
		r := New(units.New([]units.Unit{{Canonical: "abef"}}))
		res := r.Resolve("abcd")
		assert.Equal(t, MethodNone, res.Method)
		assert.Equal(t, NoConfidentMatch, res.Error)
	})

	t.Run("custom threshold", func(t *testing.T) {
		r := New(units.New([]units.Unit{{Canonical: "abef"}}), WithThreshold(49))
		res := r.Resolve("abcd")
		assert.Equal(t, MethodSimilarity, res.Method)
		assert.Equal(t, 49, r.Threshold())
	})
}

func TestResolveSubstringFloor(t *testing.T) {
	c := units.New([]units.Unit{{Canonical: "Library Services", Type: units.TypeLibrary}})
	r := New(c, WithScorer(NullScorer{}))

	res := r.Resolve("lib")
	assert.Equal(t, MethodNone, res.Method, "three characters is not enough")

	res = r.Resolve("libr")
	assert.Equal(t, MethodSubstring, res.Method)
	assert.Equal(t, "Library Services", res.Canonical)
	assert.Nil(t, res.Acronym)
	assert.Equal(t, units.TypeLibrary, *res.Type)

	res = r.Resolve("the library services desk")
	assert.Equal(t, MethodSubstring, res.Method, "key contained in query")

	r = New(c, WithScorer(NullScorer{}), WithMinSubstringLength(2))
	assert.Equal(t, MethodSubstring, r.Resolve("lib").Method)
}

func TestResolveSubstringAfterWeakSimilarity(t *testing.T) {
	c := units.New([]units.Unit{
		{Canonical: "Department of Soft Skills Competency", Acronym: "DSSC"},
	})
	r := New(c)

	res := r.Resolve("soft skills")
	assert.Equal(t, MethodSubstring, res.Method)
	assert.Equal(t, "Department of Soft Skills Competency", res.Canonical)
}

func TestResolveNoMatchPassesQueryThrough(t *testing.T) {
	r := New(units.NewTestCatalog())

	query := "  Zzyzx Qqq "
	res := r.Resolve(query)
	assert.Equal(t, Result{Canonical: query, Error: NoConfidentMatch, Method: MethodNone}, res)
	assert.False(t, res.OK())
}

func TestResolveWithoutScorer(t *testing.T) {
	r := New(ccrCatalog(), WithScorer(nil))
	assert.Equal(t, ScorerNull, r.Scorer().Name())

	res := r.Resolve("cancer researc")
	assert.Equal(t, MethodSubstring, res.Method, "degrades to substring search")
	assert.Equal(t, "Centre for Cancer Research", res.Canonical)
}

func TestResolveEmptyCatalog(t *testing.T) {
	r := New(units.New(nil))
	res := r.Resolve("CCR")
	assert.Equal(t, MethodNone, res.Method)
	assert.Equal(t, "CCR", res.Canonical)
}

func TestResolveLogsAtDebug(t *testing.T) {
	tl := logging.NewTestLogger(t)
	r := New(ccrCatalog(), WithLogger(tl.Logger))

	r.Resolve("cancer researc")
	tl.AssertContains(t, "Similarity match")
	tl.AssertContains(t, `"score":78`)
}
