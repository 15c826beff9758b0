package comparison

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func titles(rows []AlignedSection) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func TestAlignSections(t *testing.T) {
	a := ProposalDetail{ID: "A", Sections: []Section{
		{Title: "Intro", Order: 0, Content: "hello"},
		{Title: "Budget", Order: 1, Content: "a budget"},
	}}
	b := ProposalDetail{ID: "B", Sections: []Section{
		{Title: "Budget", Order: 0, Content: "b budget"},
		{Title: "Scope", Order: 1, Content: "scope"},
	}}

	rows := AlignSections([]ProposalDetail{a, b})
	require.Len(t, rows, 3)
	// Intro and Budget share min order 0; Intro is seen first.
	assert.Equal(t, []string{"Intro", "Budget", "Scope"}, titles(rows))

	intro := rows[0]
	require.Len(t, intro.Proposals, 2)
	assert.Equal(t, "A", intro.Proposals[0].ProposalID)
	require.NotNil(t, intro.Proposals[0].Section)
	assert.Equal(t, "hello", intro.Proposals[0].Section.Content)
	assert.Equal(t, "B", intro.Proposals[1].ProposalID)
	assert.Nil(t, intro.Proposals[1].Section)

	budget := rows[1]
	assert.Equal(t, "a budget", budget.Proposals[0].Section.Content)
	assert.Equal(t, "b budget", budget.Proposals[1].Section.Content)

	scope := rows[2]
	assert.Nil(t, scope.Proposals[0].Section)
	assert.NotNil(t, scope.Proposals[1].Section)
}

func TestAlignSectionsTieBreakFollowsInputOrder(t *testing.T) {
	a := ProposalDetail{ID: "A", Sections: []Section{{Title: "Scope", Order: 0}}}
	b := ProposalDetail{ID: "B", Sections: []Section{{Title: "Intro", Order: 0}}}

	assert.Equal(t, []string{"Scope", "Intro"}, titles(AlignSections([]ProposalDetail{a, b})))
	assert.Equal(t, []string{"Intro", "Scope"}, titles(AlignSections([]ProposalDetail{b, a})))
}

func TestAlignSectionsRepeatedTitleTakesFirst(t *testing.T) {
	a := ProposalDetail{ID: "A", Sections: []Section{
		{Title: "Notes", Order: 3, Content: "first"},
		{Title: "Notes", Order: 1, Content: "second"},
	}}
	rows := AlignSections([]ProposalDetail{a})
	require.Len(t, rows, 1)
	assert.Equal(t, "first", rows[0].Proposals[0].Section.Content)
}

func TestAlignSectionsDoesNotAliasInput(t *testing.T) {
	a := ProposalDetail{ID: "A", Sections: []Section{{Title: "Intro", Content: "orig"}}}
	rows := AlignSections([]ProposalDetail{a})
	rows[0].Proposals[0].Section.Content = "changed"
	assert.Equal(t, "orig", a.Sections[0].Content)
}

func TestAlignSectionsEmpty(t *testing.T) {
	assert.Empty(t, AlignSections(nil))
	assert.Empty(t, AlignSections([]ProposalDetail{{ID: "A"}, {ID: "B"}}))
}

func TestDetectDifferences(t *testing.T) {
	t.Run("fewer than two", func(t *testing.T) {
		assert.Empty(t, DetectDifferences(nil))
		assert.Empty(t, DetectDifferences([]Candidate{{ProposalID: "A"}}))
	})

	t.Run("summaries include compliance", func(t *testing.T) {
		diffs := DetectDifferences(FromSummaries([]ProposalSummary{
			{ID: "A", BudgetEstimate: float64Ptr(1000), TimelineEstimate: float64Ptr(30), TeamSize: 3, ComplianceScore: 80},
			{ID: "B", BudgetEstimate: float64Ptr(1000), TimelineEstimate: float64Ptr(45), TeamSize: 3, ComplianceScore: 80},
		}))
		require.Len(t, diffs, 4)

		assert.Equal(t, FieldBudget, diffs[0].Field)
		assert.Equal(t, "Budget", diffs[0].Label)
		assert.False(t, diffs[0].HasDifference)

		assert.Equal(t, FieldTimeline, diffs[1].Field)
		assert.True(t, diffs[1].HasDifference)

		assert.Equal(t, FieldTeamSize, diffs[2].Field)
		assert.False(t, diffs[2].HasDifference)

		assert.Equal(t, FieldCompliance, diffs[3].Field)
		assert.Equal(t, "Compliance Score", diffs[3].Label)
		assert.False(t, diffs[3].HasDifference)
		require.Len(t, diffs[3].Values, 2)
		assert.Equal(t, "B", diffs[3].Values[1].ProposalID)
		assert.Equal(t, 80.0, *diffs[3].Values[1].Value)
	})

	t.Run("details derive team size", func(t *testing.T) {
		diffs := DetectDifferences(FromDetails([]ProposalDetail{
			{ID: "A", Members: []Member{{UserID: "u1"}, {UserID: "u2"}}},
			{ID: "B", Members: []Member{{UserID: "u3"}}},
		}))
		// No checklist and no explicit score: compliance is omitted.
		require.Len(t, diffs, 3)
		team := diffs[2]
		assert.Equal(t, 3.0, *team.Values[0].Value)
		assert.Equal(t, 2.0, *team.Values[1].Value)
		assert.True(t, team.HasDifference)
	})

	t.Run("compliance needs every proposal", func(t *testing.T) {
		diffs := DetectDifferences([]Candidate{
			{ProposalID: "A", ComplianceScore: intPtr(50)},
			{ProposalID: "B"},
		})
		assert.Len(t, diffs, 3)
	})

	t.Run("missing values", func(t *testing.T) {
		diffs := DetectDifferences([]Candidate{
			{ProposalID: "A"},
			{ProposalID: "B"},
			{ProposalID: "C", BudgetEstimate: float64Ptr(10)},
		})
		assert.True(t, diffs[0].HasDifference, "nil vs value differs")
		assert.False(t, diffs[1].HasDifference, "all nil is equal")
		assert.Nil(t, diffs[0].Values[0].Value)
	})
}

func TestComplianceScore(t *testing.T) {
	assert.Equal(t, 0, ComplianceScore(0, 0))
	assert.Equal(t, 67, ComplianceScore(2, 3))
	assert.Equal(t, 100, ComplianceScore(4, 4))
	assert.Equal(t, 13, ComplianceScore(1, 8))

	d := ProposalDetail{ChecklistTotal: 3, ChecklistCompleted: 1}
	require.NotNil(t, d.Compliance())
	assert.Equal(t, 33, *d.Compliance())

	d.ComplianceScore = intPtr(90)
	assert.Equal(t, 90, *d.Compliance())
	assert.Equal(t, 90, d.Summary().ComplianceScore)
}

func TestDefaultMetricWeights(t *testing.T) {
	w := DefaultMetricWeights()
	require.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), 0.001)

	assert.Error(t, MetricWeights{Budget: 0.5, Timeline: 0.5, TeamSize: 0.5}.Validate())
	assert.Error(t, MetricWeights{Budget: 1.2, Timeline: -0.2}.Validate())

	assert.Error(t, MetricWeights{Budget: math.NaN()}.Validate())
	assert.Error(t, MetricWeights{Budget: math.NaN(), Timeline: 0.3, TeamSize: 0.2, Compliance: 0.2}.Validate())
	assert.Error(t, MetricWeights{Budget: math.Inf(1), Timeline: math.Inf(-1), TeamSize: 0.5, Compliance: 0.5}.Validate())
}

func TestCalculateMetrics(t *testing.T) {
	proposals := []ProposalSummary{
		{ID: "A", BudgetEstimate: float64Ptr(100), TimelineEstimate: float64Ptr(30), TeamSize: 3, ComplianceScore: 80},
		{ID: "B", BudgetEstimate: float64Ptr(200), TeamSize: 2, ComplianceScore: 90},
		{ID: "C", TimelineEstimate: float64Ptr(10), TeamSize: 2, ComplianceScore: 80},
	}

	metrics := CalculateMetrics(proposals, nil)
	require.Len(t, metrics, 3)

	a, b, c := metrics[0], metrics[1], metrics[2]
	assert.Equal(t, "A", a.ProposalID)
	assert.Equal(t, "B", b.ProposalID)
	assert.Equal(t, "C", c.ProposalID)

	// Missing budget and timeline rank last.
	assert.Equal(t, []int{1, 2, 3}, []int{a.BudgetRank, b.BudgetRank, c.BudgetRank})
	assert.Equal(t, []int{2, 3, 1}, []int{a.TimelineRank, b.TimelineRank, c.TimelineRank})
	// B and C tie on team size; B comes first in input.
	assert.Equal(t, []int{3, 1, 2}, []int{a.TeamSizeRank, b.TeamSizeRank, c.TeamSizeRank})
	// Higher compliance ranks first; A and C tie.
	assert.Equal(t, []int{2, 1, 3}, []int{a.ComplianceRank, b.ComplianceRank, c.ComplianceRank})

	assert.InDelta(t, 0.1+0.2+0.2+2.0/3*0.2, a.OverallScore, 1e-9)
	assert.InDelta(t, 0.2+0.3+1.0/3*0.2+0.2, b.OverallScore, 1e-9)
	assert.InDelta(t, 0.3+0.1+2.0/3*0.2+1.0/3*0.2, c.OverallScore, 1e-9)
}

func TestCalculateMetricsCustomWeights(t *testing.T) {
	proposals := []ProposalSummary{
		{ID: "A", BudgetEstimate: float64Ptr(500), TeamSize: 1},
		{ID: "B", BudgetEstimate: float64Ptr(100), TeamSize: 1},
	}
	metrics := CalculateMetrics(proposals, &MetricWeights{Budget: 1})
	assert.InDelta(t, 1.0, metrics[0].OverallScore, 1e-9)
	assert.InDelta(t, 0.5, metrics[1].OverallScore, 1e-9)
}

func TestCalculateMetricsEmpty(t *testing.T) {
	assert.Empty(t, CalculateMetrics(nil, nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]ProposalSummary{
		{ID: "A", BudgetEstimate: float64Ptr(100), TeamSize: 2, ComplianceScore: 50},
		{ID: "B", TeamSize: 4, ComplianceScore: 100},
		{ID: "C", BudgetEstimate: float64Ptr(300), TeamSize: 3, ComplianceScore: 0},
	})

	require.NotNil(t, s.BudgetRange.Min)
	assert.Equal(t, 100.0, *s.BudgetRange.Min)
	assert.Equal(t, 300.0, *s.BudgetRange.Max)
	assert.Equal(t, 200.0, *s.BudgetRange.Avg)

	assert.Equal(t, 2.0, *s.TeamSizeRange.Min)
	assert.Equal(t, 4.0, *s.TeamSizeRange.Max)
	assert.Equal(t, 3.0, *s.TeamSizeRange.Avg)

	assert.Equal(t, 0.0, *s.ComplianceRange.Min)
	assert.Equal(t, 100.0, *s.ComplianceRange.Max)
	assert.Equal(t, 50.0, *s.ComplianceRange.Avg)
}

func TestSummarizeNoBudgets(t *testing.T) {
	s := Summarize([]ProposalSummary{{ID: "A", TeamSize: 1}, {ID: "B", TeamSize: 2}})
	assert.Nil(t, s.BudgetRange.Min)
	assert.Nil(t, s.BudgetRange.Max)
	assert.Nil(t, s.BudgetRange.Avg)
	assert.NotNil(t, s.TeamSizeRange.Avg)
	assert.NotNil(t, s.ComplianceRange.Avg)
}

func TestFrontier(t *testing.T) {
	proposals := []ProposalSummary{
		{ID: "cheap", BudgetEstimate: float64Ptr(100), TimelineEstimate: float64Ptr(60), ComplianceScore: 70},
		{ID: "fast", BudgetEstimate: float64Ptr(300), TimelineEstimate: float64Ptr(20), ComplianceScore: 70},
		{ID: "worse", BudgetEstimate: float64Ptr(300), TimelineEstimate: float64Ptr(60), ComplianceScore: 70},
		{ID: "unpriced", TimelineEstimate: float64Ptr(20), ComplianceScore: 95},
	}
	assert.Equal(t, []string{"cheap", "fast", "unpriced"}, Frontier(proposals))
}

func TestFrontierIdentical(t *testing.T) {
	p := ProposalSummary{BudgetEstimate: float64Ptr(1), TimelineEstimate: float64Ptr(1), ComplianceScore: 1}
	a, b := p, p
	a.ID, b.ID = "a", "b"
	assert.Equal(t, []string{"a", "b"}, Frontier([]ProposalSummary{a, b}))
	assert.Empty(t, Frontier(nil))
}

func TestValidateSelection(t *testing.T) {
	assert.True(t, ValidateSelection([]string{"a", "b"}).Valid)
	assert.True(t, ValidateSelection([]string{"a", "b", "c", "d"}).Valid)
	assert.Equal(t, validation.CodeTooFew, ValidateSelection([]string{"a"}).Code)
	assert.Equal(t, validation.CodeTooMany, ValidateSelection([]string{"a", "b", "c", "d", "e"}).Code)
	assert.Equal(t, validation.CodeDuplicateSelection, ValidateSelection([]string{"a", "a"}).Code)
}

func TestCompare(t *testing.T) {
	details := []ProposalDetail{
		{
			ID: "A", BudgetEstimate: float64Ptr(1000), TimelineEstimate: float64Ptr(30),
			Members: []Member{{UserID: "u1"}}, ChecklistTotal: 4, ChecklistCompleted: 3,
			Sections: []Section{{Title: "Intro", Order: 0}},
		},
		{
			ID: "B", BudgetEstimate: float64Ptr(800), TimelineEstimate: float64Ptr(45),
			ChecklistTotal: 4, ChecklistCompleted: 4,
			Sections: []Section{{Title: "Intro", Order: 0}, {Title: "Risks", Order: 1}},
		},
	}

	report, err := Compare(details, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, report.ProposalIDs)
	assert.Equal(t, []string{"Intro", "Risks"}, titles(report.Sections))
	require.Len(t, report.Differences, 4)
	require.Len(t, report.Metrics, 2)
	assert.Equal(t, 2, report.Metrics[0].BudgetRank)
	assert.Equal(t, 2, report.Metrics[0].ComplianceRank)
	assert.Equal(t, 75.0, *report.Summary.ComplianceRange.Min)
	assert.Equal(t, []string{"A", "B"}, report.Frontier)
}

func TestCompareRejectsBadSelection(t *testing.T) {
	_, err := Compare([]ProposalDetail{{ID: "A"}}, nil)
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validation.CodeTooFew, verr.Code)

	_, err = Compare([]ProposalDetail{{ID: "A"}, {ID: "A"}}, nil)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validation.CodeDuplicateSelection, verr.Code)
}
