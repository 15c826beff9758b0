package hermes

const (
	SubjectStats = "tender.stats"

	StreamName   = "TENDER_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

// Template lifecycle subjects
func SubjectTemplateCreated(templateID string) string { return "tender.template." + templateID + ".created" }

// Score lifecycle subjects
func SubjectScoreRecorded(proposalID string) string { return "tender.proposal." + proposalID + ".score.recorded" }
func SubjectScoreRevised(proposalID string) string  { return "tender.proposal." + proposalID + ".score.revised" }

func SubjectComparisonCompleted(comparisonID string) string {
	return "tender.comparison." + comparisonID + ".completed"
}
