package comparison

import "sort"

// SectionSlot is one proposal's entry in an aligned row. Section is nil when
// the proposal has no section with the row's title.
type SectionSlot struct {
	ProposalID string   `json:"proposal_id"`
	Section    *Section `json:"section"`
}

// AlignedSection is a row of same-titled sections across proposals.
type AlignedSection struct {
	Title     string        `json:"title"`
	Proposals []SectionSlot `json:"proposals"`
}

// AlignSections lines up sections by exact title so proposals can be read
// side by side.
//
// Rows are ordered by the smallest Order any proposal gives the title. Titles
// sharing a minimum keep first-seen order: proposals are scanned in input
// order and sections in slice order. Within a row, slots follow the input
// proposal order. Identical titles are always the same row, even when the
// sections are unrelated; if one proposal repeats a title, its first section
// wins.
func AlignSections(proposals []ProposalDetail) []AlignedSection {
	var titles []string
	minOrder := make(map[string]int)
	for _, p := range proposals {
		for _, s := range p.Sections {
			cur, ok := minOrder[s.Title]
			if !ok {
				titles = append(titles, s.Title)
				minOrder[s.Title] = s.Order
				continue
			}
			if s.Order < cur {
				minOrder[s.Title] = s.Order
			}
		}
	}

	sort.SliceStable(titles, func(i, j int) bool {
		return minOrder[titles[i]] < minOrder[titles[j]]
	})

	aligned := make([]AlignedSection, 0, len(titles))
	for _, title := range titles {
		row := AlignedSection{Title: title, Proposals: make([]SectionSlot, 0, len(proposals))}
		for _, p := range proposals {
			row.Proposals = append(row.Proposals, SectionSlot{
				ProposalID: p.ID,
				Section:    findSection(p.Sections, title),
			})
		}
		aligned = append(aligned, row)
	}
	return aligned
}

func findSection(sections []Section, title string) *Section {
	for i := range sections {
		if sections[i].Title == title {
			s := sections[i]
			return &s
		}
	}
	return nil
}
