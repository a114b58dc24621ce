package http

import (
	"opalclean-api/res/pricing"
	"opalclean-api/res/wizard"
)

// sectionView is the render-time shape of one accordion section
type sectionView struct {
	Index    int  `json:"index"`
	Visible  bool `json:"visible"`
	Complete bool `json:"complete"`
	Open     bool `json:"open"`
}

// wizardView is the response body for every wizard endpoint: the state, the
// freshly recomputed price summary, and the section/suggestion flags the
// frontend renders from. The breakdown is always re-derived from scratch.
type wizardView struct {
	SessionID string              `json:"sessionId"`
	State     wizard.State        `json:"state"`
	Breakdown pricing.Breakdown   `json:"breakdown"`
	Combo     pricing.ComboStatus `json:"combo"`
	Sections  []sectionView       `json:"sections"`
}

func (s *server) buildWizardView(sessionID string, state *wizard.State) wizardView {
	sections := make([]sectionView, 0, wizard.SectionCount)
	for section := 0; section < wizard.SectionCount; section++ {
		sections = append(sections, sectionView{
			Index:    section,
			Visible:  wizard.SectionVisible(state, section, s.Catalog),
			Complete: wizard.SectionComplete(state, section, s.Catalog),
			Open:     state.OpenSection == section,
		})
	}

	return wizardView{
		SessionID: sessionID,
		State:     *state,
		Breakdown: pricing.ComputeBreakdown(state, s.Catalog),
		Combo:     pricing.CupboardComboStatus(state.Extras),
		Sections:  sections,
	}
}
