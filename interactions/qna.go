// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"github.com/slidepulse/slidepulse/models"
)

// ensureQnaSession is the sole integration point between the slide model and
// the Q&A session store: it derives allowMultiple from the slide settings
// (default false, tolerating a missing settings section) and initializes the
// session. Non-qna slides are ignored.
func (r *Registry) ensureQnaSession(slide *models.Slide) {
	if slide == nil || slide.Type != models.TypeQna {
		return
	}
	allowMultiple := false
	if slide.Settings.Qna != nil {
		allowMultiple = slide.Settings.Qna.AllowMultiple
	}
	// The slide id came from storage, so the only failure mode is an empty
	// id on a malformed slide; nothing to do with it here.
	_ = r.qna.InitializeSession(slide.ID, allowMultiple)
}

func (r *Registry) buildQnaResults(slide *models.Slide) map[string]any {
	r.ensureQnaSession(slide)
	return map[string]any{"qnaState": r.qna.GetState(slide.ID)}
}
