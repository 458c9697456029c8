package course

// ProgressReader is the read side of the progress store used by reports.
type ProgressReader interface {
	SectionProgress(ids []string) int
	Accuracy(ids []string) int
	IsTopicComplete(topicID string) bool
	QuizScore(quizID string) (int, bool)
	StudyTime(contextID string) int
}

// QuestionSource lists the question IDs that belong to a module.
type QuestionSource interface {
	ModuleQuestionIDs(moduleID string) []string
}

// ModuleReport summarizes the learner's standing in one module.
type ModuleReport struct {
	Module       Module
	Status       Status
	Questions    int
	Progress     int // percent of the module's questions answered
	Accuracy     int // percent correct of those answered
	TopicsDone   int
	TopicsTotal  int
	BestScore    int
	HasScore     bool
	StudySeconds int
}

// Report builds one ModuleReport per module in declaration order.
func Report(p ProgressReader, qs QuestionSource) []ModuleReport {
	passed := make(map[string]bool, len(c.modules))
	for _, m := range c.modules {
		if score, ok := p.QuizScore(m.ID); ok && score >= PassingScore {
			passed[m.ID] = true
		}
	}

	reports := make([]ModuleReport, 0, len(c.modules))
	for _, m := range c.modules {
		ids := qs.ModuleQuestionIDs(m.ID)
		r := ModuleReport{
			Module:       m,
			Questions:    len(ids),
			Progress:     p.SectionProgress(ids),
			Accuracy:     p.Accuracy(ids),
			TopicsTotal:  len(m.Topics),
			StudySeconds: p.StudyTime(m.ID),
		}
		r.BestScore, r.HasScore = p.QuizScore(m.ID)
		for _, t := range m.Topics {
			if p.IsTopicComplete(t.ID) {
				r.TopicsDone++
			}
		}

		switch {
		case passed[m.ID]:
			r.Status = StatusPassed
		case !IsUnlocked(m.ID, passed):
			r.Status = StatusLocked
		case r.Progress > 0 || r.HasScore:
			r.Status = StatusStudying
		default:
			r.Status = StatusAvailable
		}
		reports = append(reports, r)
	}
	return reports
}

// Recommended returns the first unlocked, unpassed module in topological
// order, or false when every module is passed or locked.
func Recommended(reports []ModuleReport) (ModuleReport, bool) {
	byID := make(map[string]ModuleReport, len(reports))
	for _, r := range reports {
		byID[r.Module.ID] = r
	}
	for _, m := range c.topoOrder {
		r, ok := byID[m.ID]
		if ok && (r.Status == StatusAvailable || r.Status == StatusStudying) {
			return r, true
		}
	}
	return ModuleReport{}, false
}
