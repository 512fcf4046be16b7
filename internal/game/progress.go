package game

// Progress is the external unlock collaborator. The city only asks whether
// a type may be selected; it never walks the prerequisite graph itself.
type Progress interface {
	IsTypeUnlocked(typeKey string) bool
}

// OpenProgress unlocks everything.
type OpenProgress struct{}

func (OpenProgress) IsTypeUnlocked(string) bool { return true }

// CompletedWorkshops unlocks a type once the workshop it requires has been
// completed. Completion is recorded by whatever owns the workshop UI.
type CompletedWorkshops map[string]bool

func (cw CompletedWorkshops) IsTypeUnlocked(typeKey string) bool {
	e, ok := LookupType(typeKey)
	if !ok || e.RequiredWorkshop == "" {
		return true
	}
	return cw[e.RequiredWorkshop]
}

// Complete marks a workshop as done.
func (cw CompletedWorkshops) Complete(id string) {
	cw[id] = true
}
