// Package types provides type definitions for structured data used throughout the skillsage system.
package types

// Profile is the student's accumulated self-reported data for one session.
type Profile struct {
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	Branch              string         `json:"branch"`
	Year                string         `json:"year"`
	CurrentSkills       []string       `json:"currentSkills"`
	Interests           []string       `json:"interests"`
	CareerGoal          string         `json:"careerGoal"`
	ExtraInfo           string         `json:"extraInfo"`
	ResumeText          string         `json:"resumeText"`
	PsychometricAnswers map[int]string `json:"psychometricAnswers"`
}

// NewProfile returns an empty profile with initialized collections.
func NewProfile() Profile {
	return Profile{
		CurrentSkills:       []string{},
		Interests:           []string{},
		PsychometricAnswers: map[int]string{},
	}
}

// HasResume reports whether any resume text has been provided.
func (p Profile) HasResume() bool {
	return p.ResumeText != ""
}

// Clone returns a deep copy so callers can hand snapshots to adapters safely.
func (p Profile) Clone() Profile {
	out := p
	out.CurrentSkills = append([]string{}, p.CurrentSkills...)
	out.Interests = append([]string{}, p.Interests...)
	out.PsychometricAnswers = make(map[int]string, len(p.PsychometricAnswers))
	for k, v := range p.PsychometricAnswers {
		out.PsychometricAnswers[k] = v
	}
	return out
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
// Questionnaire answers are not part of a patch; they are recorded per question batch.
type ProfilePatch struct {
	Name          *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Email         *string   `json:"email,omitempty" validate:"omitempty,email"`
	Branch        *string   `json:"branch,omitempty" validate:"omitempty,branch"`
	Year          *string   `json:"year,omitempty" validate:"omitempty,year"`
	CurrentSkills *[]string `json:"currentSkills,omitempty" validate:"omitempty,dive,required"`
	Interests     *[]string `json:"interests,omitempty" validate:"omitempty,dive,required"`
	CareerGoal    *string   `json:"careerGoal,omitempty"`
	ExtraInfo     *string   `json:"extraInfo,omitempty"`
	ResumeText    *string   `json:"resumeText,omitempty"`
}

// Apply merges the patch into the profile in place.
func (p *Profile) Apply(patch ProfilePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Branch != nil {
		p.Branch = *patch.Branch
	}
	if patch.Year != nil {
		p.Year = *patch.Year
	}
	if patch.CurrentSkills != nil {
		p.CurrentSkills = uniqueStrings(*patch.CurrentSkills)
	}
	if patch.Interests != nil {
		p.Interests = uniqueStrings(*patch.Interests)
	}
	if patch.CareerGoal != nil {
		p.CareerGoal = *patch.CareerGoal
	}
	if patch.ExtraInfo != nil {
		p.ExtraInfo = *patch.ExtraInfo
	}
	if patch.ResumeText != nil {
		p.ResumeText = *patch.ResumeText
	}
}

// MissingForAssessment returns the names of fields that must be filled before
// questions can be generated.
func (p Profile) MissingForAssessment() []string {
	var missing []string
	if p.Branch == "" {
		missing = append(missing, "branch")
	}
	if p.Year == "" {
		missing = append(missing, "year")
	}
	if p.CareerGoal == "" {
		missing = append(missing, "careerGoal")
	}
	return missing
}

// uniqueStrings drops duplicates while keeping first-seen order.
func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
