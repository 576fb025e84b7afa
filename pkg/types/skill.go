package types

import "time"

// Skill level bounds.
const (
	SkillLevelMin = 1
	SkillLevelMax = 5
)

// Skill represents a single competency possessed by an applicant. Skills are
// the child relation of the applicant skill-count invariant: every insert or
// delete triggers a recount of the owning applicant's SkillCount.
type Skill struct {
	SkillID     string    // UUID v7, generated on creation.
	ApplicantID string    // Owning applicant (required).
	Name        string    // Skill name (required, unique per applicant).
	Level       int       // Proficiency between SkillLevelMin and SkillLevelMax.
	CreatedAt   time.Time // Timestamp of creation.
}

// Validate checks skill fields before persistence.
func (s *Skill) Validate() error {
	if s.ApplicantID == "" {
		return ErrApplicantRequired
	}
	if s.Name == "" {
		return ErrInvalidName
	}
	if s.Level < SkillLevelMin || s.Level > SkillLevelMax {
		return ErrInvalidLevel
	}
	return nil
}
