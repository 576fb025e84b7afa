package types

import "testing"

func TestSkillValidate(t *testing.T) {
	tests := []struct {
		name    string
		skill   Skill
		wantErr error
	}{
		{"valid", Skill{ApplicantID: "a1", Name: "SQL", Level: 3}, nil},
		{"min level", Skill{ApplicantID: "a1", Name: "SQL", Level: SkillLevelMin}, nil},
		{"max level", Skill{ApplicantID: "a1", Name: "SQL", Level: SkillLevelMax}, nil},
		{"missing applicant", Skill{Name: "SQL", Level: 3}, ErrApplicantRequired},
		{"missing name", Skill{ApplicantID: "a1", Level: 3}, ErrInvalidName},
		{"level too low", Skill{ApplicantID: "a1", Name: "SQL", Level: 0}, ErrInvalidLevel},
		{"level too high", Skill{ApplicantID: "a1", Name: "SQL", Level: 6}, ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.skill.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmployerValidate(t *testing.T) {
	tests := []struct {
		name     string
		employer Employer
		wantErr  error
	}{
		{"valid", Employer{Name: "Acme", Budget: 100000}, nil},
		{"missing name", Employer{Budget: 100000}, ErrInvalidName},
		{"zero budget", Employer{Name: "Acme"}, ErrNonPositiveBudget},
		{"negative budget", Employer{Name: "Acme", Budget: -5}, ErrNonPositiveBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.employer.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssignmentValidate(t *testing.T) {
	tests := []struct {
		name       string
		assignment Assignment
		wantErr    error
	}{
		{"valid", Assignment{PositionID: "p1", ApplicantID: "a1", Hours: 40}, nil},
		{"zero hours allowed", Assignment{PositionID: "p1", ApplicantID: "a1"}, nil},
		{"missing position", Assignment{ApplicantID: "a1", Hours: 40}, ErrPositionRequired},
		{"missing applicant", Assignment{PositionID: "p1", Hours: 40}, ErrApplicantRequired},
		{"negative hours", Assignment{PositionID: "p1", ApplicantID: "a1", Hours: -1}, ErrNegativeHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.assignment.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplicantValidate(t *testing.T) {
	tests := []struct {
		name      string
		applicant Applicant
		wantErr   error
	}{
		{"valid", Applicant{FullName: "Mira", YearsExperience: 8, DesiredSalary: 90000}, nil},
		{"missing name", Applicant{YearsExperience: 8}, ErrInvalidName},
		{"negative experience", Applicant{FullName: "Mira", YearsExperience: -1}, ErrNegativeExperience},
		{"negative desired salary", Applicant{FullName: "Mira", DesiredSalary: -1}, ErrNegativeSalary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.applicant.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
