package types

import "testing"

func TestPositionValidate(t *testing.T) {
	tests := []struct {
		name     string
		position Position
		wantErr  error
	}{
		{"valid open", Position{EmployerID: "e1", Title: "Engineer", Salary: 90000, Status: PositionOpen}, nil},
		{"valid no status", Position{EmployerID: "e1", Title: "Engineer", Salary: 90000}, nil},
		{"zero salary allowed", Position{EmployerID: "e1", Title: "Intern", Salary: 0, Status: PositionOpen}, nil},
		{"missing employer", Position{Title: "Engineer", Salary: 90000}, ErrEmployerRequired},
		{"missing title", Position{EmployerID: "e1", Salary: 90000}, ErrInvalidName},
		{"negative salary", Position{EmployerID: "e1", Title: "Engineer", Salary: -1}, ErrNegativeSalary},
		{"bogus status", Position{EmployerID: "e1", Title: "Engineer", Status: "paused"}, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.position.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPositionFill(t *testing.T) {
	p := Position{EmployerID: "e1", Title: "Engineer", Status: PositionOpen}

	if err := p.Fill(); err != nil {
		t.Fatalf("Fill on open position failed: %v", err)
	}
	if p.Status != PositionFilled {
		t.Errorf("expected status filled, got %s", p.Status)
	}

	// Filling a filled position is an invalid transition.
	if err := p.Fill(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestPositionReopen(t *testing.T) {
	p := Position{EmployerID: "e1", Title: "Engineer", Status: PositionFilled}

	if err := p.Reopen(); err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if p.Status != PositionOpen {
		t.Errorf("expected status open, got %s", p.Status)
	}

	// Reopen is idempotent on open positions.
	if err := p.Reopen(); err != nil {
		t.Errorf("Reopen on open position should not error, got %v", err)
	}
}
