package exitcode

import "testing"

func TestExitCodeConstants(t *testing.T) {
	if Success != 0 {
		t.Errorf("Success = %v, expected 0", Success)
	}
	if GeneralError != 1 {
		t.Errorf("GeneralError = %v, expected 1", GeneralError)
	}
	if ConfigError != 2 {
		t.Errorf("ConfigError = %v, expected 2", ConfigError)
	}
	if PreconditionFailed != 3 {
		t.Errorf("PreconditionFailed = %v, expected 3", PreconditionFailed)
	}
	if BatchFailures != 4 {
		t.Errorf("BatchFailures = %v, expected 4", BatchFailures)
	}
	if BatchCancelled != 5 {
		t.Errorf("BatchCancelled = %v, expected 5", BatchCancelled)
	}
	if RepositoryError != 6 {
		t.Errorf("RepositoryError = %v, expected 6", RepositoryError)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{ConfigError, "Configuration error"},
		{PreconditionFailed, "Precondition failed"},
		{BatchFailures, "Batch completed with failures"},
		{BatchCancelled, "Batch cancelled"},
		{RepositoryError, "Repository error"},
		{999, "Unknown error"},
	}

	for _, test := range tests {
		result := String(test.code)
		if result != test.expected {
			t.Errorf("String(%d) = %v, expected %v", test.code, result, test.expected)
		}
	}
}
