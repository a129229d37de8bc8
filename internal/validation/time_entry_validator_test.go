package validation

import (
	"strings"
	"testing"
	"time"

	"tempus/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() domain.TimeEntry {
	return domain.TimeEntry{
		ProjectName: "Acme",
		Task:        "Design",
		Email:       "me@example.com",
		StartTime:   time.Now().Add(-time.Hour),
		Duration:    time.Hour,
	}
}

func TestTimeEntryValidator_ValidateTimeEntryForCreation(t *testing.T) {
	validator := NewTimeEntryValidator()

	tests := []struct {
		name   string
		modify func(*domain.TimeEntry)
		fields []string
	}{
		{"should accept a complete entry", func(*domain.TimeEntry) {}, nil},
		{"should accept a zero duration", func(e *domain.TimeEntry) { e.Duration = 0 }, nil},
		{"should accept an empty email", func(e *domain.TimeEntry) { e.Email = "" }, nil},
		{"should require a project", func(e *domain.TimeEntry) { e.ProjectName = "  " }, []string{"project_name"}},
		{"should limit project length", func(e *domain.TimeEntry) { e.ProjectName = strings.Repeat("a", 256) }, []string{"project_name"}},
		{"should reject control characters in project", func(e *domain.TimeEntry) { e.ProjectName = "Ac\nme" }, []string{"project_name"}},
		{"should limit description length", func(e *domain.TimeEntry) { e.Description = strings.Repeat("d", 1025) }, []string{"description"}},
		{"should reject malformed email", func(e *domain.TimeEntry) { e.Email = "nobody" }, []string{"email"}},
		{"should require a start time", func(e *domain.TimeEntry) { e.StartTime = time.Time{} }, []string{"start_time"}},
		{"should reject an ancient start time", func(e *domain.TimeEntry) { e.StartTime = time.Now().AddDate(-20, 0, 0) }, []string{"start_time"}},
		{"should reject a negative duration", func(e *domain.TimeEntry) { e.Duration = -time.Second }, []string{"duration"}},
		{"should collect every failure", func(e *domain.TimeEntry) {
			e.ProjectName = ""
			e.Duration = -time.Second
		}, []string{"project_name", "duration"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.modify(&entry)

			err := validator.ValidateTimeEntryForCreation(entry)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.fields, ve.Fields())
		})
	}
}
