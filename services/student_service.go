package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/rs/zerolog"
)

const studentsTable = "Élèves"

// StudentService verifies access codes and resolves student display names.
type StudentService struct {
	store RecordStore
	mock  *MockProvider
	log   zerolog.Logger
}

func NewStudentService(store RecordStore, mock *MockProvider, log zerolog.Logger) *StudentService {
	return &StudentService{store: store, mock: mock, log: log.With().Str("domain", "students").Logger()}
}

// VerifyAccess looks up the student owning code. It returns (nil, nil) when no
// student matches and an error only when the store could not be queried at all.
func (s *StudentService) VerifyAccess(ctx context.Context, code string) (*models.StudentIdentity, error) {
	if code == "" {
		return nil, nil
	}
	if !s.store.IsConfigured() {
		if st, ok := s.mock.StudentByCode(ctx, code); ok {
			return &st, nil
		}
		return nil, nil
	}

	recs, _, err := FirstNonEmpty(ctx, s.log,
		s.formulaStrategy("code formula", fieldEquals("code", code)),
		s.formulaStrategy("record id formula", recordIDEquals(code)),
	)
	if err != nil {
		var ex *ExhaustedError
		if errors.As(err, &ex) && !ex.AllFailed() {
			return nil, nil
		}
		return nil, fmt.Errorf("verify access: %w", err)
	}

	st := NormalizeStudent(recs[0], code)
	return &st, nil
}

// ResolveStudentName returns the display name of studentID, or studentID itself
// when no student record can be found.
func (s *StudentService) ResolveStudentName(ctx context.Context, studentID string) string {
	if !s.store.IsConfigured() {
		if name, ok := s.mock.StudentName(studentID); ok {
			return name
		}
		return studentID
	}

	recs, _, err := FirstNonEmpty(ctx, s.log,
		s.formulaStrategy("id formula", fieldEquals("ID", studentID)),
		s.formulaStrategy("code formula", fieldEquals("code", studentID)),
		Strategy[Record]{
			Name: "full table scan",
			Run: func(ctx context.Context) ([]Record, error) {
				all, err := s.store.FetchAllRecords(ctx, studentsTable)
				if err != nil {
					return nil, err
				}
				for _, r := range all {
					if studentMatches(r, studentID) {
						return []Record{r}, nil
					}
				}
				return nil, nil
			},
		},
	)
	if err != nil {
		s.log.Warn().Err(err).Str("student_id", studentID).Msg("student name not found, using id")
		return studentID
	}
	if name := String(recs[0], studentFields.Name...); name != "" {
		return name
	}
	return studentID
}

func (s *StudentService) formulaStrategy(name, formula string) Strategy[Record] {
	return Strategy[Record]{
		Name: name,
		Run: func(ctx context.Context) ([]Record, error) {
			return s.store.FetchFromAirtable(ctx, studentsTable, QueryOptions{FilterByFormula: EncodeFormula(formula)})
		},
	}
}

// studentMatches compares every identity column a student row may carry.
func studentMatches(r Record, studentID string) bool {
	if studentID == "" {
		return false
	}
	for _, k := range []string{"id", "code", "ID", "IDU Eleve"} {
		if v, ok := r[k].(string); ok && v == studentID {
			return true
		}
	}
	return false
}
