package models

// MaxCertifiedCourses caps how many courses a trainer may hold at once.
const MaxCertifiedCourses = 3

// TrainerCandidate is a tutor sourced from the external trainer directory.
// The engine reads these, it never writes them back.
type TrainerCandidate struct {
	ID                  string    `json:"id"`
	FullName            string    `json:"full_name"`
	IsActive            bool      `json:"is_active"`
	OperatorFranchiseID *string   `json:"operator_franchise_id,omitempty"`
	ZoneID              string    `json:"zone_id"`
	CertifiedCourseIDs  []string  `json:"certified_course_ids"`
	Location            *GeoPoint `json:"location,omitempty"`
}

// Operator returns the trainer's operating entity.
func (t *TrainerCandidate) Operator() Operator {
	return OperatorFromFranchiseID(t.OperatorFranchiseID)
}

// IsCertifiedFor reports whether the trainer holds the given course.
func (t *TrainerCandidate) IsCertifiedFor(courseID string) bool {
	for _, id := range t.CertifiedCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}
