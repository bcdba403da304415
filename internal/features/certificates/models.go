package certificates

import "course-miniapp/internal/normalize"

var CertificateShape = normalize.NewShape("Certificate",
	normalize.Int("id", 0),
	normalize.Int("course_id", 0),
	normalize.String("course_title", ""),
	normalize.String("certificate_url", ""),
	normalize.String("certificate_number", ""),
	normalize.Timestamp("issued_at"),
)

// Certificate is issued once every lesson of a course is completed.
type Certificate struct {
	ID                int64  `json:"id"`
	CourseID          int64  `json:"course_id"`
	CourseTitle       string `json:"course_title"`
	CertificateURL    string `json:"certificate_url"`
	CertificateNumber string `json:"certificate_number"`
	IssuedAt          string `json:"issued_at"`
}

func FromRecord(r normalize.Record) Certificate {
	return Certificate{
		ID:                r.Int("id"),
		CourseID:          r.Int("course_id"),
		CourseTitle:       r.Str("course_title"),
		CertificateURL:    r.Str("certificate_url"),
		CertificateNumber: r.Str("certificate_number"),
		IssuedAt:          r.Str("issued_at"),
	}
}
