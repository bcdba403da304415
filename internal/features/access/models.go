package access

import "course-miniapp/internal/normalize"

var (
	StatusShape = normalize.NewShape("AccessStatus",
		normalize.Bool("has_access", false),
		normalize.Int("purchased_courses_count", 0).NonNegative(),
		normalize.Int("total_payments", 0).NonNegative(),
	)

	CourseStatusShape = normalize.NewShape("CourseAccessStatus",
		normalize.Bool("has_access", false),
		normalize.Int("course_id", 0),
		normalize.OptionalTimestamp("purchased_at"),
	)

	DevGrantShape = normalize.NewShape("DevAccessGrant",
		normalize.String("message", ""),
		normalize.Int("granted", 0).NonNegative(),
		normalize.Int("total_courses", 0).NonNegative(),
	)
)

// Status tells whether the caller may use the app at all.
type Status struct {
	HasAccess             bool  `json:"has_access"`
	PurchasedCoursesCount int64 `json:"purchased_courses_count"`
	TotalPayments         int64 `json:"total_payments"`
}

type CourseStatus struct {
	HasAccess   bool                     `json:"has_access"`
	CourseID    int64                    `json:"course_id"`
	PurchasedAt normalize.Option[string] `json:"purchased_at"`
}

type DevGrant struct {
	Message      string `json:"message"`
	Granted      int64  `json:"granted"`
	TotalCourses int64  `json:"total_courses"`
}

func statusFrom(r normalize.Record) Status {
	return Status{
		HasAccess:             r.Bool("has_access"),
		PurchasedCoursesCount: r.Int("purchased_courses_count"),
		TotalPayments:         r.Int("total_payments"),
	}
}

func courseStatusFrom(r normalize.Record) CourseStatus {
	return CourseStatus{
		HasAccess:   r.Bool("has_access"),
		CourseID:    r.Int("course_id"),
		PurchasedAt: r.OptString("purchased_at"),
	}
}

func devGrantFrom(r normalize.Record) DevGrant {
	return DevGrant{
		Message:      r.Str("message"),
		Granted:      r.Int("granted"),
		TotalCourses: r.Int("total_courses"),
	}
}
