// Package wizards holds the built-in Placify step-field tables.
package wizards

import (
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/dsl"
)

// StudentRegistration is the self-registration flow students use to submit
// their profile links. Wire names match the registration endpoint's query
// parameters.
func StudentRegistration() *domain.Definition {
	b := dsl.New(domain.WizardStudentRegistration).
		Title("Student registration").
		Description("Register your academic details and profile links with Placify.").
		Target(domain.TargetStudents)

	b.Step("personal", "About you").
		Subtitle("Basic contact details").
		Field("name", "Name", domain.KindText).
		Field("srn", "SRN", domain.KindSRN, dsl.Placeholder("PES1UG20CS001")).
		Field("age", "Age", domain.KindAge).
		Field("gender", "Gender", domain.KindText).
		Field("phone", "Phone Number", domain.KindPhone, dsl.Param("phone_num")).
		Field("email", "Email", domain.KindEmail)

	b.Step("academics", "Academics").
		Subtitle("Your programme and current standing").
		Field("semester", "Semester", domain.KindSemester, dsl.Param("sem")).
		Field("cgpa", "CGPA", domain.KindCGPA).
		Field("degree", "Degree", domain.KindText).
		Field("stream", "Stream", domain.KindText).
		Field("mentor", "Mentor Name", domain.KindText, dsl.Param("men_name"))

	b.Step("profiles", "Profiles").
		Subtitle("Links recruiters will look at").
		Field("github", "GitHub Link", domain.KindURL, dsl.Param("git_link")).
		Field("leetcode", "LeetCode Link", domain.KindURL, dsl.Param("leet_link")).
		Field("linkedin", "LinkedIn Link", domain.KindURL, dsl.Param("linkedin_link")).
		Field("resume", "Resume Link", domain.KindURL)

	b.Review("review", "Review").
		Subtitle("Check everything before submitting")

	return b.MustBuild()
}

// MentorSession records the notes of one mentoring session with a student.
func MentorSession() *domain.Definition {
	b := dsl.New(domain.WizardMentorSession).
		Title("Mentor session").
		Description("Record the date and advice of a mentoring session.").
		Target(domain.TargetMentorSessions)

	b.Step("student", "Student").
		Subtitle("Who was the session with?").
		Field("mentor", "Mentor Name", domain.KindText, dsl.Param("mentor_name")).
		Field("srn", "SRN", domain.KindSRN, dsl.Placeholder("PES1UG20CS001"))

	b.Step("session", "Session").
		Subtitle("When it happened and what was discussed").
		Field("date", "Date", domain.KindDate, dsl.Placeholder("YYYY-MM-DD")).
		Field("notes", "Notes", domain.KindText, dsl.Param("advice"), dsl.Multiline())

	b.Review("review", "Review")

	return b.MustBuild()
}

// All returns every built-in wizard.
func All() []*domain.Definition {
	return []*domain.Definition{
		StudentRegistration(),
		MentorSession(),
	}
}
