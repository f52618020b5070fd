package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nocap-placify/placify/pkg/adapters/postgres"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentValues(srn string) map[string]string {
	return map[string]string{
		"name":          "Ada Lovelace",
		"srn":           srn,
		"age":           "21",
		"gender":        "F",
		"phone_num":     "9876543210",
		"email":         "ada@pes.edu",
		"sem":           "6",
		"cgpa":          "8.50",
		"degree":        "BTech",
		"stream":        "CSE",
		"men_name":      "Dr. Rao",
		"git_link":      "https://github.com/ada",
		"leet_link":     "https://leetcode.com/ada",
		"linkedin_link": "https://linkedin.com/in/ada",
		"resume":        "https://drive.example.com/ada.pdf",
	}
}

func TestStudentFrom(t *testing.T) {
	s, err := postgres.StudentFrom(studentValues("PES1UG20CS001"))
	require.NoError(t, err)
	assert.Equal(t, "PES1UG20CS001", s.StudentID)
	assert.Equal(t, 21, s.Age)
	assert.Equal(t, 6, s.Sem)
	assert.InDelta(t, 8.5, s.CGPA, 0.001)
	assert.Equal(t, "https://github.com/ada", s.GithubLink)
	assert.Equal(t, "9876543210", s.PhoneNo)

	bad := studentValues("PES1UG20CS001")
	bad["cgpa"] = "eight"
	_, err = postgres.StudentFrom(bad)
	assert.ErrorContains(t, err, "cgpa")
}

func TestMentorSessionFrom(t *testing.T) {
	ms, err := postgres.MentorSessionFrom(map[string]string{
		"mentor_name": "Dr. Rao",
		"srn":         "PES1UG20CS001",
		"date":        "2024-03-01",
		"advice":      "Practice graphs.",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ms.Date)
	assert.Equal(t, "Practice graphs.", ms.Advice)

	_, err = postgres.MentorSessionFrom(map[string]string{"srn": "x", "date": "01/03/2024"})
	assert.Error(t, err)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "student", postgres.Student{}.TableName())
	assert.Equal(t, "mentor", postgres.Mentor{}.TableName())
	assert.Equal(t, "mentor_sessions", postgres.MentorSession{}.TableName())
}

// openTestGateway connects to PLACIFY_TEST_POSTGRES_DSN, skipping when unset.
func openTestGateway(t *testing.T) *postgres.Gateway {
	t.Helper()
	dsn := os.Getenv("PLACIFY_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PLACIFY_TEST_POSTGRES_DSN not set")
	}
	gw, err := postgres.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })
	require.NoError(t, gw.Ping(context.Background()))
	return gw
}

func testSRN() string {
	// Unique per run so reruns against the same database do not collide.
	return "PES1UG" + uuid.NewString()[:7]
}

func TestGateway_Integration(t *testing.T) {
	gw := openTestGateway(t)
	ctx := context.Background()
	srn := testSRN()

	receipt, err := gw.Submit(ctx, domain.Submission{
		SessionID: "s-1",
		Target:    domain.TargetStudents,
		Values:    studentValues(srn),
	})
	require.NoError(t, err)
	assert.Contains(t, receipt.Confirmation, srn)

	_, err = gw.Submit(ctx, domain.Submission{Target: domain.TargetStudents, Values: studentValues(srn)})
	var subErr *domain.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, domain.ReasonRejected, subErr.Reason)

	receipt, err = gw.Submit(ctx, domain.Submission{
		Target: domain.TargetMentorSessions,
		Values: map[string]string{"mentor_name": "Dr. Rao", "srn": srn, "date": "2024-03-01", "advice": "Practice graphs."},
	})
	require.NoError(t, err)
	assert.Contains(t, receipt.Confirmation, "mentor session #")

	_, err = gw.Submit(ctx, domain.Submission{
		Target: domain.TargetMentorSessions,
		Values: map[string]string{"mentor_name": "Nobody", "srn": srn, "date": "2024-03-01", "advice": "x"},
	})
	assert.Equal(t, domain.ReasonRejected, domain.ClassifyFailure(err))
}

func TestGateway_UnknownTarget(t *testing.T) {
	gw := postgres.New(nil)
	_, err := gw.Submit(context.Background(), domain.Submission{Target: "leaderboard"})
	assert.Equal(t, domain.ReasonRejected, domain.ClassifyFailure(err))
}
