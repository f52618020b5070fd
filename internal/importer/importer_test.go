package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nocap-placify/placify"
	"github.com/nocap-placify/placify/internal/importer"
	"github.com/nocap-placify/placify/pkg/adapters/memory"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const students = `srn,name,ph_no,dob,gender,resume,sem,mentor_name,cgpa,degree,stream,email,github_profile,leetcode_profile,age,linkedin_link
pes1ug20cs001,Ada Lovelace,9876543210,2003-01-01,F,https://drive.example.com/ada.pdf,6,Dr. Rao,8.5,BTech,CSE,ada@pes.edu,https://github.com/ada,https://leetcode.com/ada,21,https://linkedin.com/in/ada
bad-srn,Alan Turing,9876543211,2003-01-01,M,https://drive.example.com/alan.pdf,6,Dr. Rao,9.1,BTech,CSE,alan@pes.edu,https://github.com/alan,https://leetcode.com/alan,22,https://linkedin.com/in/alan
`

const sessions = `mentor_name,srn,date,advice
Dr. Rao,pes1ug20cs001,2024-03-01,Practice graphs.
Dr. Rao,pes1ug20cs002,2024-03-02,Revise DBMS.
`

func newImporter(t *testing.T) (*importer.Importer, *placify.Engine, *memory.Gateway) {
	t.Helper()
	gw := memory.NewGateway()
	eng, err := placify.New(placify.WithGateway(gw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return importer.New(eng, importer.WithConcurrency(2)), eng, gw
}

func TestImporter_Students(t *testing.T) {
	imp, eng, gw := newImporter(t)

	report, err := imp.Students(context.Background(), strings.NewReader(students))
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)

	ok := report.Rows[0]
	assert.True(t, ok.OK())
	assert.Equal(t, 1, ok.Line)
	assert.NotEmpty(t, ok.Confirmation)

	bad := report.Rows[1]
	assert.False(t, bad.OK())
	assert.Equal(t, []string{"srn"}, bad.Invalid)

	subs := gw.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, domain.TargetStudents, subs[0].Target)
	assert.Equal(t, "PES1UG20CS001", subs[0].Values["srn"])
	assert.Equal(t, "Dr. Rao", subs[0].Values["men_name"])

	ids, err := eng.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestImporter_MentorSessions(t *testing.T) {
	imp, _, gw := newImporter(t)

	report, err := imp.Import(context.Background(), domain.WizardMentorSession, strings.NewReader(sessions))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Zero(t, report.Failed)

	subs := gw.Submissions()
	require.Len(t, subs, 2)
	advice := []string{subs[0].Values["advice"], subs[1].Values["advice"]}
	assert.ElementsMatch(t, []string{"Practice graphs.", "Revise DBMS."}, advice)
}

func TestImporter_GatewayFailure(t *testing.T) {
	imp, _, gw := newImporter(t)
	gw.FailWith(&domain.SubmissionError{Reason: domain.ReasonNetwork, Err: errors.New("connection refused")})

	report, err := imp.MentorSessions(context.Background(), strings.NewReader(sessions))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Failed)
	for _, row := range report.Rows {
		assert.Equal(t, domain.ReasonNetwork, row.Reason)
		assert.NotEmpty(t, row.Error)
	}
}

func TestImporter_Empty(t *testing.T) {
	imp, _, _ := newImporter(t)
	report, err := imp.Students(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
}

func TestImporter_UnknownWizard(t *testing.T) {
	imp, _, _ := newImporter(t)
	_, err := imp.Import(context.Background(), "nope", strings.NewReader(sessions))
	assert.ErrorIs(t, err, domain.ErrWizardNotFound)
}

func TestImporter_Canceled(t *testing.T) {
	imp, _, _ := newImporter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imp.MentorSessions(ctx, strings.NewReader(sessions))
	assert.ErrorIs(t, err, context.Canceled)
}
