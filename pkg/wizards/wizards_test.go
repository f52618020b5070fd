package wizards

import (
	"testing"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentRegistration_WireNames(t *testing.T) {
	def := StudentRegistration()

	var params []string
	for _, f := range def.Fields {
		params = append(params, f.WireName())
	}

	assert.ElementsMatch(t, []string{
		"name", "srn", "sem", "git_link", "leet_link", "men_name", "linkedin_link",
		"cgpa", "age", "phone_num", "degree", "stream", "gender", "email", "resume",
	}, params)
	assert.Equal(t, domain.TargetStudents, def.Target)
	assert.True(t, def.Steps[def.LastIndex()].Review)
}

func TestAll_Valid(t *testing.T) {
	for _, def := range All() {
		t.Run(def.ID, func(t *testing.T) {
			require.NoError(t, def.Validate())
			assert.Equal(t, domain.DefaultResetDelay, def.EffectiveResetDelay())
		})
	}
}
