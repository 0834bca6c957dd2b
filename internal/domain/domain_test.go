package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentValidate(t *testing.T) {
	valid := Commitment{
		Company:          "Microsoft",
		AnnouncementDate: "2026-01-15",
		CommitmentType:   CommitmentNetZero,
		TargetYear:       2030,
		BaselineYear:     2020,
		RelevanceScore:   0.8,
	}
	require.NoError(t, valid.Validate())

	missingCompany := valid
	missingCompany.Company = ""
	assert.Error(t, missingCompany.Validate())

	badDate := valid
	badDate.AnnouncementDate = "January 15, 2026"
	assert.Error(t, badDate.Validate())

	badScore := valid
	badScore.RelevanceScore = 1.2
	assert.Error(t, badScore.Validate())

	inverted := valid
	inverted.BaselineYear = 2040
	assert.Error(t, inverted.Validate())
}

func TestFundingEventValidate(t *testing.T) {
	valid := FundingEvent{
		Company:          "CarbonChain",
		FundingType:      "Series A",
		AnnouncementDate: "2026-02-01",
		DovuRelevance:    0.7,
	}
	require.NoError(t, valid.Validate())

	badThreat := valid
	badThreat.CompetitiveThreat = -0.1
	assert.Error(t, badThreat.Validate())
}

func TestDateParsing(t *testing.T) {
	c := Commitment{AnnouncementDate: "2026-03-05"}
	d, err := c.Date()
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	_, err = Commitment{AnnouncementDate: "03/05/2026"}.Date()
	assert.Error(t, err)
}
