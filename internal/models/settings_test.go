package models_test

import (
	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestGetSettingsCreatesDefaults() {
	defaults := models.Settings{FreeClientLimit: 5, SupportPhone: "+55 (11) 98765-4321"}

	settings, err := models.GetSettings(models.DB, defaults)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 5, settings.FreeClientLimit)
	assert.Equal(suite.T(), 0, settings.ProClientLimit)
	assert.Equal(suite.T(), access.Limits{Free: 5, Pro: 0}, settings.Limits())

	// Stored settings take precedence over the defaults
	settings.FreeClientLimit = 10
	require.Nil(suite.T(), models.DB.Save(&settings).Error)

	settings, err = models.GetSettings(models.DB, defaults)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 10, settings.FreeClientLimit)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Settings{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestSettingsUpgradeLink() {
	tests := []struct {
		phone string
		link  string
	}{
		{"", ""},
		{"  ", ""},
		{"+55 (11) 98765-4321", "https://wa.me/5511987654321?text=Ol%C3%A1%21+Quero+assinar+o+plano+Pro.+Minha+conta%3A+ana%40example.com"},
	}

	for _, tt := range tests {
		suite.Run(tt.phone, func() {
			assert.Equal(suite.T(), tt.link, models.Settings{SupportPhone: tt.phone}.UpgradeLink("ana@example.com"))
		})
	}
}

func (suite *TestSuiteStandard) TestSettingsDBClosed() {
	suite.CloseDB()

	_, err := models.GetSettings(models.DB, models.Settings{})
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
