package entitymodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"job-board-backend/models"
)

func TestDynamicFieldValidateValue(t *testing.T) {
	t.Run(`optional fields accept anything`, func(t *testing.T) {
		field := DynamicField{ID: "extra", Label: "Extra", Type: models.DynamicFieldText}
		require.Nil(t, field.ValidateValue(nil, false))
		require.Nil(t, field.ValidateValue("", false))
	})

	t.Run(`required text needs a non-empty value`, func(t *testing.T) {
		field := DynamicField{ID: "portfolio", Label: "Portfolio", Type: models.DynamicFieldText, Required: true}
		require.NotNil(t, field.ValidateValue(nil, false))
		require.NotNil(t, field.ValidateValue("", false))
		require.Nil(t, field.ValidateValue("https://portfolio.example.com", false))
	})

	t.Run(`required boolean is satisfied by an explicit false`, func(t *testing.T) {
		field := DynamicField{ID: "relocate", Label: "Willing to relocate", Type: models.DynamicFieldBoolean, Required: true}
		require.NotNil(t, field.ValidateValue(nil, false))
		require.Nil(t, field.ValidateValue(false, false))
		require.Nil(t, field.ValidateValue(true, false))
	})

	t.Run(`required boolean rejects non-boolean values`, func(t *testing.T) {
		field := DynamicField{ID: "relocate", Label: "Willing to relocate", Type: models.DynamicFieldBoolean, Required: true}
		require.NotNil(t, field.ValidateValue("false", false))
	})

	t.Run(`required file needs an uploaded file`, func(t *testing.T) {
		field := DynamicField{ID: "certificate", Label: "Certificate", Type: models.DynamicFieldFile, Required: true}
		require.NotNil(t, field.ValidateValue(nil, false))
		require.Nil(t, field.ValidateValue(nil, true))
	})
}
