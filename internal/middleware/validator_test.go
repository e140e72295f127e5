package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateApplicant(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Anya Sharma","unit":"402B"}`, wantErr: false},
		{name: "unit optional", body: `{"name":"Anya Sharma"}`, wantErr: false},
		{name: "missing name", body: `{"unit":"402B"}`, wantErr: true},
		{name: "empty name", body: `{"name":""}`, wantErr: true},
		{name: "name wrong type", body: `{"name":42}`, wantErr: true},
		{name: "extra field", body: `{"name":"Anya","id":7}`, wantErr: true},
		{name: "not json", body: `{{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateApplicant([]byte(tt.body))
			if tt.wantErr {
				var verr *ValidationError
				require.Error(t, err)
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUpdateApplicant(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "status and risk", body: `{"status":"Denied","risk":"High"}`, wantErr: false},
		{name: "empty object", body: `{}`, wantErr: false},
		{name: "all known fields", body: `{"name":"A","unit":"B","status":"C","risk":"D","income_match":"E","error_rate":"F"}`, wantErr: false},
		// enum values are not restricted, only their type is
		{name: "arbitrary status value", body: `{"status":"Whatever"}`, wantErr: false},
		{name: "status wrong type", body: `{"status":7}`, wantErr: true},
		{name: "unknown field", body: `{"nope":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdateApplicant([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
