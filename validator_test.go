package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        registerAccountRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req:  registerAccountRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"},
		},
		{
			name:       "everything wrong",
			req:        registerAccountRequest{Name: "", Email: "bad", Password: "12"},
			wantFields: []string{"name", "email", "password"},
		},
		{
			name:       "whitespace name is still blank",
			req:        registerAccountRequest{Name: "   ", Email: "ann@example.com", Password: "secret1"},
			wantFields: []string{"name"},
		},
		{
			name:       "missing email",
			req:        registerAccountRequest{Name: "Ann", Email: "", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "email without domain",
			req:        registerAccountRequest{Name: "Ann", Email: "ann@", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "five character password",
			req:        registerAccountRequest{Name: "Ann", Email: "ann@example.com", Password: "12345"},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := validateRequest(tt.req)

			if len(tt.wantFields) == 0 {
				assert.Nil(t, verr)
				return
			}

			assert.NotNil(t, verr)
			fields := make([]string, 0, len(verr.Violations))
			for _, v := range verr.Violations {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidateRequest_Messages(t *testing.T) {
	verr := validateRequest(registerAccountRequest{})

	assert.NotNil(t, verr)
	assert.Equal(t, []FieldViolation{
		{Field: "name", Message: "Name is required"},
		{Field: "email", Message: "Please include a valid email"},
		{Field: "password", Message: "Please enter a password with 6 or more characters"},
	}, verr.Violations)
}

func TestValidationError_Error(t *testing.T) {
	verr := validateRequest(registerAccountRequest{Name: "Ann", Email: "ann@example.com", Password: "12"})

	assert.Equal(t, "password: Please enter a password with 6 or more characters", verr.Error())
}
