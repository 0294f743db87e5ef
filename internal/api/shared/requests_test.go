package shared

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"name": "serendipity", "count": 3}`,
			wantErr:     false,
		},
		{
			name:        "invalid json",
			requestBody: `{"name": "serendipity", "count": 3,}`, // trailing comma
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
			errContains: "EOF",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost,
				"/test",
				bytes.NewBufferString(tc.requestBody),
			)

			target := &struct {
				Name  string `json:"name"`
				Count int    `json:"count"`
			}{}
			err := DecodeJSON(req, target)

			if tc.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "serendipity", target.Name)
				assert.Equal(t, 3, target.Count)
			}
		})
	}
}

// selfValidating exercises the Validate-method branch of ValidateRequest.
type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error {
	return s.err
}

func TestValidateRequest(t *testing.T) {
	type taggedRequest struct {
		Email string `validate:"required,email"`
		Count int    `validate:"gte=0"`
	}

	t.Run("valid tagged struct", func(t *testing.T) {
		err := ValidateRequest(taggedRequest{Email: "learner@example.com", Count: 1})
		assert.NoError(t, err)
	})

	t.Run("invalid tagged struct", func(t *testing.T) {
		err := ValidateRequest(taggedRequest{Email: "not-an-email", Count: 1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateRequest(taggedRequest{Count: 1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("custom Validate method takes precedence", func(t *testing.T) {
		wantErr := errors.New("custom validation failed")
		assert.Equal(t, wantErr, ValidateRequest(selfValidating{err: wantErr}))
		assert.NoError(t, ValidateRequest(selfValidating{}))
	})
}
