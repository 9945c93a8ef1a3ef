package usecase_test

import (
	"strings"
	"testing"

	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

// HTTPErrorのステータスを確認して返す
func requireStatus(t *testing.T, err error, status int) *usecase.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "not an HTTPError: %v", err)
	require.Equal(t, status, he.Status, "message=%q", he.Message)
	return he
}

func int64Ptr(v int64) *int64 { return &v }
