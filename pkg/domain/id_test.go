package domain_test

import (
	"artisan/pkg/domain"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIDs_JSON(t *testing.T) {
	raw := uuid.MustParse("0b7b6f0e-8a63-4e4e-9b59-2c1e6d3f1a10")

	b, err := json.Marshal(struct {
		User domain.UserID         `json:"user"`
		Note domain.NotificationID `json:"note"`
	}{domain.UserID(raw), domain.NotificationID(raw)})
	require.NoError(t, err)
	require.JSONEq(t, `{"user":"0b7b6f0e-8a63-4e4e-9b59-2c1e6d3f1a10","note":"0b7b6f0e-8a63-4e4e-9b59-2c1e6d3f1a10"}`, string(b))

	var back struct {
		User domain.UserID `json:"user"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, domain.UserID(raw), back.User)

	require.Error(t, json.Unmarshal([]byte(`{"user":"nope"}`), &back))
}
