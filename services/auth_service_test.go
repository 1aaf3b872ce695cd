package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/utils"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	repo := &fakeDynastyRepo{dynasty: models.Dynasty{
		ID:           1,
		Name:         "Test Dynasty",
		OwnerEmail:   "owner@example.com",
		PasswordHash: hash,
		Season:       2025,
		CurrentDate:  time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC),
	}}
	svc := NewAuthService(repo)

	dynasty, err := svc.Login(context.Background(), LoginInput{Email: "owner@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, 1, dynasty.ID)

	_, err = svc.Login(context.Background(), LoginInput{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
