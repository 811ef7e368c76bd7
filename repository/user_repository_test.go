package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/rosterbackend/models"
)

func TestUserCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	user := &models.User{Username: "quartermaster"}
	require.NoError(t, user.SetPassword("correct horse battery"))
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	byName, err := repo.GetByUsername("quartermaster")
	require.NoError(t, err)
	assert.True(t, byName.CheckPassword("correct horse battery"))
	assert.False(t, byName.CheckPassword("wrong"))

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "quartermaster", byID.Username)

	count, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserDuplicateUsernameFails(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	first := &models.User{Username: "quartermaster"}
	require.NoError(t, first.SetPassword("password-one"))
	require.NoError(t, repo.Create(first))

	second := &models.User{Username: "quartermaster"}
	require.NoError(t, second.SetPassword("password-two"))
	assert.Error(t, repo.Create(second))
}
