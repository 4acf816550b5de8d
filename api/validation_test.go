package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuery(t *testing.T) {
	t.Run("accepts ordinary questions", func(t *testing.T) {
		assert.NoError(t, ValidateQuery("What is a Roth IRA?"))
	})

	t.Run("blacklist is case insensitive", func(t *testing.T) {
		assert.ErrorIs(t, ValidateQuery("please drop table accounts"), ErrQueryRejected)
		assert.ErrorIs(t, ValidateQuery("DELETE FROM users"), ErrQueryRejected)
	})

	t.Run("comment sequences rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateQuery("fees -- inline"), ErrQueryRejected)
	})

	t.Run("length limit", func(t *testing.T) {
		assert.NoError(t, ValidateQuery(strings.Repeat("a", MaxQueryLength)))
		assert.ErrorIs(t, ValidateQuery(strings.Repeat("a", MaxQueryLength+1)), ErrQueryTooLong)
	})
}

func TestSanitizeQuery(t *testing.T) {
	assert.Equal(t, "What is a Roth IRA?", SanitizeQuery("What is a Roth IRA?"))
	assert.Equal(t, "fees  cost!", SanitizeQuery("  fees & cost!@#"))
	assert.Equal(t, "a.b,c!d?", SanitizeQuery("a.b,c!d?"))
}
