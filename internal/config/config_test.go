package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnviron_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")

	c, err := FromEnviron()
	require.NoError(t, err)

	assert.Equal(t, 612409, c.SmsVerifyTemplateID)
	assert.Equal(t, 642348, c.SmsInviteTemplateID)
	assert.Equal(t, 5*time.Second, c.SmsTimeout)
	assert.Equal(t, 2*time.Minute, c.VerificationCodeTTL)
	assert.Equal(t, 30*time.Second, c.InviteLockTTL)
	assert.Equal(t, int64(100000), c.EventsMaxLen)
}

func TestFromEnviron_RequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := FromEnviron()
	assert.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUTH_JWT_SECRET=from-file\nSMS_TIMEOUT=750ms\nPOSTGRES_WRITE_HOST=db\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("AUTH_JWT_SECRET")
		os.Unsetenv("SMS_TIMEOUT")
		os.Unsetenv("POSTGRES_WRITE_HOST")
		config = nil
	})

	require.NoError(t, Load(path))
	assert.Equal(t, "from-file", Get().AuthJWTSecret)
	assert.Equal(t, 750*time.Millisecond, Get().SmsTimeout)
	assert.Equal(t, "db", Get().PostgresWrite().Host)
}

func TestLoad_MissingFile(t *testing.T) {
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}
