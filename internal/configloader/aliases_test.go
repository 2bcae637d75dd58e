package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"reg", keyReg, true},
		{"REG", keyReg, true},
		{"warn-out-of-range", keyWarnOutOfRange, true},
		{"Screen_Profile", keyScreenProfile, true},
		{"dat-port", keyDat, true},
		{"backup.mode", keyBackupsMode, true},
		{"backups.enabled", keyBackupsEnabled, true},
		{"backups", keyBackups, true},
		{"jobs", keyJobs, true},
		{"dry-run", keyDryRun, true},
		{"colour", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalKey(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestIsFileKey(t *testing.T) {
	t.Parallel()

	assert.True(t, IsFileKey(keyScaleForVars))
	assert.True(t, IsFileKey(keyBackupsMode))
	assert.False(t, IsFileKey(keyJobs))
	assert.False(t, IsFileKey(keyBackups))
}

func TestFileKeys_ReturnsCopy(t *testing.T) {
	t.Parallel()

	keys := FileKeys()
	keys[0] = "changed"

	assert.Equal(t, keyReg, FileKeys()[0])
}
