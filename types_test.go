package sir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": LevelDebug, "DEBUG": LevelDebug,
		"crit": LevelCritical, "critical": LevelCritical,
		"emerg": LevelEmergency, "emergency": LevelEmergency,
		"warning": LevelWarn,
	}
	for name, want := range cases {
		got, ok := ParseLevel(name)
		assert.Truef(t, ok, "ParseLevel(%q) should succeed", name)
		assert.Equalf(t, want, got, "ParseLevel(%q)", name)
	}
	_, ok := ParseLevel("bogus")
	assert.False(t, ok, `ParseLevel("bogus") should fail`)
}

func TestLevelMaskAdmits(t *testing.T) {
	mask := LevelDebug.bit() | LevelWarn.bit()
	assert.True(t, mask.Admits(LevelDebug))
	assert.True(t, mask.Admits(LevelWarn))
	assert.False(t, mask.Admits(LevelError))
	assert.True(t, LevelMaskAll.valid(), "LevelMaskAll must be valid")
	assert.False(t, LevelMask(1<<30).valid(), "a mask outside the level-bit region must be invalid")
}

func TestOptionMaskDisjointFromLevelBits(t *testing.T) {
	assert.Zero(t, uint32(OptMessageOnly)&uint32(LevelMaskAll), "option bits must not intersect the level-bit region")
	assert.True(t, OptMessageOnly.valid())
}

func TestStyleValid(t *testing.T) {
	s := StyleBold | FG(ColorRed) | BG(ColorYellow)
	_, _, _, ok := s.valid()
	assert.True(t, ok, "composed style should validate")

	bad := Style(0xFFFFFFFF)
	_, _, _, ok = bad.valid()
	assert.False(t, ok, "out-of-range style should not validate")
}

func TestParseLevelMask(t *testing.T) {
	m, err := ParseLevelMask("warn,error, critical")
	require.NoError(t, err)
	want := LevelWarn.bit() | LevelError.bit() | LevelCritical.bit()
	assert.Equal(t, want, m)

	m2, err := ParseLevelMask("all")
	require.NoError(t, err)
	assert.Equal(t, LevelMaskAll, m2)

	_, err = ParseLevelMask("bogus")
	assert.Error(t, err, "expected an error for an unknown level name")
}

func TestRegisterLevelTagOverridesFormatting(t *testing.T) {
	defer func() {
		for l, tag := range [numLevels]string{
			LevelDebug:     "DEBG",
			LevelInfo:      "INFO",
			LevelNotice:    "NOTI",
			LevelWarn:      "WARN",
			LevelError:     "ERRO",
			LevelCritical:  "CRIT",
			LevelAlert:     "ALRT",
			LevelEmergency: "EMRG",
		} {
			require.Nil(t, RegisterLevelTag(Level(l), tag))
		}
	}()

	require.Nil(t, RegisterLevelTag(LevelInfo, "INFORMATION"))
	assert.Equal(t, "INFORMATION", LevelTags()[LevelInfo])
	assert.Equal(t, "INFORMATION", levelTag(LevelInfo))

	err := RegisterLevelTag(Level(99), "X")
	require.NotNil(t, err)
	assert.Equal(t, ErrInvalidLevels, err.Kind)
}
