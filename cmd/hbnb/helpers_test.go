package main

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func init() {
	types.PasswordCost = bcrypt.MinCost
}

func TestParseAssignments(t *testing.T) {
	fields, err := parseAssignments([]string{
		"name=Cozy cabin",
		"number_rooms=3",
		"latitude=37.77",
		"amenity_ids=[\"a-1\",\"a-2\"]",
		"empty=",
		"note=a=b",
	})
	require.NoError(t, err)

	assert.Equal(t, "Cozy cabin", fields["name"])
	assert.Equal(t, float64(3), fields["number_rooms"])
	assert.Equal(t, 37.77, fields["latitude"])
	assert.Equal(t, []any{"a-1", "a-2"}, fields["amenity_ids"])
	assert.Equal(t, "", fields["empty"])
	assert.Equal(t, "a=b", fields["note"])
}

func TestParseAssignments_Invalid(t *testing.T) {
	for _, arg := range []string{"name", "=value"} {
		_, err := parseAssignments([]string{arg})
		assert.Error(t, err, arg)
	}
}

func TestHashPasswordField(t *testing.T) {
	fields := map[string]any{"password": "secret", "first_name": "Ada"}

	require.NoError(t, hashPasswordField(types.KindUser, fields))
	hash, ok := fields["password"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "secret", hash)
	assert.Equal(t, "Ada", fields["first_name"])

	u := &types.User{BaseModel: types.NewBase(), Email: "a@example.com"}
	require.NoError(t, types.Apply(u, fields))
	assert.True(t, u.CheckPassword("secret"))
}

func TestHashPasswordField_OtherKinds(t *testing.T) {
	fields := map[string]any{"password": "secret"}

	require.NoError(t, hashPasswordField(types.KindState, fields))
	assert.Equal(t, "secret", fields["password"])
}

func TestHashPasswordField_Empty(t *testing.T) {
	err := hashPasswordField(types.KindUser, map[string]any{"password": ""})
	assert.ErrorIs(t, err, types.ErrInvalidPassword)
}

func TestFailure_ExitCodes(t *testing.T) {
	err := failure(exitSysError, "list", errors.New("disk full"))
	assert.Equal(t, "list: disk full", err.Error())
	assert.Equal(t, exitSysError, exitCode(err))
	assert.Equal(t, exitUserError, exitCode(errors.New("unknown flag")))

	_, err = parseKind("get", "Widget")
	assert.Equal(t, exitUserError, exitCode(err))
	assert.Contains(t, err.Error(), `get: unknown kind "Widget"`)
}

func TestFormatEntity(t *testing.T) {
	s := &types.State{BaseModel: types.NewBase(), Name: "California"}
	s.ID = "s-1"

	out := formatEntity(s)
	assert.Regexp(t, `^\[State\] \(s-1\) created_at="[^"]+" name="California" updated_at="[^"]+"$`, out)
}

func TestFormatEntity_HidesPassword(t *testing.T) {
	u := &types.User{BaseModel: types.NewBase(), Email: "a@example.com"}
	require.NoError(t, u.SetPassword("secret"))

	assert.NotContains(t, formatEntity(u), "password")
}

func TestEnvFallback(t *testing.T) {
	v := viper.New()
	v.Set("storage", "db")
	v.Set("db.driver", "sqlite")
	v.Set("api.port", 8080)
	v.Set("api.cors_origins", []string{"a.example.com", "b.example.com"})
	v.Set("unrelated", "ignored")

	got := envFallback(v)
	assert.Equal(t, map[string]string{
		"HBNB_TYPE_STORAGE": "db",
		"HBNB_DB_DRIVER":    "sqlite",
		"HBNB_API_PORT":     "8080",
		"HBNB_CORS_ORIGINS": "a.example.com,b.example.com",
	}, got)
}

func TestLoadConfig_WritesDefault(t *testing.T) {
	dir := t.TempDir()

	v, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "file", v.GetString("storage"))
	assert.Equal(t, "sqlite", v.GetString("db.driver"))

	got := envFallback(v)
	assert.Equal(t, "file.json", got["HBNB_FILE_NAME"])
	assert.Equal(t, "0.0.0.0", got["HBNB_CORS_ORIGINS"])
	assert.Equal(t, "5000", got["HBNB_API_PORT"])
}
