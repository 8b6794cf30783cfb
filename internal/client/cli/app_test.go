package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = config.DriverMemory
	c.PasswordHashing = "plain"
	c.LogLevel = "error"
	return c
}

// newTestApp builds an App over a fresh memory store reading input.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false)

	var out bytes.Buffer
	a, err := NewApp(context.Background(), memoryConfig(), strings.NewReader(input), &out, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, &out
}

func (a *App) feed(input string) {
	a.reader.Reset(strings.NewReader(input))
}

func TestNewApp_Errors(t *testing.T) {
	c := memoryConfig()
	c.PasswordHashing = "md5"
	_, err := NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.Error(t, err)

	c = memoryConfig()
	c.LogFormat = "xml"
	_, err = NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.Error(t, err)

	c = memoryConfig()
	c.StorageDriver = "etcd"
	_, err = NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.Error(t, err)
}

func TestApp_SignupShowsHome(t *testing.T) {
	a, out := newTestApp(t, "Ann Lee\nAnn@Example.com\nsecret1\n")

	require.NoError(t, a.Signup(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(ann@example.com)", a.getStatus())

	s := out.String()
	assert.Contains(t, s, "Password strength: Medium")
	assert.Contains(t, s, "Account created.")
	assert.Contains(t, s, "[AL]")
	assert.Contains(t, s, "You are successfully logged in")
}

func TestApp_SignupFormErrors(t *testing.T) {
	a, out := newTestApp(t, "A\nann@example\n123\n")

	err := a.Signup(context.Background())
	require.ErrorIs(t, err, errFormInvalid)
	assert.False(t, a.isLoggedIn())

	s := out.String()
	assert.Contains(t, s, msgNameShort)
	assert.Contains(t, s, msgEmailInvalid)
	assert.Contains(t, s, msgPwdShort)
}

func TestApp_SignupDuplicateMessage(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "Ann\nann@example.com\nsecret1\n")
	require.NoError(t, a.Signup(ctx))
	require.NoError(t, a.logout(ctx, true))

	a.feed("Ann 2\nANN@example.com\nsecret2\n")
	err := a.Signup(ctx)
	require.ErrorIs(t, err, services.ErrDuplicateUser)
	assert.Contains(t, out.String(), "User with this email already exists")
}

func TestApp_LoginAndLogout(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "Ann Lee\nann@example.com\nsecret1\n")
	require.NoError(t, a.Signup(ctx))
	require.NoError(t, a.logout(ctx, true))
	assert.False(t, a.isLoggedIn())

	a.feed("ann@example.com\nwrong-password\n")
	err := a.Login(ctx)
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Contains(t, out.String(), "Invalid email or password")

	a.feed("ANN@example.com\nsecret1\n")
	require.NoError(t, a.Login(ctx))
	assert.True(t, a.isLoggedIn())

	out.Reset()
	a.feed("n\n")
	require.NoError(t, a.Logout(ctx))
	assert.True(t, a.isLoggedIn(), "declined confirmation keeps the session")
	assert.Contains(t, out.String(), "Are you sure you want to logout?")
	assert.Contains(t, out.String(), "Cancelled.")

	a.feed("y\n")
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged out.")
}

func TestApp_LoginFormErrors(t *testing.T) {
	a, out := newTestApp(t, "\n\n")

	err := a.Login(context.Background())
	require.ErrorIs(t, err, errFormInvalid)
	assert.Contains(t, out.String(), msgEmailRequired)
	assert.Contains(t, out.String(), msgPwdRequired)
}

func TestApp_HomeWhenAnonymousPrintsNothing(t *testing.T) {
	a, out := newTestApp(t, "")
	require.NoError(t, a.Home(context.Background()))
	assert.Empty(t, out.String())
}

func TestApp_RunREPL(t *testing.T) {
	a, out := newTestApp(t, strings.Join([]string{
		"signup",
		"Ann Lee",
		"ann@example.com",
		"secret1",
		"logout",
		"yes",
		"login",
		"ann@example.com",
		"secret1",
		"exit",
	}, "\n")+"\n")

	require.NoError(t, a.Run(context.Background()))
	assert.True(t, a.isLoggedIn())
	s := out.String()
	assert.Equal(t, 2, strings.Count(s, "You are successfully logged in"))
	assert.Contains(t, s, "gophauth (ann@example.com)> ")
}
