package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"github.com/folha-ponto/ponto-client/internal/service"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer func() {
		os.Stdout = oldStdout
	}()

	os.Stdout = w
	require.NoError(t, fn())
	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return string(output)
}

func TestPrintSnapshotRendersIdentityFields(t *testing.T) {
	out := captureStdout(t, func() error {
		return printSnapshot(domainauth.Snapshot{
			Role:        domainauth.RoleManager,
			SubjectCode: "4511",
			Profile: domainauth.Profile{
				Name:  "Ana Souza",
				Email: "ana@example.com",
				Title: "Coordenadora",
			},
		})
	})

	require.Contains(t, out, "Ana Souza")
	require.Contains(t, out, "4511")
	require.Contains(t, out, "gestao")
	require.Contains(t, out, "ana@example.com")
}

func TestPrintDecisionFormats(t *testing.T) {
	admit := captureStdout(t, func() error {
		return printDecision("/dashboard", service.Decision{Action: service.ActionAdmit, Reason: "admit"})
	})
	assert.Equal(t, "/dashboard: admit (admit)\n", admit)

	redirect := captureStdout(t, func() error {
		return printDecision("/editar", service.Decision{
			Action: service.ActionRedirect,
			Target: "/acesso-negado",
			Reason: "role_denied",
		})
	})
	assert.Equal(t, "/editar: redirect -> /acesso-negado (role_denied)\n", redirect)
}

func TestParseLoginFlagsRequireUser(t *testing.T) {
	_, err := parseLoginFlags(nil)
	assert.Error(t, err)

	opts, err := parseLoginFlags([]string{"-user", "ana", "-pass", "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "ana", opts.User)
	assert.Equal(t, "s3cret", opts.Pass)
}

func TestParseCheckFlagsRequirePath(t *testing.T) {
	_, err := parseCheckFlags(nil)
	assert.Error(t, err)

	opts, err := parseCheckFlags([]string{"-path", "/editar"})
	require.NoError(t, err)
	assert.Equal(t, "/editar", opts.Path)
}

func TestReadPasswordTrimsNewlineAndRejectsEmpty(t *testing.T) {
	pass, err := readPassword(strings.NewReader("s3cret\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)

	_, err = readPassword(strings.NewReader("\n"))
	assert.Error(t, err)
}
