package config

import (
	"os"
	"testing"

	"github.com/matryer/is"
)

func TestParseMultipleEmails(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	is.NoErr(os.Setenv("CONVENE_INITIAL_ADMIN_EMAILS", "Root@example.com,ops@example.com"))
	is.NoErr(os.Setenv("CONVENE_DATA_PATH", td))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("CONVENE_INITIAL_ADMIN_EMAILS"))
		is.NoErr(os.Unsetenv("CONVENE_DATA_PATH"))
	})
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.InitialAdminEmails, []string{
		"root@example.com",
		"ops@example.com",
	})
}

func TestMergeInitAdminEmails(t *testing.T) {
	is := is.New(t)
	is.NoErr(os.Setenv("CONVENE_INITIAL_ADMIN_EMAILS", "root@example.com"))
	t.Cleanup(func() { is.NoErr(os.Unsetenv("CONVENE_INITIAL_ADMIN_EMAILS")) })
	cfg := &Config{
		DataPath:           t.TempDir(),
		InitialAdminEmails: []string{"ops@example.com"},
	}
	is.NoErr(cfg.WriteConfig())
	is.NoErr(cfg.Parse())
	is.Equal(cfg.InitialAdminEmails, []string{
		"root@example.com",
		"ops@example.com",
	})
}

func TestValidateInitAdminEmails(t *testing.T) {
	is := is.New(t)
	cfg := &Config{
		DataPath: t.TempDir(),
		InitialAdminEmails: []string{
			"Root@example.com",
			"abc",
			"",
			"root@example.com",
		},
	}
	is.NoErr(cfg.Validate())
	is.Equal(cfg.InitialAdminEmails, []string{
		"root@example.com",
	})
}

func TestCustomConfigLocation(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("CONVENE_CONFIG_LOCATION"))
		is.NoErr(os.Unsetenv("CONVENE_DATA_PATH"))
	})

	// Test that we get data from the custom file location, and not from the data dir.
	is.NoErr(os.Setenv("CONVENE_CONFIG_LOCATION", "testdata/config.yaml"))
	is.NoErr(os.Setenv("CONVENE_DATA_PATH", td))
	cfg := DefaultConfig()
	is.NoErr(cfg.Parse())
	is.Equal(cfg.Name, "Test server name")
	// If we unset the custom location, then use the default location.
	is.NoErr(os.Unsetenv("CONVENE_CONFIG_LOCATION"))
	cfg = DefaultConfig()
	is.Equal(cfg.Name, "Convene")
	// Test that if the custom config location doesn't exist, default to datapath config.
	is.NoErr(os.Setenv("CONVENE_CONFIG_LOCATION", "testdata/config_nonexistent.yaml"))
	cfg = DefaultConfig()
	is.Equal(cfg.Name, "Convene")
}

func TestParseMultipleHeaders(t *testing.T) {
	is := is.New(t)
	is.NoErr(os.Setenv("CONVENE_HTTP_CORS_ALLOWED_HEADERS", "Accept,Accept-Language,User-Agent"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("CONVENE_HTTP_CORS_ALLOWED_HEADERS"))
	})
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.HTTP.CORS.AllowedHeaders, []string{
		"Accept",
		"Accept-Language",
		"User-Agent",
	})
}

func TestParseMultipleOrigins(t *testing.T) {
	is := is.New(t)
	is.NoErr(os.Setenv("CONVENE_HTTP_CORS_ALLOWED_ORIGINS", "http://example.com,https://example.com"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("CONVENE_HTTP_CORS_ALLOWED_ORIGINS"))
	})
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.HTTP.CORS.AllowedOrigins, []string{
		"http://localhost:8080",
		"http://example.com",
		"https://example.com",
	})
}

func TestParseMultipleMethods(t *testing.T) {
	is := is.New(t)
	is.NoErr(os.Setenv("CONVENE_HTTP_CORS_ALLOWED_METHODS", "GET,POST,PUT"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("CONVENE_HTTP_CORS_ALLOWED_METHODS"))
	})
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.HTTP.CORS.AllowedMethods, []string{
		"GET",
		"POST",
		"PUT",
	})
}
