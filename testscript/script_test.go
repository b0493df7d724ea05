package testscript

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/convenehq/convene/cmd/convene/serve"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/migrate"
	"github.com/convenehq/convene/pkg/store"
	"github.com/convenehq/convene/pkg/store/database"
	"github.com/convenehq/convene/pkg/test"
	"github.com/rogpeppe/go-internal/testscript"
)

var update = flag.Bool("update", false, "update script files")

func TestScript(t *testing.T) {
	flag.Parse()

	testscript.Run(t, testscript.Params{
		Dir:           "./testdata/",
		UpdateScripts: *update,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"register": cmdRegister,
			"login":    cmdLogin,
			"api":      cmdAPI,
			"jsonget":  cmdJSONGet,
			"mkfile":   cmdMkfile,
		},
		Setup: func(e *testscript.Env) error {
			httpPort := test.RandomPort()
			data := t.TempDir()
			cfg := config.Config{
				Name:     "Test Convene",
				DataPath: data,
				HTTP: config.HTTPConfig{
					ListenAddr: fmt.Sprintf("localhost:%d", httpPort),
					PublicURL:  fmt.Sprintf("http://localhost:%d", httpPort),
				},
				Stats: config.StatsConfig{
					ListenAddr: fmt.Sprintf("localhost:%d", test.RandomPort()),
				},
				Log: config.LogConfig{
					Format:     "text",
					TimeFormat: time.DateTime,
				},
				DB: config.DBConfig{
					Driver:     "sqlite",
					DataSource: "convene.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
				},
				Auth: config.AuthConfig{
					KeyPath: filepath.Join(data, "auth", "convene_ed25519"),
				},
				Jobs: config.JobsConfig{
					ReminderSweep: "@every 1h",
					ReminderAge:   2 * 24 * 60 * 60,
				},
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			e.Setenv("BASE_URL", cfg.HTTP.PublicURL)

			ctx := config.WithContext(context.Background(), &cfg)
			dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
			if err != nil {
				return err
			}
			if err := migrate.Migrate(ctx, dbx); err != nil {
				return err
			}
			ctx = db.WithContext(ctx, dbx)
			dbstore := database.New(ctx, dbx)
			ctx = store.WithContext(ctx, dbstore)
			be := backend.New(ctx, &cfg, dbx, dbstore)
			ctx = backend.WithContext(ctx, be)

			srv, err := serve.NewServer(ctx)
			if err != nil {
				return err
			}

			go func() {
				if err := srv.Start(); err != nil {
					e.T().Fatal(err)
				}
			}()

			e.Defer(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					e.T().Fatal(err)
				}
				dbx.Close() // nolint: errcheck
			})

			// wait until the server is up
			for {
				conn, _ := net.DialTimeout(
					"tcp",
					net.JoinHostPort("localhost", fmt.Sprintf("%d", httpPort)),
					time.Second,
				)
				if conn != nil {
					conn.Close()
					break
				}
			}

			return nil
		},
	})
}

// doRequest sends a request to the server under test. The bearer token is
// taken from $TOKEN when set, so scripts switch organizers by swapping that
// variable.
func doRequest(ts *testscript.TestScript, method, path string, body io.Reader) *http.Response {
	req, err := http.NewRequest(method, ts.Getenv("BASE_URL")+path, body)
	ts.Check(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := ts.Getenv("TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	ts.Check(err)
	return resp
}

// session posts credentials to an auth endpoint and stores the session token
// in $TOKEN.
func session(ts *testscript.TestScript, neg bool, path string, creds map[string]string) {
	body, err := json.Marshal(creds)
	ts.Check(err)
	resp := doRequest(ts, http.MethodPost, path, strings.NewReader(string(body)))
	defer resp.Body.Close() // nolint: errcheck
	data, err := io.ReadAll(resp.Body)
	ts.Check(err)
	ts.Stdout().Write(data) // nolint: errcheck
	if resp.StatusCode >= http.StatusBadRequest {
		check(ts, fmt.Errorf("POST %s: %s", path, resp.Status), neg)
		return
	}
	if neg {
		ts.Fatalf("expected error, got %s", resp.Status)
	}
	var out struct {
		Token string `json:"token"`
	}
	ts.Check(json.Unmarshal(data, &out))
	ts.Setenv("TOKEN", out.Token)
}

func cmdRegister(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 3 {
		ts.Fatalf("usage: register email password recovery-phrase [name...]")
	}
	creds := map[string]string{
		"email":           args[0],
		"password":        args[1],
		"recovery_phrase": args[2],
	}
	if len(args) > 3 {
		creds["name"] = strings.Join(args[3:], " ")
	}
	session(ts, neg, "/auth/register", creds)
}

func cmdLogin(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: login email password")
	}
	session(ts, neg, "/auth/login", map[string]string{
		"email":    args[0],
		"password": args[1],
	})
}

// cmdAPI performs an HTTP request against the server. The response body goes
// to stdout and the status line to stderr. A 4xx or 5xx status is an error,
// so scripts negate with ! to assert failures.
func cmdAPI(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 || len(args) > 3 {
		ts.Fatalf("usage: api method path [bodyfile]")
	}
	var body io.Reader
	if len(args) == 3 {
		data, err := os.ReadFile(ts.MkAbs(args[2]))
		ts.Check(err)
		body = strings.NewReader(string(data))
	}
	resp := doRequest(ts, args[0], args[1], body)
	defer resp.Body.Close() // nolint: errcheck
	data, err := io.ReadAll(resp.Body)
	ts.Check(err)
	ts.Stdout().Write(data)                // nolint: errcheck
	fmt.Fprintln(ts.Stderr(), resp.Status) // nolint: errcheck
	if resp.StatusCode >= http.StatusBadRequest {
		check(ts, fmt.Errorf("%s %s: %s", args[0], args[1], resp.Status), neg)
		return
	}
	if neg {
		ts.Fatalf("expected error, got %s", resp.Status)
	}
}

// cmdJSONGet extracts a value from a JSON file by a dotted path, where
// segments index objects by key and arrays by number. The value is stored in
// an environment variable when one is named, otherwise printed to stdout.
func cmdJSONGet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! jsonget")
	}
	if len(args) < 2 || len(args) > 3 {
		ts.Fatalf("usage: jsonget file path [envvar]")
	}
	data, err := os.ReadFile(ts.MkAbs(args[0]))
	ts.Check(err)
	var root any
	ts.Check(json.Unmarshal(data, &root))
	node := root
	for _, part := range strings.Split(args[1], ".") {
		switch cur := node.(type) {
		case map[string]any:
			val, ok := cur[part]
			if !ok {
				ts.Fatalf("jsonget: no key %q in %s", part, args[1])
			}
			node = val
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(cur) {
				ts.Fatalf("jsonget: bad index %q in %s", part, args[1])
			}
			node = cur[i]
		default:
			ts.Fatalf("jsonget: cannot descend into %T at %q", node, part)
		}
	}

	var out string
	switch val := node.(type) {
	case string:
		out = val
	case float64:
		out = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		out = strconv.FormatBool(val)
	case nil:
		out = "null"
	default:
		enc, err := json.Marshal(val)
		ts.Check(err)
		out = string(enc)
	}

	if len(args) == 3 {
		ts.Setenv(args[2], out)
		return
	}
	fmt.Fprintln(ts.Stdout(), out) // nolint: errcheck
}

func cmdMkfile(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: mkfile path content")
	}
	check(ts, os.WriteFile(
		ts.MkAbs(args[0]),
		[]byte(strings.Join(args[1:], " ")),
		0o644,
	), neg)
}

func check(ts *testscript.TestScript, err error, neg bool) {
	if neg && err == nil {
		ts.Fatalf("expected error, got nil")
	}
	if !neg {
		ts.Check(err)
	}
}
