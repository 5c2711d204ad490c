package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/mvx-app/mvx/internal/store"
	tu "github.com/mvx-app/mvx/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(catalog *tu.MockCatalog) (*Runner, *bytes.Buffer) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Output: output,
		Store:  store.NewMemoryStore(),
	})
	if catalog != nil {
		runner.catalog = catalog
	}
	return runner, output
}

func runApp(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "mvx", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"mvx"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := &tu.MockCatalog{}
			memStore := store.NewMemoryStore()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    catalog,
				Store:      memStore,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.store != memStore {
				t.Error("expected store to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestSearchCommand(t *testing.T) {
	catalog := &tu.MockCatalog{
		SearchFunc: func(ctx context.Context, query string, page int) (*models.SearchResult, error) {
			return &models.SearchResult{
				Results: []models.Movie{
					{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4},
					{ID: 157336, Title: "Interstellar", ReleaseDate: "2014-11-05", VoteAverage: 8.4},
				},
				Page:       page,
				TotalPages: 1,
			}, nil
		},
	}

	t.Run("prints results", func(t *testing.T) {
		runner, output := newTestRunner(catalog)

		if err := runApp(t, runner, "search", "inception"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Results for 'inception'") {
			t.Errorf("missing header, got: %s", result)
		}
		if !strings.Contains(result, "Inception (2010)") {
			t.Errorf("missing result row, got: %s", result)
		}
	})

	t.Run("json output", func(t *testing.T) {
		runner, output := newTestRunner(catalog)

		if err := runApp(t, runner, "search", "inception", "--json"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if !strings.Contains(output.String(), `"total_pages"`) {
			t.Errorf("expected JSON output, got: %s", output.String())
		}
	})

	t.Run("applies sort flag", func(t *testing.T) {
		runner, output := newTestRunner(catalog)

		if err := runApp(t, runner, "search", "inception", "--sort", "title-desc"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		result := output.String()
		if strings.Index(result, "Interstellar") > strings.Index(result, "Inception (2010)") {
			t.Errorf("expected descending title order, got: %s", result)
		}
	})

	t.Run("rejects unknown sort key", func(t *testing.T) {
		runner, _ := newTestRunner(catalog)

		err := runApp(t, runner, "search", "inception", "--sort", "by-rating")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		runner, _ := newTestRunner(catalog)

		err := runApp(t, runner, "search")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("without catalog credentials", func(t *testing.T) {
		runner, _ := newTestRunner(nil)

		err := runApp(t, runner, "search", "inception")
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestAuthCommands(t *testing.T) {
	runner, output := newTestRunner(nil)

	if err := runApp(t, runner, "auth", "register", "--name", "Ada", "--email", "ada@example.com", "--password", "hunter2"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !strings.Contains(output.String(), "Registered and logged in as Ada") {
		t.Errorf("unexpected register output: %s", output.String())
	}

	output.Reset()
	if err := runApp(t, runner, "auth", "whoami"); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(output.String(), "ada@example.com") {
		t.Errorf("whoami should show the identity, got: %s", output.String())
	}

	output.Reset()
	if err := runApp(t, runner, "auth", "logout"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	output.Reset()
	if err := runApp(t, runner, "auth", "whoami"); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(output.String(), "Not logged in") {
		t.Errorf("expected logged-out whoami, got: %s", output.String())
	}

	output.Reset()
	err := runApp(t, runner, "auth", "login", "--email", "ada@example.com", "--password", "wrong")
	if !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	output.Reset()
	if err := runApp(t, runner, "auth", "login", "--email", "ada@example.com", "--password", "hunter2"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(output.String(), "Logged in as Ada") {
		t.Errorf("unexpected login output: %s", output.String())
	}
}

func TestFavoritesCommands(t *testing.T) {
	catalog := &tu.MockCatalog{
		DetailFunc: func(ctx context.Context, id int) (*models.MovieDetail, error) {
			return &models.MovieDetail{
				Movie: models.Movie{ID: id, Title: "Inception", ReleaseDate: "2010-07-15"},
			}, nil
		},
	}

	t.Run("requires a login", func(t *testing.T) {
		runner, _ := newTestRunner(catalog)

		if err := runApp(t, runner, "favorites", "list"); !errors.Is(err, shared.ErrNotLoggedIn) {
			t.Errorf("expected ErrNotLoggedIn, got %v", err)
		}
		if err := runApp(t, runner, "favorites", "add", "27205"); !errors.Is(err, shared.ErrNotLoggedIn) {
			t.Errorf("expected ErrNotLoggedIn, got %v", err)
		}
	})

	t.Run("add list remove", func(t *testing.T) {
		runner, output := newTestRunner(catalog)

		if err := runApp(t, runner, "auth", "register", "--name", "Ada", "--email", "ada@example.com", "--password", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		output.Reset()
		if err := runApp(t, runner, "favorites", "add", "27205"); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !strings.Contains(output.String(), "Added 'Inception'") {
			t.Errorf("unexpected add output: %s", output.String())
		}

		// repeat add is reported, not duplicated
		output.Reset()
		if err := runApp(t, runner, "favorites", "add", "27205"); err != nil {
			t.Fatalf("second add failed: %v", err)
		}
		if !strings.Contains(output.String(), "already in your favorites") {
			t.Errorf("unexpected repeat add output: %s", output.String())
		}

		output.Reset()
		if err := runApp(t, runner, "favorites", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "1. Inception (2010) #27205") {
			t.Errorf("unexpected list output: %s", output.String())
		}

		output.Reset()
		if err := runApp(t, runner, "favorites", "remove", "27205"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		output.Reset()
		if err := runApp(t, runner, "favorites", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "No saved movies yet") {
			t.Errorf("expected empty list, got: %s", output.String())
		}
	})

	t.Run("rejects non-numeric id", func(t *testing.T) {
		runner, _ := newTestRunner(catalog)

		if err := runApp(t, runner, "auth", "register", "--name", "Ada", "--email", "ada@example.com", "--password", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		err := runApp(t, runner, "favorites", "remove", "abc")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
