package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/log"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-token", log.NullLogger()), srv
}

func TestFetchMedia(t *testing.T) {
	t.Run("passes params and maps the response", func(t *testing.T) {
		var gotQuery map[string]string
		var gotAuth string
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/media" {
				t.Errorf("path = %q, want /media", r.URL.Path)
			}
			gotAuth = r.Header.Get("Authorization")
			gotQuery = map[string]string{}
			for k := range r.URL.Query() {
				gotQuery[k] = r.URL.Query().Get(k)
			}
			w.Write([]byte(`{
				"items": [{"id":"m1","title":"Alien","releaseYear":1979,"rating":8.5,"duration":117,"genreIds":["g1"],"typeId":"t1"}],
				"pagination": {"currentPage":2,"totalPages":9,"total":171}
			}`))
		})
		defer srv.Close()

		page, err := client.FetchMedia(context.Background(), map[string]string{
			"page": "2", "limit": "20", "search": "alien",
		})
		if err != nil {
			t.Fatalf("FetchMedia failed: %v", err)
		}

		if gotAuth != "Bearer test-token" {
			t.Errorf("Authorization = %q", gotAuth)
		}
		if gotQuery["page"] != "2" || gotQuery["search"] != "alien" {
			t.Errorf("query = %v", gotQuery)
		}

		if page.CurrentPage != 2 || page.TotalPages != 9 || page.TotalItems != 171 {
			t.Errorf("pagination = %+v", page)
		}
		item := page.Items[0]
		if item.Title != "Alien" || item.Rating != 8.5 {
			t.Errorf("item = %+v", item)
		}
		if item.Duration != 117*time.Minute {
			t.Errorf("Duration = %v, want 117m", item.Duration)
		}
	})

	t.Run("zero total pages maps to one", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":[],"pagination":{"currentPage":1,"totalPages":0,"total":0}}`))
		})
		defer srv.Close()

		page, err := client.FetchMedia(context.Background(), nil)
		if err != nil {
			t.Fatalf("FetchMedia failed: %v", err)
		}
		if page.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", page.TotalPages)
		}
	})
}

func TestErrorClassification(t *testing.T) {
	t.Run("transport failure maps to ErrNetwork", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewClient(srv.URL, "", log.NullLogger())
		srv.Close() // connection refused from here on

		_, err := client.FetchGenres(context.Background())
		if !domain.IsNetworkError(err) {
			t.Errorf("err = %v, want a network error", err)
		}
	})

	t.Run("401 maps to ErrAuthFailed", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		defer srv.Close()

		_, err := client.FetchGenres(context.Background())
		if !errors.Is(err, domain.ErrAuthFailed) {
			t.Errorf("err = %v, want ErrAuthFailed", err)
		}
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		_, err := client.FetchGenres(context.Background())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("500 maps to HTTPError with its status", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer srv.Close()

		_, err := client.FetchGenres(context.Background())
		status, ok := domain.IsHTTPError(err)
		if !ok || status != 500 {
			t.Errorf("err = %v, want HTTPError 500", err)
		}
	})

	t.Run("malformed body maps to DecodeError", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})
		defer srv.Close()

		_, err := client.FetchGenres(context.Background())
		if !domain.IsDecodeError(err) {
			t.Errorf("err = %v, want a decode error", err)
		}
	})
}

func TestFetchLookups(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/genres":
			w.Write([]byte(`[{"id":"g1","name":"Drama"}]`))
		case "/types":
			w.Write([]byte(`[{"id":"t1","name":"Movies","slug":"movies"}]`))
		case "/directors":
			w.Write([]byte(`[{"id":"d1","name":"Kurosawa","mediaCount":30}]`))
		case "/producers":
			w.Write([]byte(`[{"id":"p1","name":"Thomas","mediaCount":12}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer srv.Close()

	ctx := context.Background()

	genres, err := client.FetchGenres(ctx)
	if err != nil || len(genres) != 1 || genres[0].Name != "Drama" {
		t.Errorf("FetchGenres = %v, %v", genres, err)
	}

	types, err := client.FetchTypes(ctx)
	if err != nil || len(types) != 1 || types[0].Slug != "movies" {
		t.Errorf("FetchTypes = %v, %v", types, err)
	}

	directors, err := client.FetchDirectors(ctx)
	if err != nil || len(directors) != 1 || directors[0].MediaCount != 30 {
		t.Errorf("FetchDirectors = %v, %v", directors, err)
	}

	producers, err := client.FetchProducers(ctx)
	if err != nil || len(producers) != 1 || producers[0].Name != "Thomas" {
		t.Errorf("FetchProducers = %v, %v", producers, err)
	}
}

func TestFetchCategoryStats(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/genres" {
			t.Errorf("path = %q, want /stats/genres", r.URL.Path)
		}
		w.Write([]byte(`{"total":12,"active":10,"addedThisMonth":2}`))
	})
	defer srv.Close()

	stats, err := client.FetchCategoryStats(context.Background(), domain.CategoryGenres)
	if err != nil {
		t.Fatalf("FetchCategoryStats failed: %v", err)
	}
	if stats.Total != 12 || stats.Active != 10 || stats.AddedThisMonth != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestLogin(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("%s %s, want POST /auth/login", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"sess-1","user":{"id":"u1","name":"Lee","email":"lee@example.com","role":"admin"}}`))
	})
	defer srv.Close()

	session, err := client.Login(context.Background(), "lee@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token != "sess-1" {
		t.Errorf("Token = %q", session.Token)
	}
	if !session.User.IsAdmin() {
		t.Errorf("user = %+v, want admin", session.User)
	}
}

func TestCurrentUser(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("path = %q, want /auth/me", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer restored-token" {
			t.Errorf("Authorization = %q, want the restored token", got)
		}
		w.Write([]byte(`{"id":"u1","name":"Lee","email":"lee@example.com","role":"viewer"}`))
	})
	defer srv.Close()

	user, err := client.CurrentUser(context.Background(), "restored-token")
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Name != "Lee" || user.IsAdmin() {
		t.Errorf("user = %+v", user)
	}
}
