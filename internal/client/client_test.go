package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quizbit/server/internal/client"
	"github.com/quizbit/server/internal/quiz"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClientAgainstFakeServer(t *testing.T) {
	Convey("Given a fake API server", t, func() {
		var lastAuth string
		var lastBody map[string]any

		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&lastBody)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"token":   "issued-token",
				"user":    map[string]any{"id": 1, "name": "Ada", "email": "ada@example.com"},
			})
		})
		mux.HandleFunc("/api/results", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				lastAuth = r.Header.Get("Authorization")
				_ = json.NewDecoder(r.Body).Decode(&lastBody)
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Result Created"})
			case http.MethodGet:
				lastAuth = r.Header.Get("Authorization")
				if r.URL.Query().Get("technology") == "none" {
					_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "results": []any{}})
					return
				}
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": true,
					"results": []map[string]any{{"id": 1, "title": "JS - Basic Quiz", "technology": "js"}},
				})
			default:
				http.NotFound(w, r)
			}
		})

		server := httptest.NewServer(mux)
		Reset(server.Close)

		tokens := client.NewMemoryTokenStore()
		api := client.New(server.URL, tokens)

		Convey("Login stores the issued token", func() {
			user, err := api.Login(context.Background(), "ada@example.com", "hunter22")
			So(err, ShouldBeNil)
			So(user.Name, ShouldEqual, "Ada")
			So(tokens.Token(), ShouldEqual, "issued-token")

			Convey("SubmitResult sends the bearer header and the payload", func() {
				err := api.SubmitResult(context.Background(), quiz.ResultPayload{
					Title: "JS - Basic Quiz", Technology: "js", Level: "basic",
					TotalQuestions: 5, Correct: 3, Wrong: 2,
				})
				So(err, ShouldBeNil)
				So(lastAuth, ShouldEqual, "Bearer issued-token")
				So(lastBody["technology"], ShouldEqual, "js")
				So(lastBody["totalQuestions"], ShouldEqual, float64(5))
			})

			Convey("ListResults decodes the envelope", func() {
				results, err := api.ListResults(context.Background(), "all")
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 1)
				So(results[0].Title, ShouldEqual, "JS - Basic Quiz")
			})

			Convey("Logout clears the stored token", func() {
				api.Logout()
				So(tokens.Token(), ShouldBeEmpty)
			})
		})
	})
}

func TestClientUnreachableServer(t *testing.T) {
	Convey("A submission to an unreachable server surfaces an error", t, func() {
		api := client.New("http://127.0.0.1:1", client.NewMemoryTokenStore())
		err := api.SubmitResult(context.Background(), quiz.ResultPayload{Title: "t"})
		So(err, ShouldNotBeNil)
	})
}
