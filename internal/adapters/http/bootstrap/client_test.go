package bootstrap_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/fplpulse/internal/adapters/http/bootstrap"
	"github.com/okian/fplpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const validPayload = `{
  "events": [],
  "teams": [
    {"id": 1, "name": "Arsenal", "short_name": "ARS", "strength": 4},
    {"id": 7, "name": "Chelsea", "short_name": "CHE", "strength": 4}
  ],
  "elements": [
    {"id": 10, "first_name": "Bukayo", "second_name": "Saka", "team": 1, "element_type": 3,
     "now_cost": 100, "transfers_in_event": 500000, "transfers_out_event": 100000,
     "selected_by_percent": "10.0", "cost_change_event": 1, "form": "7.5", "web_name": "Saka"},
    {"id": 11, "first_name": "Cole", "second_name": "Palmer", "team": 7, "element_type": 5,
     "now_cost": 105, "transfers_in_event": 0, "transfers_out_event": 0,
     "selected_by_percent": "0.0", "cost_change_event": 0, "form": "0.0"}
  ]
}`

const missingOwnership = `{
  "teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
  "elements": [{"id": 10, "first_name": "Bukayo", "second_name": "Saka", "team": 1, "element_type": 3,
    "now_cost": 100, "transfers_in_event": 1, "transfers_out_event": 1,
    "cost_change_event": 0, "form": "1.0"}]
}`

func serve(status func(hit int32) int, body string) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	var hits atomic.Int32
	var ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		ua.Store(r.Header.Get("User-Agent"))
		code := status(n)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if code == http.StatusOK {
			_, _ = w.Write([]byte(body))
			return
		}
		_, _ = w.Write([]byte(`{"detail":"unavailable"}`))
	}))
	return srv, &hits, &ua
}

func always(code int) func(int32) int { return func(int32) int { return code } }

func TestFetch(t *testing.T) {
	Convey("Given a bootstrap endpoint", t, func() {
		ctx := context.Background()
		fixed := time.Date(2024, 8, 17, 9, 5, 0, 0, time.UTC)

		Convey("When it returns a valid document", func() {
			srv, hits, ua := serve(always(http.StatusOK), validPayload)
			defer srv.Close()
			c := bootstrap.New(
				bootstrap.WithURL(srv.URL),
				bootstrap.WithUserAgent("pulse-test"),
				bootstrap.WithClock(func() time.Time { return fixed }),
			)

			snap, err := c.Fetch(ctx)

			Convey("Then players and teams are decoded with zero values intact", func() {
				So(err, ShouldBeNil)
				So(hits.Load(), ShouldEqual, 1)
				So(ua.Load(), ShouldEqual, "pulse-test")
				So(snap.FetchedAt, ShouldEqual, fixed)
				So(snap.Teams, ShouldResemble, []model.RawTeam{
					{ID: 1, Name: "Arsenal", ShortName: "ARS"},
					{ID: 7, Name: "Chelsea", ShortName: "CHE"},
				})
				So(snap.Players, ShouldHaveLength, 2)
				So(snap.Players[0], ShouldResemble, model.RawPlayer{
					ID: 10, FirstName: "Bukayo", SecondName: "Saka", Team: 1, ElementType: 3,
					NowCost: 100, TransfersInEvent: 500000, TransfersOutEvent: 100000,
					SelectedByPercent: "10.0", CostChangeEvent: 1, Form: "7.5",
				})
				So(snap.Players[1].CostChangeEvent, ShouldEqual, 0)
				So(snap.Players[1].ElementType, ShouldEqual, 5)
			})
		})

		Convey("When it returns a server error", func() {
			srv, hits, _ := serve(always(http.StatusServiceUnavailable), "")
			defer srv.Close()

			_, err := bootstrap.New(bootstrap.WithURL(srv.URL)).Fetch(ctx)

			Convey("Then the fetch fails without retrying by default", func() {
				So(errors.Is(err, model.ErrFetchFailure), ShouldBeTrue)
				So(errors.Is(err, bootstrap.ErrStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "503")
				So(hits.Load(), ShouldEqual, 1)
			})
		})

		Convey("When a server error is followed by success and retries are enabled", func() {
			srv, hits, _ := serve(func(n int32) int {
				if n == 1 {
					return http.StatusBadGateway
				}
				return http.StatusOK
			}, validPayload)
			defer srv.Close()

			c := bootstrap.New(
				bootstrap.WithURL(srv.URL),
				bootstrap.WithRetries(2),
				bootstrap.WithRetryWait(time.Millisecond, 2*time.Millisecond),
			)
			snap, err := c.Fetch(ctx)

			Convey("Then the retry recovers", func() {
				So(err, ShouldBeNil)
				So(hits.Load(), ShouldEqual, 2)
				So(snap.Players, ShouldHaveLength, 2)
			})
		})

		Convey("When a client error is returned with retries enabled", func() {
			srv, hits, _ := serve(always(http.StatusNotFound), "")
			defer srv.Close()

			c := bootstrap.New(bootstrap.WithURL(srv.URL), bootstrap.WithRetries(3), bootstrap.WithRetryWait(time.Millisecond, time.Millisecond))
			_, err := c.Fetch(ctx)

			Convey("Then it is not retried", func() {
				So(errors.Is(err, model.ErrFetchFailure), ShouldBeTrue)
				So(hits.Load(), ShouldEqual, 1)
			})
		})

		Convey("When the body is not JSON", func() {
			srv, _, _ := serve(always(http.StatusOK), "<html>maintenance</html>")
			defer srv.Close()

			_, err := bootstrap.New(bootstrap.WithURL(srv.URL)).Fetch(ctx)
			So(errors.Is(err, bootstrap.ErrDecode), ShouldBeTrue)
			So(errors.Is(err, model.ErrMalformedData), ShouldBeTrue)
		})

		Convey("When a required key is missing", func() {
			srv, _, _ := serve(always(http.StatusOK), missingOwnership)
			defer srv.Close()

			_, err := bootstrap.New(bootstrap.WithURL(srv.URL)).Fetch(ctx)

			Convey("Then the payload is malformed and names the field", func() {
				So(errors.Is(err, bootstrap.ErrInvalidPayload), ShouldBeTrue)
				So(errors.Is(err, model.ErrMalformedData), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "SelectedByPercent")
			})
		})

		Convey("When the teams collection is missing", func() {
			srv, _, _ := serve(always(http.StatusOK), `{"elements": []}`)
			defer srv.Close()

			_, err := bootstrap.New(bootstrap.WithURL(srv.URL)).Fetch(ctx)
			So(errors.Is(err, model.ErrMalformedData), ShouldBeTrue)
		})

		Convey("When the server is unreachable", func() {
			srv, _, _ := serve(always(http.StatusOK), validPayload)
			url := srv.URL
			srv.Close()

			_, err := bootstrap.New(bootstrap.WithURL(url), bootstrap.WithTimeout(time.Second)).Fetch(ctx)
			So(errors.Is(err, model.ErrFetchFailure), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			srv, _, _ := serve(always(http.StatusOK), validPayload)
			defer srv.Close()
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := bootstrap.New(bootstrap.WithURL(srv.URL)).Fetch(cctx)
			So(errors.Is(err, model.ErrFetchFailure), ShouldBeTrue)
		})
	})
}

func TestDefaults(t *testing.T) {
	Convey("Given a client without options", t, func() {
		So(bootstrap.New().URL(), ShouldEqual, bootstrap.DefaultURL)
		So(bootstrap.New(bootstrap.WithURL("")).URL(), ShouldEqual, bootstrap.DefaultURL)
	})
}
