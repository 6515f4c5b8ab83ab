package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	service "github.com/okian/fplpulse/internal/app"
	"github.com/okian/fplpulse/internal/adapters/http/bootstrap"
	"github.com/okian/fplpulse/internal/adapters/repository"
	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/testsnapshot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	Convey("Given a bootstrap server with a generated snapshot", t, func() {
		h, err := testsnapshot.NewHandler(testsnapshot.Generate(testsnapshot.Config{Players: 300, Teams: 20, Seed: 7}))
		So(err, ShouldBeNil)
		srv := httptest.NewServer(h)
		Reset(srv.Close)

		root := t.TempDir()
		out, docs := filepath.Join(root, "output"), filepath.Join(root, "docs")
		store := repository.NewFSStore(repository.WithOutputDir(out), repository.WithDocsDir(docs))
		client := bootstrap.New(
			bootstrap.WithURL(srv.URL+testsnapshot.Path),
			bootstrap.WithRetries(1),
			bootstrap.WithRetryWait(time.Millisecond, 5*time.Millisecond),
		)

		runAt := func(at time.Time) (service.Result, error) {
			return service.New(
				service.WithFetcher(client),
				service.WithStore(store),
				service.WithClock(func() time.Time { return at }),
				service.WithLocation(time.UTC),
			).Run(context.Background())
		}

		day1 := time.Date(2024, 8, 17, 8, 0, 0, 0, time.UTC)
		day2 := day1.Add(24 * time.Hour)

		Convey("When the pipeline runs on two days", func() {
			first, err := runAt(day1)
			So(err, ShouldBeNil)
			second, err := runAt(day2)
			So(err, ShouldBeNil)

			Convey("Then each run reports the whole snapshot", func() {
				So(first.Players, ShouldEqual, 300)
				So(first.Teams, ShouldEqual, 20)
				So(first.RunID, ShouldNotEqual, second.RunID)
				So(h.Hits(), ShouldEqual, 2)
			})

			Convey("And the text reports of both runs are kept", func() {
				entries, err := os.ReadDir(out)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 4)
			})

			Convey("And the HTML index links both runs newest first", func() {
				f, err := os.Open(filepath.Join(docs, "index.html"))
				So(err, ShouldBeNil)
				defer f.Close()
				doc, err := goquery.NewDocumentFromReader(f)
				So(err, ShouldBeNil)

				var hrefs []string
				doc.Find("li a").Each(func(_ int, s *goquery.Selection) {
					href, _ := s.Attr("href")
					hrefs = append(hrefs, href)
				})
				So(hrefs, ShouldResemble, []string{
					"fpl_report_2024-08-18_080000.html",
					"fpl_price_report_2024-08-18_080000.html",
					"fpl_report_2024-08-17_080000.html",
					"fpl_price_report_2024-08-17_080000.html",
				})
				So(doc.Find("title").Text(), ShouldEqual, "FPL Reports")
			})

			Convey("And every ownership report has a table per ranked set", func() {
				f, err := os.Open(filepath.Join(docs, "fpl_report_2024-08-18_080000.html"))
				So(err, ShouldBeNil)
				defer f.Close()
				doc, err := goquery.NewDocumentFromReader(f)
				So(err, ShouldBeNil)
				So(doc.Find("table").Length(), ShouldEqual, 2)
				So(doc.Find("table").First().Find("tbody tr").Length(), ShouldEqual, 10)
			})

			Convey("And the price report never lists an unchanged price", func() {
				raw, err := os.ReadFile(filepath.Join(out, "fpl_price_report_2024-08-18_080000.txt"))
				So(err, ShouldBeNil)
				for _, line := range strings.Split(string(raw), "\n") {
					if cols := strings.Split(line, "\t"); len(cols) == 7 && cols[0] != "Name" {
						So(cols[5], ShouldNotEqual, "-£0.0")
						So(cols[5], ShouldNotEqual, "+£0.0")
					}
				}
			})
		})

		Convey("When the server starts failing after a good run", func() {
			_, err := runAt(day1)
			So(err, ShouldBeNil)
			before, err := os.ReadFile(filepath.Join(docs, "index.md"))
			So(err, ShouldBeNil)

			h.FailWith(http.StatusServiceUnavailable)
			_, err = runAt(day2)

			Convey("Then the run fails and the history is untouched", func() {
				So(errors.Is(err, model.ErrFetchFailure), ShouldBeTrue)
				after, err := os.ReadFile(filepath.Join(docs, "index.md"))
				So(err, ShouldBeNil)
				So(string(after), ShouldEqual, string(before))
				entries, err := os.ReadDir(out)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
			})
		})
	})
}
