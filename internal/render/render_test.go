package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/types"
	"github.com/okian/fplpulse/internal/render"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

var generatedAt = time.Date(2024, 8, 17, 9, 5, 0, 0, time.UTC)

func ownershipReport() types.Report {
	a := &model.EnrichedPlayer{
		ID: 1, DisplayName: "Bukayo Saka", TeamLabel: "Arsenal",
		Price: decimal.New(100, -1), Ownership: decimal.RequireFromString("10.0"), OwnershipDelta: 400_000,
	}
	b := &model.EnrichedPlayer{
		ID: 2, DisplayName: "Cole Palmer", TeamLabel: "Chelsea",
		Price: decimal.New(105, -1), Ownership: decimal.RequireFromString("5.0"), OwnershipDelta: -500_000,
	}
	return types.Report{
		Variant:     model.OwnershipVariant,
		GeneratedAt: generatedAt,
		Sets: []types.RankedSet{
			{Kind: types.Gainers, Cap: 10, Players: []*model.EnrichedPlayer{a, b}},
			{Kind: types.Losers, Cap: 10, Players: []*model.EnrichedPlayer{b, a}},
		},
	}
}

func priceReport() types.Report {
	up := &model.EnrichedPlayer{
		ID: 3, DisplayName: "Erling Haaland", TeamLabel: "MCI", Position: model.Forward,
		Price: decimal.New(151, -1), Ownership: decimal.RequireFromString("60.1"), PriceDelta: decimal.New(1, -1), Form: "8.5",
	}
	down := &model.EnrichedPlayer{
		ID: 4, DisplayName: "Nobody Known", TeamLabel: "LIV", Position: model.Unknown,
		Price: decimal.New(44, -1), Ownership: decimal.RequireFromString("2"), PriceDelta: decimal.New(-1, -1), Form: "0.0",
	}
	return types.Report{
		Variant:     model.PriceVariant,
		GeneratedAt: generatedAt,
		Sets: []types.RankedSet{
			{Kind: types.Risers, Cap: 20, Players: []*model.EnrichedPlayer{up}},
			{Kind: types.Fallers, Cap: 20, Players: []*model.EnrichedPlayer{down}},
		},
	}
}

func TestFieldFormatting(t *testing.T) {
	Convey("Given field formatters", t, func() {
		Convey("When formatting transfer deltas", func() {
			So(render.TransferDelta(400_000), ShouldEqual, "△ 400.0K")
			So(render.TransferDelta(-500_000), ShouldEqual, "▽ 500.0K")
			So(render.TransferDelta(0), ShouldEqual, "▽ 0.0K")
			So(render.TransferDelta(999_999), ShouldEqual, "△ 1000.0K")
			So(render.TransferDelta(1_000_000), ShouldEqual, "△ 1.0m")
			So(render.TransferDelta(-2_340_000), ShouldEqual, "▽ 2.3m")
		})

		Convey("When formatting money and percentages", func() {
			So(render.Money(decimal.New(55, -1)), ShouldEqual, "£5.5")
			So(render.Money(decimal.New(100, -1)), ShouldEqual, "£10.0")
			So(render.Percent(decimal.RequireFromString("45.25")), ShouldEqual, "45.3%")
			So(render.PriceDelta(decimal.New(2, -1)), ShouldEqual, "+£0.2")
			So(render.PriceDelta(decimal.New(-1, -1)), ShouldEqual, "-£0.1")
		})

		Convey("When asking for extensions", func() {
			So(render.TXT.Ext(), ShouldEqual, ".txt")
			So(render.HTML.Ext(), ShouldEqual, ".html")
		})
	})
}

func TestText(t *testing.T) {
	Convey("Given ranked reports", t, func() {
		Convey("When rendering the ownership report", func() {
			out, err := render.Text(ownershipReport())

			Convey("Then each player line carries the delta glyph", func() {
				So(err, ShouldBeNil)
				So(string(out), ShouldEqual, strings.Join([]string{
					"FPL Daily Report - 2024-08-17",
					"",
					"Top 10 Ownership Gains:",
					"Bukayo Saka (Arsenal) - £10.0 - 10.0% - △ 400.0K",
					"Cole Palmer (Chelsea) - £10.5 - 5.0% - ▽ 500.0K",
					"",
					"Top 10 Ownership Losses:",
					"Cole Palmer (Chelsea) - £10.5 - 5.0% - ▽ 500.0K",
					"Bukayo Saka (Arsenal) - £10.0 - 10.0% - △ 400.0K",
					"",
				}, "\n"))
			})
		})

		Convey("When rendering the price report", func() {
			out, err := render.Text(priceReport())

			Convey("Then rows are tab separated with position labels", func() {
				So(err, ShouldBeNil)
				So(string(out), ShouldEqual, strings.Join([]string{
					"FPL Price Change Report | 2024-08-17",
					"",
					"Risers (1)",
					"Name\tTeam\tPos\tOwnership\tPrice\t∆\tForm",
					"Erling Haaland\tMCI\tFWD\t60.1%\t£15.1\t+£0.1\t8.5",
					"",
					"Fallers (1)",
					"Name\tTeam\tPos\tOwnership\tPrice\t∆\tForm",
					"Nobody Known\tLIV\tUNK\t2.0%\t£4.4\t-£0.1\t0.0",
					"",
				}, "\n"))
			})
		})

		Convey("When the variant is unknown", func() {
			rep := ownershipReport()
			rep.Variant = model.Variant(7)
			_, err := render.Text(rep)
			So(errors.Is(err, render.ErrUnknownVariant), ShouldBeTrue)
		})
	})
}

func TestMarkdown(t *testing.T) {
	Convey("Given the ownership report", t, func() {
		out, err := render.Markdown(ownershipReport())

		Convey("Then it has a dated heading and a table per set", func() {
			So(err, ShouldBeNil)
			md := string(out)
			So(md, ShouldStartWith, "# FPL Daily Report - 2024-08-17\n")
			So(md, ShouldContainSubstring, "## Top 10 Ownership Gains\n\n| Player | Team | Price | Ownership | Δ Change |\n| --- | --- | --- | --- | --- |\n")
			So(md, ShouldContainSubstring, "| Bukayo Saka | Arsenal | £10.0 | 10.0% | △ 400.0K |\n")
			So(strings.Count(md, "## "), ShouldEqual, 2)
		})
	})

	Convey("Given the price report", t, func() {
		out, err := render.Markdown(priceReport())
		So(err, ShouldBeNil)
		So(string(out), ShouldContainSubstring, "| Player | Team | Pos | Ownership | Price | Δ Price | Form |")
		So(string(out), ShouldContainSubstring, "| Nobody Known | LIV | UNK | 2.0% | £4.4 | -£0.1 | 0.0 |")
	})

	Convey("Given a name with a pipe", t, func() {
		rep := ownershipReport()
		rep.Sets[0].Players[0].DisplayName = "A|B"
		out, err := render.Markdown(rep)
		So(err, ShouldBeNil)
		So(string(out), ShouldContainSubstring, `| A\|B |`)
	})
}

func TestHTML(t *testing.T) {
	Convey("Given a renderer", t, func() {
		r := render.New()

		Convey("When converting the ownership report", func() {
			rep := ownershipReport()
			out, err := r.HTML(rep)
			So(err, ShouldBeNil)
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
			So(err, ShouldBeNil)

			Convey("Then every table has one row per player plus a header", func() {
				tables := doc.Find("table")
				So(tables.Length(), ShouldEqual, len(rep.Sets))
				tables.Each(func(i int, s *goquery.Selection) {
					So(s.Find("tr").Length(), ShouldEqual, rep.Sets[i].Len()+1)
				})
				So(doc.Find("th").First().Text(), ShouldEqual, "Player")
				So(doc.Find("td").First().Text(), ShouldEqual, "Bukayo Saka")
			})

			Convey("And the shell carries charset, title and styles", func() {
				So(doc.Find("meta[charset]").AttrOr("charset", ""), ShouldEqual, "utf-8")
				So(doc.Find("title").Text(), ShouldEqual, "FPL Daily Report - 2024-08-17")
				So(doc.Find("h1").Text(), ShouldEqual, "FPL Daily Report - 2024-08-17")
				style := doc.Find("style").Text()
				So(style, ShouldContainSubstring, "border")
				So(style, ShouldContainSubstring, "max-width")
			})
		})

		Convey("When a set is empty", func() {
			rep := priceReport()
			rep.Sets[1].Players = nil
			out, err := r.HTML(rep)
			So(err, ShouldBeNil)
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
			So(err, ShouldBeNil)
			So(doc.Find("table").Eq(1).Find("tr").Length(), ShouldEqual, 1)
		})

		Convey("When a name contains markup", func() {
			rep := ownershipReport()
			rep.Sets[0].Players[0].DisplayName = "<script>x</script>"
			out, err := r.HTML(rep)
			So(err, ShouldBeNil)
			So(string(out), ShouldNotContainSubstring, "<script>")
		})

		Convey("When a custom stylesheet is configured", func() {
			out, err := render.New(render.WithStylesheet("table{border:2px solid red}")).HTML(ownershipReport())
			So(err, ShouldBeNil)
			So(string(out), ShouldContainSubstring, "table{border:2px solid red}")
		})
	})
}

func TestRenderIdempotence(t *testing.T) {
	Convey("Given the same report rendered twice", t, func() {
		r := render.New()
		for _, rep := range []types.Report{ownershipReport(), priceReport()} {
			first, err := r.RenderAll(rep, render.TXT, render.MD, render.HTML)
			So(err, ShouldBeNil)
			second, err := r.RenderAll(rep, render.TXT, render.MD, render.HTML)
			So(err, ShouldBeNil)

			So(first, ShouldHaveLength, 3)
			for i := range first {
				So(first[i].Format, ShouldEqual, second[i].Format)
				So(bytes.Equal(first[i].Body, second[i].Body), ShouldBeTrue)
				So(first[i].GeneratedAt.Equal(generatedAt), ShouldBeTrue)
			}
		}
	})

	Convey("Given an unknown format", t, func() {
		_, err := render.New().Render(ownershipReport(), render.Format("pdf"))
		So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestIndex(t *testing.T) {
	Convey("Given a history index", t, func() {
		r := render.New(render.WithSiteTitle("Pulse"))
		idx := types.HistoryIndex{Ext: ".html", Entries: []types.HistoryEntry{
			{Name: "fpl_report_2024-08-18_071500.html"},
			{Name: "fpl_report_2024-08-17_090000.html"},
		}}

		Convey("When rendering Markdown", func() {
			md := string(r.IndexMarkdown(idx, generatedAt))
			So(md, ShouldStartWith, "# Pulse\n\nUpdated 2024-08-17 09:05:00\n")
			So(md, ShouldContainSubstring, "**Latest:** [fpl_report_2024-08-18_071500.html](fpl_report_2024-08-18_071500.html)")
			So(strings.Count(md, "\n- ["), ShouldEqual, 2)
		})

		Convey("When rendering HTML", func() {
			doc, err := r.Index(idx, generatedAt)
			So(err, ShouldBeNil)
			So(doc.Format, ShouldEqual, render.HTML)
			q, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
			So(err, ShouldBeNil)
			So(q.Find("li a").Length(), ShouldEqual, 2)
			So(q.Find("strong").Text(), ShouldEqual, "Latest:")
			So(q.Find("p a").First().AttrOr("href", ""), ShouldEqual, "fpl_report_2024-08-18_071500.html")
			So(q.Find("title").Text(), ShouldEqual, "Pulse")
		})

		Convey("When the history is empty", func() {
			doc, err := r.Index(types.HistoryIndex{Ext: ".md"}, generatedAt)
			So(err, ShouldBeNil)
			So(string(doc.Body), ShouldContainSubstring, "No reports yet.")
		})

		Convey("When the extension is unsupported", func() {
			_, err := r.Index(types.HistoryIndex{Ext: ".txt"}, generatedAt)
			So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
		})
	})
}
