package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/authapi/internal/database"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConnect(t *testing.T) {
	Convey("Given a MongoDB connection string", t, func() {
		ctx := context.Background()

		Convey("When the uri is valid", func() {
			h, err := database.Connect(ctx, "mongodb://localhost:27017",
				database.WithMainDatabase("my_app_db"),
				database.WithServerSelectionTimeout(100*time.Millisecond),
			)
			So(err, ShouldBeNil)
			defer func() { _ = h.Disconnect(ctx) }()

			Convey("Then the three logical handles are opened without a round trip", func() {
				So(h.Len(), ShouldEqual, 3)
				So(h.Names(), ShouldResemble, []string{"analytics", "logs", "main"})
				So(h.Main().Name(), ShouldEqual, "my_app_db")

				analytics, ok := h.Get(database.Analytics)
				So(ok, ShouldBeTrue)
				So(analytics.Name(), ShouldEqual, "analytics_db")

				logs, ok := h.Get(database.Logs)
				So(ok, ShouldBeTrue)
				So(logs.Name(), ShouldEqual, "logs_db")
			})

			Convey("And unknown names are reported as missing", func() {
				_, ok := h.Get("reports")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When secondary database names are overridden", func() {
			h, err := database.Connect(ctx, "mongodb://localhost:27017",
				database.WithMainDatabase("main_db"),
				database.WithAnalyticsDatabase("stats"),
				database.WithLogsDatabase("audit"),
				database.WithAppName("authapi-test"),
			)
			So(err, ShouldBeNil)
			defer func() { _ = h.Disconnect(ctx) }()

			Convey("Then the handles use the new names", func() {
				a, _ := h.Get(database.Analytics)
				l, _ := h.Get(database.Logs)
				So(a.Name(), ShouldEqual, "stats")
				So(l.Name(), ShouldEqual, "audit")
			})
		})

		Convey("When the uri cannot be parsed", func() {
			h, err := database.Connect(ctx, "postgres://localhost:5432", database.WithMainDatabase("x"))

			Convey("Then a connection error is returned", func() {
				So(h, ShouldBeNil)
				So(errors.Is(err, database.ErrConnect), ShouldBeTrue)
			})
		})

		Convey("When the uri is empty", func() {
			_, err := database.Connect(ctx, "  ", database.WithMainDatabase("x"))

			Convey("Then a connection error is returned", func() {
				So(errors.Is(err, database.ErrConnect), ShouldBeTrue)
			})
		})

		Convey("When no main database name is given", func() {
			_, err := database.Connect(ctx, "mongodb://localhost:27017")

			Convey("Then a connection error is returned", func() {
				So(errors.Is(err, database.ErrConnect), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "main database")
			})
		})
	})
}
