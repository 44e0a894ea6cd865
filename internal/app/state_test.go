package app_test

import (
	"context"
	"sync"
	"testing"

	"github.com/okian/authapi/internal/app"
	"github.com/okian/authapi/internal/database"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewState(t *testing.T) {
	Convey("Given opened database handles", t, func() {
		ctx := context.Background()
		dbs, err := database.Connect(ctx, "mongodb://localhost:27017", database.WithMainDatabase("my_app_db"))
		So(err, ShouldBeNil)
		defer func() { _ = dbs.Disconnect(ctx) }()

		Convey("When building state without options", func() {
			s := app.NewState(ctx, dbs)

			Convey("Then the environment defaults to development", func() {
				So(s.Environment(), ShouldEqual, "development")
				So(s.DatabaseName(), ShouldEqual, "my_app_db")
				So(s.Databases(), ShouldEqual, dbs)
				So(s.DatabaseNames(), ShouldResemble, []string{"analytics", "logs", "main"})
			})
		})

		Convey("When building state with an environment", func() {
			s := app.NewState(ctx, dbs, app.WithEnvironment("production"), app.WithLogger(nil))

			Convey("Then it is reported back", func() {
				So(s.Environment(), ShouldEqual, "production")
			})
		})

		Convey("When many goroutines read the state", func() {
			s := app.NewState(ctx, dbs, app.WithEnvironment("staging"))
			var wg sync.WaitGroup
			results := make(chan string, 50)
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results <- s.Environment() + "/" + s.DatabaseName()
				}()
			}
			wg.Wait()
			close(results)

			Convey("Then every reader sees the same values", func() {
				for r := range results {
					So(r, ShouldEqual, "staging/my_app_db")
				}
			})
		})
	})
}
