package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func newBufferLogger(buf *bytes.Buffer) *slogLogger {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &slogLogger{Logger: slog.New(h), exit: func(int) {}}
}

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	first := Get()
	if first == nil {
		t.Fatal("logger is nil after initialization")
	}

	// A second Init must not replace the installed logger.
	if err := Init(WithJSON(true)); err != nil {
		t.Fatalf("second Init returned error: %v", err)
	}
	if Get() != first {
		t.Fatal("global logger was replaced by a second Init")
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}
	namedLogger.Info(context.Background(), "test message")
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		l := newBufferLogger(&buf)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			l.Info(ctx, "handler called", String("handler", "login"), Int("n", 2), Error(errors.New("boom")))

			Convey("Then the message and fields are rendered", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "handler called")
				So(out, ShouldContainSubstring, "handler=login")
				So(out, ShouldContainSubstring, "n=2")
				So(out, ShouldContainSubstring, "error=boom")
			})

			Convey("And the caller source points at this file", func() {
				So(buf.String(), ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When using a named logger", func() {
			l.Named("api").Warn(ctx, "careful")

			Convey("Then the name is attached", func() {
				So(buf.String(), ShouldContainSubstring, "logger=api")
				So(buf.String(), ShouldContainSubstring, "level=WARN")
			})
		})

		Convey("When Fatal is called", func() {
			code := -1
			l.exit = func(c int) { code = c }
			l.Fatal(ctx, "fatal")

			Convey("Then the exit hook receives 1", func() {
				So(code, ShouldEqual, 1)
				So(buf.String(), ShouldContainSubstring, "level=ERROR")
			})
		})
	})
}

func TestNop(t *testing.T) {
	Convey("Given the nop logger", t, func() {
		l := Nop()

		Convey("Then every level is safe to call", func() {
			So(func() {
				ctx := context.Background()
				l.Debug(ctx, "d")
				l.Info(ctx, "i")
				l.Warn(ctx, "w")
				l.Error(ctx, "e")
				l.Fatal(ctx, "f")
				l.Named("x").Info(ctx, "named")
			}, ShouldNotPanic)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		defer SetLevel(slog.LevelInfo)

		Convey("Then known levels are accepted", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", " error "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And debug lowers the threshold", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelDebug)
		})

		Convey("And unknown levels are rejected", func() {
			err := SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log level")
		})
	})
}
