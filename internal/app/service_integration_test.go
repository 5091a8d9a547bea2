package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okita/worklogd/internal/adapters/tablestore"
	service "github.com/okita/worklogd/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceWithSQLiteBackend(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over a fresh sqlite table", t, func() {
		store, err := tablestore.NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "it.db"))
		So(err, ShouldBeNil)

		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(func() {
			svc.Stop()
			_ = store.Close()
		})

		Convey("When appending records through the service", func() {
			for i := 0; i < 10; i++ {
				_, err := svc.Append(ctx, testRecord("Work", float64(i+1)))
				So(err, ShouldBeNil)
			}

			Convey("Then the table should hold one header plus ten data rows", func() {
				n, err := store.RowCount(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 11)
			})

			Convey("And recent reads should survive the round trip", func() {
				rows, err := svc.Recent(ctx, 3)
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 3)
				So(rows[0].Duration, ShouldEqual, 10)
				So(rows[0].Category, ShouldEqual, "Work")
				So(rows[0].EventID, ShouldEqual, "")
			})
		})
	})
}

func TestConcurrentFirstAppendWritesOneHeader(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent appends against an empty table", t, func() {
		store := tablestore.NewMemoryStore(ctx)
		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		const workers = 16
		var wg sync.WaitGroup
		errs := make(chan error, workers)

		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := svc.Append(ctx, testRecord("Work", 5))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		Convey("Then every append should succeed", func() {
			for err := range errs {
				So(err, ShouldBeNil)
			}
		})

		Convey("And exactly one header row should exist", func() {
			rows, err := store.Rows(ctx, 0)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, workers+1)

			headers := 0
			for _, row := range rows {
				if row.CellString(0) == "Timestamp" {
					headers++
				}
			}
			So(headers, ShouldEqual, 1)
			So(rows[0].CellString(0), ShouldEqual, "Timestamp")
		})
	})
}
