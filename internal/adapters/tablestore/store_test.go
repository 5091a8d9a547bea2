package tablestore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okita/worklogd/internal/adapters/tablestore"
	"github.com/okita/worklogd/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func headerRow() tablestore.Row {
	header := record.Header()
	row := make(tablestore.Row, len(header))
	for i, cell := range header {
		row[i] = cell
	}
	return row
}

func dataRow(category string, minutes float64) tablestore.Row {
	return tablestore.Row{"2024-01-01 09:00:00", category, "Meetings", minutes, "sync", "Manual", ""}
}

// backends lists a fresh-store constructor per backend so every Convey
// branch starts from an empty table.
func backends(t *testing.T, ctx context.Context) map[string]func() tablestore.Store {
	t.Helper()
	return map[string]func() tablestore.Store{
		"memory": func() tablestore.Store {
			return tablestore.NewMemoryStore(ctx)
		},
		"sqlite": func() tablestore.Store {
			s, err := tablestore.NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "test.db"))
			if err != nil {
				t.Fatalf("open sqlite store: %v", err)
			}
			return s
		},
		"csv": func() tablestore.Store {
			s, err := tablestore.NewCSVStore(filepath.Join(t.TempDir(), "test.csv"))
			if err != nil {
				t.Fatalf("open csv store: %v", err)
			}
			return s
		},
	}
}

func TestStoreBackends(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t, ctx) {
		Convey("Given an empty "+name+" store", t, func() {
			store := open()

			Convey("Then the row count should be zero", func() {
				n, err := store.RowCount(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})

			Convey("When appending a header and two data rows", func() {
				So(store.AppendRow(ctx, headerRow()), ShouldBeNil)
				So(store.AppendRow(ctx, dataRow("Work", 30)), ShouldBeNil)
				So(store.AppendRow(ctx, dataRow("Training", 45.5)), ShouldBeNil)

				Convey("Then the row count should be three", func() {
					n, err := store.RowCount(ctx)
					So(err, ShouldBeNil)
					So(n, ShouldEqual, 3)
				})

				Convey("And Rows should return everything in append order", func() {
					rows, err := store.Rows(ctx, 0)
					So(err, ShouldBeNil)
					So(len(rows), ShouldEqual, 3)
					So(rows[0].CellString(0), ShouldEqual, "Timestamp")
					So(rows[1].CellString(1), ShouldEqual, "Work")
					So(rows[2].CellString(1), ShouldEqual, "Training")
					So(rows[2].CellFloat(3), ShouldEqual, 45.5)
				})

				Convey("And a limit should keep only the newest rows", func() {
					rows, err := store.Rows(ctx, 2)
					So(err, ShouldBeNil)
					So(len(rows), ShouldEqual, 2)
					So(rows[0].CellString(1), ShouldEqual, "Work")
					So(rows[1].CellString(1), ShouldEqual, "Training")
				})
			})

			Convey("When appending a row with the wrong cell count", func() {
				err := store.AppendRow(ctx, tablestore.Row{"only", "three", "cells"})

				Convey("Then it should be rejected", func() {
					So(errors.Is(err, tablestore.ErrCellCount), ShouldBeTrue)
				})
			})

			Convey("When the store is closed", func() {
				So(store.Close(), ShouldBeNil)

				Convey("Then appends should fail", func() {
					So(store.AppendRow(ctx, dataRow("Work", 10)), ShouldNotBeNil)
				})
			})

			Reset(func() {
				_ = store.Close()
			})
		})
	}
}

func TestRowCellHelpers(t *testing.T) {
	Convey("Given rows with mixed cell representations", t, func() {
		numeric := tablestore.Row{"d", "c", "s", float64(30), "m", "src", ""}
		text := tablestore.Row{"d", "c", "s", "30", "m", "src", ""}
		raw := tablestore.Row{[]byte("d"), "c", "s", []byte("30.5"), "m", "src", nil}

		Convey("Then CellFloat should recover the duration from any of them", func() {
			So(numeric.CellFloat(3), ShouldEqual, 30)
			So(text.CellFloat(3), ShouldEqual, 30)
			So(raw.CellFloat(3), ShouldEqual, 30.5)
		})

		Convey("Then CellString should render text and bytes alike", func() {
			So(numeric.CellString(3), ShouldEqual, "30")
			So(raw.CellString(0), ShouldEqual, "d")
			So(raw.CellString(6), ShouldEqual, "")
		})

		Convey("Then out-of-range cells should be zero values", func() {
			So(numeric.CellString(9), ShouldEqual, "")
			So(numeric.CellFloat(-1), ShouldEqual, 0)
		})
	})
}
