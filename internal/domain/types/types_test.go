package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okita/worklogd/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogRow(t *testing.T) {
	Convey("Given a LogRow", t, func() {
		row := types.LogRow{
			Date:        "2024-01-01 09:00:00",
			Category:    "Work",
			SubCategory: "Meetings",
			Duration:    30,
			Memo:        "sync",
			Source:      "Calendar",
			EventID:     "evt-1",
		}

		Convey("When marshalled to JSON", func() {
			data, err := json.Marshal(row)

			Convey("Then keys should match the inbound payload keys", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"Date":"2024-01-01 09:00:00"`)
				So(string(data), ShouldContainSubstring, `"SubCategory":"Meetings"`)
				So(string(data), ShouldContainSubstring, `"Duration":30`)
				So(string(data), ShouldContainSubstring, `"EventID":"evt-1"`)
			})
		})

		Convey("When the EventID is absent", func() {
			empty := types.LogRow{}

			Convey("Then it should default to the empty string", func() {
				So(empty.EventID, ShouldEqual, "")
			})
		})
	})
}

func TestCategoryTotal(t *testing.T) {
	Convey("Given a CategoryTotal", t, func() {
		total := types.CategoryTotal{Category: "Work", TotalMinutes: 120.5}

		Convey("Then JSON keys should be snake_case", func() {
			data, err := json.Marshal(total)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"category":"Work","total_minutes":120.5}`)
		})
	})
}
