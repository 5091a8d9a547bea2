package record_test

import (
	"errors"
	"testing"

	"github.com/okita/worklogd/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

const validBody = `{"Date":"2024-01-01","Category":"Work","SubCategory":"Meetings","Duration":30,"Memo":"sync","Source":"calendar","EventID":"evt-1"}`

func TestParse(t *testing.T) {
	Convey("Given a well-formed body with every key", t, func() {
		rec, err := record.Parse([]byte(validBody))

		Convey("Then all fields should be populated", func() {
			So(err, ShouldBeNil)
			So(rec.Date, ShouldEqual, "2024-01-01")
			So(rec.Category, ShouldEqual, "Work")
			So(rec.SubCategory, ShouldEqual, "Meetings")
			So(rec.Duration, ShouldEqual, 30)
			So(rec.Memo, ShouldEqual, "sync")
			So(rec.Source, ShouldEqual, "calendar")
			So(rec.EventID, ShouldEqual, "evt-1")
		})
	})

	Convey("Given a body without EventID", t, func() {
		body := `{"Date":"2024-01-01","Category":"Work","SubCategory":"Meetings","Duration":30,"Memo":"sync","Source":"calendar"}`
		rec, err := record.Parse([]byte(body))

		Convey("Then EventID should default to the empty string", func() {
			So(err, ShouldBeNil)
			So(rec.EventID, ShouldEqual, "")
		})
	})

	Convey("Given a blank Memo", t, func() {
		body := `{"Date":"2024-01-01","Category":"Work","SubCategory":"Meetings","Duration":15,"Memo":"","Source":"Manual"}`
		rec, err := record.Parse([]byte(body))

		Convey("Then parsing should succeed", func() {
			So(err, ShouldBeNil)
			So(rec.Memo, ShouldEqual, "")
		})
	})

	Convey("Given bodies that are not JSON objects", t, func() {
		for _, body := range []string{"not json", `[1,2]`, `"text"`, `12`, ``} {
			rec, err := record.Parse([]byte(body))

			So(err, ShouldNotBeNil)
			So(errors.Is(err, record.ErrMalformedInput), ShouldBeTrue)
			So(rec, ShouldResemble, record.Record{})
		}
	})

	Convey("Given a null body", t, func() {
		_, err := record.Parse([]byte(`null`))

		Convey("Then it should be rejected as malformed", func() {
			So(errors.Is(err, record.ErrMalformedInput), ShouldBeTrue)
		})
	})

	Convey("Given bodies missing one required key", t, func() {
		bodies := map[string]string{
			"Date":        `{"Category":"Work","SubCategory":"Meetings","Duration":30,"Memo":"m","Source":"s"}`,
			"Category":    `{"Date":"2024-01-01","SubCategory":"Meetings","Duration":30,"Memo":"m","Source":"s"}`,
			"SubCategory": `{"Date":"2024-01-01","Category":"Work","Duration":30,"Memo":"m","Source":"s"}`,
			"Duration":    `{"Date":"2024-01-01","Category":"Work","SubCategory":"Meetings","Memo":"m","Source":"s"}`,
			"Memo":        `{"Date":"2024-01-01","Category":"Work","SubCategory":"Meetings","Duration":30,"Source":"s"}`,
			"Source":      `{"Date":"2024-01-01","Category":"Work","SubCategory":"Meetings","Duration":30,"Memo":"m"}`,
		}
		for key, body := range bodies {
			_, err := record.Parse([]byte(body))

			So(err, ShouldNotBeNil)
			So(errors.Is(err, record.ErrMalformedInput), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, key)
		}
	})

	Convey("Given a non-numeric Duration", t, func() {
		body := `{"Date":"2024-01-01","Category":"Work","SubCategory":"Meetings","Duration":"30","Memo":"m","Source":"s"}`
		_, err := record.Parse([]byte(body))

		Convey("Then it should be rejected as malformed", func() {
			So(errors.Is(err, record.ErrMalformedInput), ShouldBeTrue)
		})
	})

	Convey("Given a blank required string", t, func() {
		body := `{"Date":"2024-01-01","Category":"  ","SubCategory":"Meetings","Duration":30,"Memo":"m","Source":"s"}`
		_, err := record.Parse([]byte(body))

		Convey("Then it should be rejected as malformed", func() {
			So(errors.Is(err, record.ErrMalformedInput), ShouldBeTrue)
		})
	})
}

func TestRowAndHeader(t *testing.T) {
	Convey("Given a parsed record", t, func() {
		rec, err := record.Parse([]byte(validBody))
		So(err, ShouldBeNil)

		Convey("Then Row should preserve the fixed column order", func() {
			So(rec.Row(), ShouldResemble, []any{"2024-01-01", "Work", "Meetings", float64(30), "sync", "calendar", "evt-1"})
		})
	})

	Convey("Given the header row", t, func() {
		Convey("Then it should be textually exact", func() {
			So(record.Header(), ShouldResemble, []string{"Timestamp", "Category", "SubCategory", "Duration (min)", "Memo", "Source", "EventID"})
			So(len(record.Header()), ShouldEqual, record.Columns)
		})
	})
}
