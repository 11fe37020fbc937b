package service

import (
	"errors"
	"testing"
	"time"

	"github.com/treebornwood/voicedeskk/internal/model"
)

func TestCreateBookingCombinesDateAndTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	business := createTestBusiness(t, db, &model.Business{})

	booking, err := svc.CreateBooking(business.ID, &CreateBookingRequest{
		CustomerName:     "张三",
		CustomerPhone:    "555-0101",
		ServiceRequested: "Haircut",
		Date:             "2024-06-01",
		Time:             "14:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	want := time.Date(2024, 6, 1, 14, 0, 0, 0, time.Local)
	if !booking.AppointmentDatetime.Equal(want) {
		t.Errorf("AppointmentDatetime = %v, want %v", booking.AppointmentDatetime, want)
	}
	if booking.Status != model.BookingStatusConfirmed {
		t.Errorf("Status = %q, want %q", booking.Status, model.BookingStatusConfirmed)
	}
}

func TestCreateBookingInvalidDatetime(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	business := createTestBusiness(t, db, &model.Business{})

	tests := []struct {
		name string
		date string
		time string
	}{
		{name: "bad date", date: "June 1st", time: "14:00"},
		{name: "bad time", date: "2024-06-01", time: "2pm"},
		{name: "swapped", date: "14:00", time: "2024-06-01"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.CreateBooking(business.ID, &CreateBookingRequest{
				CustomerName:     "张三",
				CustomerPhone:    "555-0101",
				ServiceRequested: "Haircut",
				Date:             test.date,
				Time:             test.time,
			})
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateBookingAllowsSameSlot(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	business := createTestBusiness(t, db, &model.Business{})

	req := &CreateBookingRequest{
		CustomerName:     "张三",
		CustomerPhone:    "555-0101",
		ServiceRequested: "Haircut",
		Date:             "2024-06-01",
		Time:             "14:00",
	}

	// 不做冲突检测,同一时段允许多个预约
	if _, err := svc.CreateBooking(business.ID, req); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.CreateBooking(business.ID, req); err != nil {
		t.Fatalf("second booking same slot: %v", err)
	}

	count, err := svc.CountByBusiness(business.ID)
	if err != nil {
		t.Fatalf("CountByBusiness: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestListByBusinessOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	business := createTestBusiness(t, db, &model.Business{})

	// 倒序写入,读取时应按预约时间升序
	slots := []struct{ date, time string }{
		{"2024-06-03", "10:00"},
		{"2024-06-01", "14:00"},
		{"2024-06-02", "09:30"},
	}
	for _, slot := range slots {
		_, err := svc.CreateBooking(business.ID, &CreateBookingRequest{
			CustomerName:     "李四",
			CustomerPhone:    "555-0102",
			ServiceRequested: "Shave",
			Date:             slot.date,
			Time:             slot.time,
		})
		if err != nil {
			t.Fatalf("CreateBooking %s %s: %v", slot.date, slot.time, err)
		}
	}

	bookings, err := svc.ListByBusiness(business.ID)
	if err != nil {
		t.Fatalf("ListByBusiness: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("len = %d, want 3", len(bookings))
	}
	for i := 1; i < len(bookings); i++ {
		if bookings[i].AppointmentDatetime.Before(bookings[i-1].AppointmentDatetime) {
			t.Errorf("bookings out of order at index %d", i)
		}
	}
}
