package service

import (
	"errors"
	"testing"

	"github.com/treebornwood/voicedeskk/internal/model"
	"github.com/treebornwood/voicedeskk/internal/session"
)

func TestStartConversationEstablishesSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	business := createTestBusiness(t, db, &model.Business{})

	conversation, err := svc.StartConversation(business.ID)
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	if conversation.ID == "" {
		t.Fatal("conversation id not generated")
	}
	if got := svc.SessionState(conversation.ID); got != session.StateConnected {
		t.Errorf("session state = %s, want connected", got)
	}
}

func TestChangeModeDrivesSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	business := createTestBusiness(t, db, &model.Business{})
	conversation, err := svc.StartConversation(business.ID)
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}

	if err := svc.ChangeMode(conversation.ID, session.ModeSpeaking); err != nil {
		t.Fatalf("ChangeMode(speaking): %v", err)
	}
	if got := svc.SessionState(conversation.ID); got != session.StateSpeaking {
		t.Errorf("session state = %s, want speaking", got)
	}

	if err := svc.ChangeMode(conversation.ID, session.ModeListening); err != nil {
		t.Fatalf("ChangeMode(listening): %v", err)
	}
	if got := svc.SessionState(conversation.ID); got != session.StateListening {
		t.Errorf("session state = %s, want listening", got)
	}

	// 未知会话和非法模式都拒绝
	if err := svc.ChangeMode("no-such-conversation", session.ModeSpeaking); !errors.Is(err, ErrNotFound) {
		t.Errorf("ChangeMode unknown id: err = %v, want ErrNotFound", err)
	}
	if err := svc.ChangeMode(conversation.ID, session.Mode("humming")); !errors.Is(err, ErrValidation) {
		t.Errorf("ChangeMode unknown mode: err = %v, want ErrValidation", err)
	}
}

func TestReportFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	business := createTestBusiness(t, db, &model.Business{})
	conversation, err := svc.StartConversation(business.ID)
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}

	if err := svc.ReportFailure(conversation.ID, "websocket closed"); err != nil {
		t.Fatalf("ReportFailure: %v", err)
	}
	if got := svc.SessionState(conversation.ID); got != session.StateError {
		t.Errorf("session state = %s, want error", got)
	}

	if err := svc.ReportFailure("no-such-conversation", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReportFailure unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestEndConversation(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	business := createTestBusiness(t, db, &model.Business{})
	conversation, err := svc.StartConversation(business.ID)
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}

	if err := svc.EndConversation(conversation.ID, "customer asked about hours"); err != nil {
		t.Fatalf("EndConversation: %v", err)
	}

	var reloaded model.Conversation
	if err := db.First(&reloaded, "id = ?", conversation.ID).Error; err != nil {
		t.Fatalf("reload conversation: %v", err)
	}
	if reloaded.EndedAt == nil {
		t.Error("EndedAt not set")
	}
	if reloaded.Transcript != "customer asked about hours" {
		t.Errorf("Transcript = %q", reloaded.Transcript)
	}

	// 会话结束后状态机复位并移除
	if got := svc.SessionState(conversation.ID); got != session.StateIdle {
		t.Errorf("session state after end = %s, want idle", got)
	}

	if err := svc.EndConversation("no-such-conversation", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("EndConversation unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestLinkBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)
	bookingSvc := NewBookingService(db)

	business := createTestBusiness(t, db, &model.Business{})
	conversation, err := svc.StartConversation(business.ID)
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	booking, err := bookingSvc.CreateBooking(business.ID, &CreateBookingRequest{
		CustomerName:     "Jane Doe",
		CustomerPhone:    "555-1234",
		ServiceRequested: "Haircut",
		Date:             "2024-06-01",
		Time:             "14:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := svc.LinkBooking(conversation.ID, booking.ID); err != nil {
		t.Fatalf("LinkBooking: %v", err)
	}

	var reloaded model.Conversation
	if err := db.First(&reloaded, "id = ?", conversation.ID).Error; err != nil {
		t.Fatalf("reload conversation: %v", err)
	}
	if !reloaded.BookingMade {
		t.Error("BookingMade = false")
	}
	if reloaded.BookingID != booking.ID {
		t.Errorf("BookingID = %q, want %q", reloaded.BookingID, booking.ID)
	}

	if err := svc.LinkBooking("no-such-conversation", booking.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("LinkBooking unknown id: err = %v, want ErrNotFound", err)
	}
}
