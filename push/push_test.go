package push

import (
	"encoding/json"
	"errors"
	"testing"
)

type recordingSink struct {
	events []Event
	err    error
}

func (s *recordingSink) Send(ev *Event) error {
	s.events = append(s.events, *ev)
	return s.err
}

func TestDispatcherFansOut(t *testing.T) {
	failing := &recordingSink{err: errors.New("broker down")}
	ok := &recordingSink{}
	d := Dispatcher{}
	d.Add(failing)
	d.Add(nil)
	d.Add(ok)

	ev := NewAttendanceEvent(1, 2, 3, 4)
	d.Send(&ev)
	if len(failing.events) != 1 || len(ok.events) != 1 {
		t.Fatalf("deliveries = %d, %d, want 1, 1", len(failing.events), len(ok.events))
	}
	if ok.events[0].StudentID != 4 || ok.events[0].Type != EventTypeAttendance {
		t.Errorf("event = %+v", ok.events[0])
	}
}

func TestTopic(t *testing.T) {
	ev := NewAttendanceEvent(10, 7, 3, 1)
	if got := Topic("attendance", &ev); got != "attendance/course/7/session/3" {
		t.Errorf("Topic() = %s", got)
	}
}

func TestHub(t *testing.T) {
	h := NewHub()
	var got [][]byte
	record := func(data []byte) bool {
		got = append(got, data)
		return true
	}
	unsubscribeA := h.Subscribe(1, record)
	unsubscribeB := h.Subscribe(1, record)
	other := 0
	defer h.Subscribe(2, func([]byte) bool { other++; return true })()

	if h.Clients(1) != 2 {
		t.Fatalf("Clients(1) = %d, want 2", h.Clients(1))
	}
	ev := NewAttendanceEvent(1, 5, 1, 9)
	if err := h.Send(&ev); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || other != 0 {
		t.Fatalf("deliveries = %d (other session %d), want 2 (0)", len(got), other)
	}
	var decoded Event
	if err := json.Unmarshal(got[0], &decoded); err != nil || decoded.StudentID != 9 || decoded.SessionID != 1 {
		t.Errorf("payload = %s, %v", got[0], err)
	}

	unsubscribeA()
	if h.Clients(1) != 1 {
		t.Errorf("Clients(1) after unsubscribe = %d, want 1", h.Clients(1))
	}
	unsubscribeB()
	if h.Clients(1) != 0 {
		t.Errorf("Clients(1) after unsubscribing all = %d, want 0", h.Clients(1))
	}
	if err := h.Send(&ev); err != nil || len(got) != 2 {
		t.Errorf("Send() to empty session delivered %d, %v", len(got), err)
	}
}
