package notify

import (
	"context"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBrokerPublish(t *testing.T) {
	b := NewBroker()
	ch1, unsub1 := b.Subscribe("g1")
	defer unsub1()
	ch2, unsub2 := b.Subscribe("g1")
	defer unsub2()
	other, unsubOther := b.Subscribe("g2")
	defer unsubOther()

	b.Publish(context.Background(), "g1")

	for _, ch := range []<-chan Event{ch1, ch2} {
		ev := receive(t, ch)
		if ev.Type != EventUpdate || ev.GameID != "g1" {
			t.Errorf("event = %+v, want update for g1", ev)
		}
		if ev.At == 0 {
			t.Error("event has no timestamp")
		}
	}

	select {
	case ev := <-other:
		t.Errorf("g2 subscriber got %+v", ev)
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch, unsub := b.Subscribe("g1")
	if n := b.Subscribers("g1"); n != 1 {
		t.Fatalf("subscribers = %d, want 1", n)
	}

	unsub()
	unsub()
	if n := b.Subscribers("g1"); n != 0 {
		t.Errorf("subscribers after unsubscribe = %d, want 0", n)
	}

	b.Publish(context.Background(), "g1")
	select {
	case ev := <-ch:
		t.Errorf("unsubscribed channel got %+v", ev)
	default:
	}
}

func TestBrokerDropsWhenSlow(t *testing.T) {
	b := NewBroker()
	ch, unsub := b.Subscribe("g1")
	defer unsub()

	for range 40 {
		b.Publish(context.Background(), "g1")
	}
	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want %d", got, cap(ch))
	}
}

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		payload string
		want    Event
		wantErr bool
	}{
		{"full event", "game:abc", `{"type":"update","gameId":"abc","at":42}`, Event{Type: "update", GameID: "abc", At: 42}, false},
		{"channel wins", "game:abc", `{"type":"update","gameId":"zzz","at":1}`, Event{Type: "update", GameID: "abc", At: 1}, false},
		{"missing type", "game:abc", `{"at":7}`, Event{Type: "update", GameID: "abc", At: 7}, false},
		{"garbage", "game:abc", `{`, Event{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMessage(tt.channel, tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	ev, err := decodeMessage("game:abc", "")
	if err != nil || ev.GameID != "abc" || ev.Type != EventUpdate {
		t.Errorf("empty payload = %+v, %v", ev, err)
	}
}
