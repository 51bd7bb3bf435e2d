package app

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mvoss/signalhub/internal/core"
	"github.com/mvoss/signalhub/internal/domain"
)

func TestAdmit_FirstJoinCreatesRoom(t *testing.T) {
	r := NewRoomRegistry(2)

	res := r.Admit("room1", "a")
	if res.Outcome != OutcomeCreated {
		t.Fatalf("outcome=%v, want created", res.Outcome)
	}
	if len(res.Peers) != 0 {
		t.Fatalf("peers=%v, want none", res.Peers)
	}
}

func TestAdmit_SecondJoinReturnsExistingPeers(t *testing.T) {
	r := NewRoomRegistry(2)
	r.Admit("room1", "a")

	res := r.Admit("room1", "b")
	if res.Outcome != OutcomeJoined {
		t.Fatalf("outcome=%v, want joined", res.Outcome)
	}
	if len(res.Peers) != 1 || res.Peers[0] != "a" {
		t.Fatalf("peers=%v, want [a]", res.Peers)
	}
}

func TestAdmit_FullRoomRejectsWithoutMutation(t *testing.T) {
	r := NewRoomRegistry(2)
	r.Admit("room1", "a")
	r.Admit("room1", "b")

	res := r.Admit("room1", "c")
	if res.Outcome != OutcomeFull {
		t.Fatalf("outcome=%v, want full", res.Outcome)
	}
	if r.Contains("room1", "c") {
		t.Fatal("rejected session must not be added")
	}
	if got := len(r.Peers("room1", "")); got != 2 {
		t.Fatalf("members=%d, want 2", got)
	}
}

func TestAdmit_ConcurrentJoinsNeverExceedCapacity(t *testing.T) {
	const attempts = 32
	r := NewRoomRegistry(2)

	var wg sync.WaitGroup
	results := make([]AdmitResult, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := core.SessionID(fmt.Sprintf("s%d", i))
			results[i] = r.Admit("room1", sid)
		}(i)
	}
	wg.Wait()

	var created, joined, full int
	for _, res := range results {
		switch res.Outcome {
		case OutcomeCreated:
			created++
		case OutcomeJoined:
			joined++
		case OutcomeFull:
			full++
		}
	}
	if created != 1 {
		t.Fatalf("created=%d, want exactly 1", created)
	}
	if joined != 1 {
		t.Fatalf("joined=%d, want exactly 1", joined)
	}
	if full != attempts-2 {
		t.Fatalf("full=%d, want %d", full, attempts-2)
	}
	if got := len(r.Peers("room1", "")); got != 2 {
		t.Fatalf("members=%d, want capacity 2", got)
	}
}

func TestRemove_LastMemberDeletesRoom(t *testing.T) {
	r := NewRoomRegistry(2)
	r.Admit("room1", "a")
	r.Admit("room1", "b")

	r.Remove("room1", "a")
	if got := r.Peers("room1", ""); len(got) != 1 || got[0] != "b" {
		t.Fatalf("peers=%v, want [b]", got)
	}

	r.Remove("room1", "b")
	// A fresh join must observe a brand new room.
	if res := r.Admit("room1", "c"); res.Outcome != OutcomeCreated {
		t.Fatalf("outcome after delete=%v, want created", res.Outcome)
	}
}

func TestRemove_IsIdempotent(t *testing.T) {
	r := NewRoomRegistry(2)
	r.Admit("room1", "a")

	r.Remove("room1", "missing")
	r.Remove("nosuchroom", "a")
	r.Remove("room1", "a")
	r.Remove("room1", "a")

	if rooms := r.RoomsOf("a"); len(rooms) != 0 {
		t.Fatalf("rooms=%v, want none", rooms)
	}
}

func TestPeers_UnknownRoomIsEmpty(t *testing.T) {
	r := NewRoomRegistry(2)
	if got := r.Peers("ghost", "a"); len(got) != 0 {
		t.Fatalf("peers=%v, want empty", got)
	}
}

func TestRoomsOf_ReportsMembership(t *testing.T) {
	r := NewRoomRegistry(4)
	r.Admit("room1", "a")
	r.Admit("room2", "b")

	rooms := r.RoomsOf("a")
	if len(rooms) != 1 || rooms[0] != domain.RoomID("room1") {
		t.Fatalf("rooms=%v, want [room1]", rooms)
	}
	if got := r.RoomsOf("nobody"); len(got) != 0 {
		t.Fatalf("rooms=%v, want none", got)
	}
}

func TestList_SnapshotsRooms(t *testing.T) {
	r := NewRoomRegistry(4)
	r.Admit("room1", "a")
	r.Admit("room1", "b")
	r.Admit("room2", "c")

	infos := r.List()
	if len(infos) != 2 {
		t.Fatalf("rooms=%d, want 2", len(infos))
	}
	counts := make(map[domain.RoomID]int)
	for _, info := range infos {
		counts[info.ID] = info.MemberCount
	}
	if counts["room1"] != 2 || counts["room2"] != 1 {
		t.Fatalf("counts=%v", counts)
	}
}
