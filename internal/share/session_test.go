package share

import (
	"testing"

	"snappyruler/internal/engine"
	"snappyruler/internal/geometry"
)

func finishedStroke() *engine.Stroke {
	s := engine.NewStroke(engine.ToolRuler, geometry.Pt(0, 0))
	s.Append(geometry.Pt(10, 0))
	s.Finalize()
	return s
}

func TestSession_LocalStampsIncrease(t *testing.T) {
	sess := NewSession()
	a := sess.AddLocal(finishedStroke())
	b := sess.AddLocal(finishedStroke())
	if a.Site != sess.SiteID() {
		t.Errorf("stamped site = %s, want %s", a.Site, sess.SiteID())
	}
	if b.Lamport <= a.Lamport {
		t.Errorf("lamport not increasing: %d then %d", a.Lamport, b.Lamport)
	}
}

func TestSession_RemoteDedupe(t *testing.T) {
	sess := NewSession()
	remote := StampedStroke{Stroke: finishedStroke(), Site: "peer", Lamport: 5}

	if !sess.AddRemote(remote) {
		t.Fatal("first delivery rejected")
	}
	if sess.AddRemote(remote) {
		t.Error("relayed duplicate accepted")
	}
	if sess.Count() != 1 {
		t.Errorf("session holds %d strokes, want 1", sess.Count())
	}
}

func TestSession_OwnEchoIgnored(t *testing.T) {
	sess := NewSession()
	stamped := sess.AddLocal(finishedStroke())
	if sess.AddRemote(stamped) {
		t.Error("own stroke echoed back was accepted")
	}
}

func TestSession_LamportAdvancesPastRemote(t *testing.T) {
	sess := NewSession()
	sess.AddRemote(StampedStroke{Stroke: finishedStroke(), Site: "peer", Lamport: 100})
	local := sess.AddLocal(finishedStroke())
	if local.Lamport <= 100 {
		t.Errorf("local lamport %d did not advance past remote 100", local.Lamport)
	}
}

func TestSession_ResetAllowsReplay(t *testing.T) {
	sess := NewSession()
	remote := StampedStroke{Stroke: finishedStroke(), Site: "peer", Lamport: 1}
	sess.AddRemote(remote)
	sess.Reset()
	if sess.Count() != 0 {
		t.Fatal("reset did not empty the session")
	}
	if !sess.AddRemote(remote) {
		t.Error("stroke rejected after reset")
	}
}

func TestSession_AllForLateJoiner(t *testing.T) {
	sess := NewSession()
	sess.AddLocal(finishedStroke())
	sess.AddRemote(StampedStroke{Stroke: finishedStroke(), Site: "peer", Lamport: 2})
	if got := len(sess.All()); got != 2 {
		t.Errorf("All returned %d strokes, want 2", got)
	}
}

func TestSession_InvalidRemoteRejected(t *testing.T) {
	sess := NewSession()
	if sess.AddRemote(StampedStroke{}) {
		t.Error("nil stroke accepted")
	}
}
